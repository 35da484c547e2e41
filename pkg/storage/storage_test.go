package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AVN-Software/seascapes-admin/config"
)

func TestListingImageURL(t *testing.T) {
	b := NewURLBuilder(&config.StorageConfig{
		PublicBaseURL: "https://cdn.example.test/storage/v1/object/public/",
		Bucket:        "listing-images",
	})

	cases := []struct {
		name, listing, asset, want string
	}{
		{"普通文件名", "L1", "cover.jpg", "https://cdn.example.test/storage/v1/object/public/listing-images/L1/main/cover.jpg"},
		{"前导斜杠", "L1", "/cover.jpg", "https://cdn.example.test/storage/v1/object/public/listing-images/L1/main/cover.jpg"},
		{"文件名含空格", "L1", "sea view.jpg", "https://cdn.example.test/storage/v1/object/public/listing-images/L1/main/sea%20view.jpg"},
		{"已是完整地址", "L1", "https://img.example.test/a.jpg", "https://img.example.test/a.jpg"},
		{"空文件名", "L1", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.ListingImageURL(tc.listing, tc.asset))
		})
	}
}

func TestListingImageURL_NoBaseConfigured(t *testing.T) {
	b := NewURLBuilder(&config.StorageConfig{Bucket: "listing-images"})
	assert.Equal(t, "", b.ListingImageURL("L1", "cover.jpg"))

	var nilBuilder *URLBuilder
	assert.Equal(t, "", nilBuilder.ListingImageURL("L1", "cover.jpg"))
}
