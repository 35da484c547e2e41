package storage

import (
	"net/url"
	"strings"

	"github.com/AVN-Software/seascapes-admin/config"
)

// URLBuilder 拼接对象存储中房源图片的公开访问地址
// 只负责地址拼接，不读写存储
type URLBuilder struct {
	base   string
	bucket string
}

// NewURLBuilder 创建地址构造器
func NewURLBuilder(cfg *config.StorageConfig) *URLBuilder {
	return &URLBuilder{
		base:   strings.TrimRight(cfg.PublicBaseURL, "/"),
		bucket: strings.Trim(cfg.Bucket, "/"),
	}
}

// ListingImageURL 返回 <base>/<bucket>/<listingID>/main/<asset>
// asset 已经是完整 URL 时原样返回；base 或 asset 为空时返回空串
func (b *URLBuilder) ListingImageURL(listingID, asset string) string {
	asset = strings.TrimSpace(asset)
	if asset == "" || b == nil || b.base == "" {
		return ""
	}
	if u, err := url.Parse(asset); err == nil && u.Scheme != "" && u.Host != "" {
		return asset
	}

	segments := []string{b.base}
	if b.bucket != "" {
		segments = append(segments, b.bucket)
	}
	segments = append(segments,
		url.PathEscape(listingID),
		"main",
		url.PathEscape(strings.TrimLeft(asset, "/")),
	)
	return strings.Join(segments, "/")
}
