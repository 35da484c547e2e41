package model

import (
	"github.com/shopspring/decimal"

	"github.com/AVN-Software/seascapes-admin/internal/pricing"
)

// Listing 房源表 对应 listings
type Listing struct {
	ID           string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title        string          `gorm:"type:varchar(200);not null"                     json:"title"`
	TownName     string          `gorm:"column:townname;type:varchar(100);not null"     json:"townname"`
	PropertyType string          `gorm:"type:varchar(50);not null"                      json:"property_type"`
	NumBedrooms  int             `gorm:"not null;default:0"                             json:"num_bedrooms"`
	NumBaths     int             `gorm:"not null;default:0"                             json:"num_baths"`
	MaxGuests    int             `gorm:"not null;default:1"                             json:"max_guests"`
	PetsAllowed  bool            `gorm:"not null;default:false"                         json:"pets_allowed"`
	CleaningFee  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"          json:"cleaning_fee"`
	DefaultPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"          json:"default_price"`
	MinStay      int             `gorm:"not null;default:1"                             json:"min_stay"`
	CoverImg     string          `gorm:"type:varchar(255);not null"                     json:"cover_img"`
	ListingDesc  string          `gorm:"type:text;not null"                             json:"listing_desc"`
	PropertyDesc string          `gorm:"type:text;not null"                             json:"property_desc"`
	VersionedModel
}

// TableName 指定表名
func (Listing) TableName() string { return "listings" }

// ToPricing 提取计价所需字段
func (l *Listing) ToPricing() pricing.Listing {
	return pricing.Listing{
		ID:           l.ID,
		DefaultPrice: l.DefaultPrice,
		MinStay:      l.MinStay,
		CleaningFee:  l.CleaningFee,
	}
}
