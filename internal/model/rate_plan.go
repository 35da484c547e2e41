package model

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/AVN-Software/seascapes-admin/internal/pricing"
)

// RateAdjustment 价格调整，存为 jsonb：{"type":"percentage","value":"10"}
type RateAdjustment struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// RatePlan 价格方案表 对应 rate_plans
// 同一房源在同一季节下只能有一条方案
type RatePlan struct {
	ID             string                             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ListingID      string                             `gorm:"type:uuid;not null"                             json:"listing_id"`
	SeasonID       string                             `gorm:"type:uuid;not null"                             json:"season_id"`
	Price          decimal.Decimal                    `gorm:"type:numeric(12,2);not null"                    json:"price"`
	RateAdjustment datatypes.JSONType[RateAdjustment] `gorm:"column:rate_adjustment;type:jsonb;not null"     json:"rate_adjustment"`
	BaseModel

	// 关联
	Season *Season `gorm:"foreignKey:SeasonID" json:"season,omitempty"`
}

// TableName 指定表名
func (RatePlan) TableName() string { return "rate_plans" }

// Adjustment 返回计价核心使用的调整结构
func (p *RatePlan) Adjustment() pricing.Adjustment {
	adj := p.RateAdjustment.Data()
	return pricing.Adjustment{
		Type:  pricing.AdjustmentType(adj.Type),
		Value: adj.Value,
	}
}

// ToPricing 转换为计价核心的价格方案，需预加载 Season
func (p *RatePlan) ToPricing() (pricing.RatePlan, error) {
	if p.Season == nil {
		return pricing.RatePlan{}, fmt.Errorf("价格方案 %s 未加载季节 %s", p.ID, p.SeasonID)
	}
	season, err := p.Season.ToPricing()
	if err != nil {
		return pricing.RatePlan{}, err
	}
	return pricing.RatePlan{
		ID:         p.ID,
		ListingID:  p.ListingID,
		Season:     season,
		Price:      p.Price,
		Adjustment: p.Adjustment(),
	}, nil
}
