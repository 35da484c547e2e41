package model

import (
	"gorm.io/datatypes"

	"github.com/AVN-Software/seascapes-admin/internal/pricing"
)

// DateRange 季节日期区间，JSON 中以 YYYY-MM-DD 字符串存储
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Season 季节表 对应 seasons
type Season struct {
	ID          string                         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string                         `gorm:"type:varchar(50);not null"                      json:"name"`
	DateRanges  datatypes.JSONSlice[DateRange] `gorm:"type:jsonb;not null"                            json:"date_ranges"`
	MinimumStay int                            `gorm:"not null;default:1"                             json:"minimum_stay"`
	Priority    int                            `gorm:"not null;default:1"                             json:"priority"`
	Active      bool                           `gorm:"not null;default:true"                          json:"active"`
	SoftDeleteModel
}

// TableName 指定表名
func (Season) TableName() string { return "seasons" }

// ToPricing 转换为计价核心的季节结构，日期格式非法时返回 pricing.ValidationError
func (s *Season) ToPricing() (pricing.Season, error) {
	ranges := make([]pricing.DateRange, 0, len(s.DateRanges))
	for _, r := range s.DateRanges {
		dr, err := pricing.NewDateRange(r.StartDate, r.EndDate)
		if err != nil {
			return pricing.Season{}, err
		}
		ranges = append(ranges, dr)
	}
	return pricing.Season{
		ID:          s.ID,
		Name:        s.Name,
		DateRanges:  ranges,
		MinimumStay: s.MinimumStay,
		Priority:    s.Priority,
		Active:      s.Active,
	}, nil
}
