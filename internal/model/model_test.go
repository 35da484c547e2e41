package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/AVN-Software/seascapes-admin/internal/pricing"
)

func TestSeasonToPricing(t *testing.T) {
	s := &Season{
		ID:   "s1",
		Name: "Holiday Peak",
		DateRanges: datatypes.NewJSONSlice([]DateRange{
			{StartDate: "2024-12-15", EndDate: "2025-01-15"},
		}),
		MinimumStay: 5,
		Priority:    1,
		Active:      true,
	}

	ps, err := s.ToPricing()
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if ps.ID != "s1" || ps.MinimumStay != 5 || !ps.Active {
		t.Errorf("字段转换错误: %+v", ps)
	}
	if len(ps.DateRanges) != 1 || ps.DateRanges[0].End.Format(pricing.DateLayout) != "2025-01-15" {
		t.Errorf("日期区间转换错误: %+v", ps.DateRanges)
	}
}

func TestSeasonToPricing_BadDate(t *testing.T) {
	s := &Season{
		ID:         "s1",
		DateRanges: datatypes.NewJSONSlice([]DateRange{{StartDate: "15/12/2024", EndDate: "2025-01-15"}}),
	}
	_, err := s.ToPricing()
	if !errors.Is(err, pricing.ErrValidation) {
		t.Errorf("期望 ErrValidation，实际: %v", err)
	}
}

func TestRatePlanToPricing(t *testing.T) {
	p := &RatePlan{
		ID:        "rp1",
		ListingID: "L1",
		SeasonID:  "s1",
		Price:     decimal.NewFromInt(1500),
		RateAdjustment: datatypes.NewJSONType(RateAdjustment{
			Type:  "percentage",
			Value: decimal.NewFromInt(10),
		}),
	}

	if _, err := p.ToPricing(); err == nil {
		t.Error("未加载季节时应返回错误")
	}

	p.Season = &Season{
		ID:          "s1",
		Name:        "Festive",
		DateRanges:  datatypes.NewJSONSlice([]DateRange{{StartDate: "2024-12-20", EndDate: "2025-01-05"}}),
		MinimumStay: 3,
		Priority:    2,
		Active:      true,
	}
	rp, err := p.ToPricing()
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if rp.Season.ID != p.SeasonID {
		t.Errorf("期望季节 ID=%s，实际=%s", p.SeasonID, rp.Season.ID)
	}
	if rp.Adjustment.Type != pricing.AdjustmentPercentage || !rp.Adjustment.Value.Equal(decimal.NewFromInt(10)) {
		t.Errorf("调整转换错误: %+v", rp.Adjustment)
	}
}

func TestRateAdjustmentJSON(t *testing.T) {
	raw := []byte(`{"type":"fixed","value":"-25.50"}`)
	var adj RateAdjustment
	if err := json.Unmarshal(raw, &adj); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	if adj.Type != "fixed" || !adj.Value.Equal(decimal.RequireFromString("-25.5")) {
		t.Errorf("反序列化结果错误: %+v", adj)
	}
}

func TestListingToPricing(t *testing.T) {
	l := &Listing{ID: "L1", DefaultPrice: decimal.NewFromInt(900), MinStay: 2, CleaningFee: decimal.NewFromInt(250)}
	pl := l.ToPricing()
	if pl.ID != "L1" || pl.MinStay != 2 || !pl.CleaningFee.Equal(decimal.NewFromInt(250)) {
		t.Errorf("字段转换错误: %+v", pl)
	}
}
