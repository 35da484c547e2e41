package dto

// ── 价格方案模块 DTO ──

// RateAdjustmentDTO 价格调整
// type=fixed 时 value 为金额，type=percentage 时为百分比（可为负）
type RateAdjustmentDTO struct {
	Type  string  `json:"type"  binding:"required,oneof=fixed percentage"`
	Value float64 `json:"value"`
}

// CreateRatePlanRequest 创建价格方案请求
type CreateRatePlanRequest struct {
	SeasonID       string             `json:"season_id"       binding:"required,uuid"`
	Price          float64            `json:"price"           binding:"min=0"`
	RateAdjustment *RateAdjustmentDTO `json:"rate_adjustment"` // 缺省为 fixed 0
}

// UpdateRatePlanRequest 更新价格方案请求（部分更新）
type UpdateRatePlanRequest struct {
	SeasonID       *string            `json:"season_id"       binding:"omitempty,uuid"`
	Price          *float64           `json:"price"           binding:"omitempty,min=0"`
	RateAdjustment *RateAdjustmentDTO `json:"rate_adjustment"`
}

// RatePlanResponse 价格方案响应
type RatePlanResponse struct {
	ID             string            `json:"id"`
	ListingID      string            `json:"listing_id"`
	SeasonID       string            `json:"season_id"`
	Season         *SeasonResponse   `json:"season,omitempty"`
	Price          float64           `json:"price"`
	RateAdjustment RateAdjustmentDTO `json:"rate_adjustment"`
	FinalPrice     float64           `json:"final_price"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}
