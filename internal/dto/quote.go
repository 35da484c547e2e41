package dto

// ── 报价模块 DTO ──

// NightlyQuoteRequest 单晚报价查询参数
type NightlyQuoteRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// StayQuoteRequest 入住报价查询参数，退房日当晚不计费
type StayQuoteRequest struct {
	CheckIn  string `form:"check_in"  binding:"required,datetime=2006-01-02"`
	CheckOut string `form:"check_out" binding:"required,datetime=2006-01-02"`
}

// NightlyRateResponse 某一晚的价格
type NightlyRateResponse struct {
	Date        string  `json:"date"`
	Price       float64 `json:"price"`
	MinimumStay int     `json:"minimum_stay"`
	Source      string  `json:"source"` // rate_plan | default
	SeasonID    string  `json:"season_id,omitempty"`
	SeasonName  string  `json:"season_name,omitempty"`
	RatePlanID  string  `json:"rate_plan_id,omitempty"`
}

// NightlyQuoteResponse 单晚报价响应
type NightlyQuoteResponse struct {
	ListingID string `json:"listing_id"`
	NightlyRateResponse
}

// StaySegmentResponse 连续同价的若干晚
type StaySegmentResponse struct {
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Nights      int     `json:"nights"`
	SeasonID    string  `json:"season_id,omitempty"`
	SeasonName  string  `json:"season_name,omitempty"`
	NightlyRate float64 `json:"nightly_rate"`
	Subtotal    float64 `json:"subtotal"`
}

// StayQuoteResponse 入住报价响应
type StayQuoteResponse struct {
	ListingID        string                `json:"listing_id"`
	CheckIn          string                `json:"check_in"`
	CheckOut         string                `json:"check_out"`
	Nights           int                   `json:"nights"`
	Breakdown        []NightlyRateResponse `json:"breakdown"`
	Segments         []StaySegmentResponse `json:"segments"`
	NightsSubtotal   float64               `json:"nights_subtotal"`
	CleaningFee      float64               `json:"cleaning_fee"`
	Total            float64               `json:"total"`
	MinimumStay      int                   `json:"minimum_stay"`
	MeetsMinimumStay bool                  `json:"meets_minimum_stay"`
}
