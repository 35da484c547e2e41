package dto

// ── 季节模块 DTO ──

// DateRangeDTO 闭区间日期，格式 YYYY-MM-DD
type DateRangeDTO struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   binding:"required,datetime=2006-01-02"`
}

// CreateSeasonRequest 创建季节请求
type CreateSeasonRequest struct {
	Name        string         `json:"name"         binding:"required,min=1,max=50"`
	DateRanges  []DateRangeDTO `json:"date_ranges"  binding:"required,min=1,dive"`
	MinimumStay int            `json:"minimum_stay" binding:"required,min=1"`
	Priority    int            `json:"priority"     binding:"required,min=1"`
	Active      *bool          `json:"active"` // 缺省为 true
}

// UpdateSeasonRequest 更新季节请求（部分更新）
// date_ranges 提供时整体替换
type UpdateSeasonRequest struct {
	Name        *string        `json:"name"         binding:"omitempty,min=1,max=50"`
	DateRanges  []DateRangeDTO `json:"date_ranges"  binding:"omitempty,min=1,dive"`
	MinimumStay *int           `json:"minimum_stay" binding:"omitempty,min=1"`
	Priority    *int           `json:"priority"     binding:"omitempty,min=1"`
	Active      *bool          `json:"active"`
}

// SetSeasonActiveRequest 启用/停用季节
type SetSeasonActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SeasonListRequest 季节列表查询参数
type SeasonListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// SeasonResponse 季节信息响应
type SeasonResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	DateRanges  []DateRangeDTO `json:"date_ranges"`
	MinimumStay int            `json:"minimum_stay"`
	Priority    int            `json:"priority"`
	Active      bool           `json:"active"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}
