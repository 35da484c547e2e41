package dto

// ── 设施模块 DTO ──

// CreateAmenityRequest 创建设施请求
type CreateAmenityRequest struct {
	Name     string  `json:"name"     binding:"required,min=1,max=100"`
	Category *string `json:"category" binding:"omitempty,max=50"`
	Icon     string  `json:"icon"     binding:"omitempty,max=100"`
}

// UpdateAmenityRequest 更新设施请求
type UpdateAmenityRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=100"`
	Category *string `json:"category" binding:"omitempty,max=50"`
	Icon     *string `json:"icon"     binding:"omitempty,max=100"`
}

// AmenityListRequest 设施列表查询参数
type AmenityListRequest struct {
	Q string `form:"q"`
}

// BulkDeleteAmenitiesRequest 批量删除设施
type BulkDeleteAmenitiesRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// BulkDeleteResponse 批量删除结果
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// AmenityResponse 设施响应
type AmenityResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Icon      string `json:"icon"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AmenityGroupResponse 按分类分组的设施
type AmenityGroupResponse struct {
	Category  string            `json:"category"`
	Amenities []AmenityResponse `json:"amenities"`
}

// ── 房源设施 ──

// ReplaceListingAmenitiesRequest 整体替换房源设施（空数组表示清空）
type ReplaceListingAmenitiesRequest struct {
	AmenityIDs []string `json:"amenity_ids" binding:"required,dive,uuid"`
}

// AssignAmenityRequest 为房源添加单个设施
type AssignAmenityRequest struct {
	AmenityID string `json:"amenity_id" binding:"required,uuid"`
}

// ListingAmenitiesResponse 房源设施列表
// orphaned 为指向已删除设施、被过滤掉的关联数
type ListingAmenitiesResponse struct {
	ListingID string            `json:"listing_id"`
	Amenities []AmenityResponse `json:"amenities"`
	Orphaned  int               `json:"orphaned"`
}
