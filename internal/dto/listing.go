package dto

// ── 房源模块 DTO ──

// CreateListingRequest 创建房源请求
type CreateListingRequest struct {
	Title        string  `json:"title"         binding:"required,min=1,max=200"`
	TownName     string  `json:"townname"      binding:"omitempty,max=100"`
	PropertyType string  `json:"property_type" binding:"omitempty,max=50"`
	NumBedrooms  int     `json:"num_bedrooms"  binding:"min=0"`
	NumBaths     int     `json:"num_baths"     binding:"min=0"`
	MaxGuests    int     `json:"max_guests"    binding:"required,min=1"`
	PetsAllowed  bool    `json:"pets_allowed"`
	CleaningFee  float64 `json:"cleaning_fee"  binding:"min=0"`
	DefaultPrice float64 `json:"default_price" binding:"min=0"`
	MinStay      int     `json:"min_stay"      binding:"omitempty,min=1"`
	CoverImg     string  `json:"cover_img"     binding:"omitempty,max=255"`
	ListingDesc  string  `json:"listing_desc"`
	PropertyDesc string  `json:"property_desc"`
}

// UpdateListingRequest 更新房源详情（部分更新，需携带当前版本号）
type UpdateListingRequest struct {
	Version      int     `json:"version"       binding:"required,min=1"`
	Title        *string `json:"title"         binding:"omitempty,min=1,max=200"`
	TownName     *string `json:"townname"      binding:"omitempty,max=100"`
	PropertyType *string `json:"property_type" binding:"omitempty,max=50"`
	NumBedrooms  *int    `json:"num_bedrooms"  binding:"omitempty,min=0"`
	NumBaths     *int    `json:"num_baths"     binding:"omitempty,min=0"`
	MaxGuests    *int    `json:"max_guests"    binding:"omitempty,min=1"`
	PetsAllowed  *bool   `json:"pets_allowed"`
	CoverImg     *string `json:"cover_img"     binding:"omitempty,max=255"`
	ListingDesc  *string `json:"listing_desc"`
	PropertyDesc *string `json:"property_desc"`
}

// UpdateListingRatesRequest 更新房源默认价格、清洁费与最少晚数
type UpdateListingRatesRequest struct {
	Version      int      `json:"version"       binding:"required,min=1"`
	DefaultPrice *float64 `json:"default_price" binding:"omitempty,min=0"`
	CleaningFee  *float64 `json:"cleaning_fee"  binding:"omitempty,min=0"`
	MinStay      *int     `json:"min_stay"      binding:"omitempty,min=1"`
}

// ListingListRequest 房源列表查询参数
type ListingListRequest struct {
	Town string `form:"town"`
	Q    string `form:"q"`
}

// ListingResponse 房源信息响应
type ListingResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	TownName     string  `json:"townname"`
	PropertyType string  `json:"property_type"`
	NumBedrooms  int     `json:"num_bedrooms"`
	NumBaths     int     `json:"num_baths"`
	MaxGuests    int     `json:"max_guests"`
	PetsAllowed  bool    `json:"pets_allowed"`
	CleaningFee  float64 `json:"cleaning_fee"`
	DefaultPrice float64 `json:"default_price"`
	MinStay      int     `json:"min_stay"`
	CoverImg     string  `json:"cover_img"`
	CoverImgURL  string  `json:"cover_img_url,omitempty"`
	ListingDesc  string  `json:"listing_desc"`
	PropertyDesc string  `json:"property_desc"`
	Version      int     `json:"version"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
