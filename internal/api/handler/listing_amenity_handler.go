package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/internal/service"
	"github.com/AVN-Software/seascapes-admin/pkg/response"
)

// ListingAmenityHandler 房源设施关联 HTTP 处理器
type ListingAmenityHandler struct {
	listingAmenitySvc service.ListingAmenityService
}

// NewListingAmenityHandler 创建 ListingAmenityHandler
func NewListingAmenityHandler(listingAmenitySvc service.ListingAmenityService) *ListingAmenityHandler {
	return &ListingAmenityHandler{listingAmenitySvc: listingAmenitySvc}
}

// ListListingAmenities 获取房源设施
// GET /api/v1/listings/:id/amenities
func (h *ListingAmenityHandler) ListListingAmenities(c *gin.Context) {
	listingID, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	result, err := h.listingAmenitySvc.List(c.Request.Context(), listingID)
	if err != nil {
		handleAmenityError(c, err)
		return
	}

	response.OK(c, result)
}

// ReplaceListingAmenities 整体替换房源设施
// PUT /api/v1/listings/:id/amenities
func (h *ListingAmenityHandler) ReplaceListingAmenities(c *gin.Context) {
	listingID, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	var req dto.ReplaceListingAmenitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.listingAmenitySvc.Replace(c.Request.Context(), listingID, req.AmenityIDs, callerID)
	if err != nil {
		handleAmenityError(c, err)
		return
	}

	response.OK(c, result)
}

// AssignAmenity 为房源添加单个设施
// POST /api/v1/listings/:id/amenities
func (h *ListingAmenityHandler) AssignAmenity(c *gin.Context) {
	listingID, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	var req dto.AssignAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.listingAmenitySvc.Assign(c.Request.Context(), listingID, req.AmenityID, callerID); err != nil {
		handleAmenityError(c, err)
		return
	}

	response.Created(c, nil)
}

// UnassignAmenity 移除房源上的单个设施
// DELETE /api/v1/listings/:id/amenities/:amenity_id
func (h *ListingAmenityHandler) UnassignAmenity(c *gin.Context) {
	listingID, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}
	amenityID, ok := MustGetUUIDParam(c, "amenity_id", "设施ID")
	if !ok {
		return
	}

	if err := h.listingAmenitySvc.Unassign(c.Request.Context(), listingID, amenityID); err != nil {
		handleAmenityError(c, err)
		return
	}

	response.OK(c, nil)
}
