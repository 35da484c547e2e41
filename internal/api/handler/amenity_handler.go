package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/internal/service"
	"github.com/AVN-Software/seascapes-admin/pkg/response"
)

// AmenityHandler 设施目录 HTTP 处理器
type AmenityHandler struct {
	amenitySvc service.AmenityService
}

// NewAmenityHandler 创建 AmenityHandler
func NewAmenityHandler(amenitySvc service.AmenityService) *AmenityHandler {
	return &AmenityHandler{amenitySvc: amenitySvc}
}

// ListAmenities 获取设施列表
// GET /api/v1/amenities?q=
func (h *AmenityHandler) ListAmenities(c *gin.Context) {
	var req dto.AmenityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	amenities, err := h.amenitySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKList(c, amenities, len(amenities))
}

// GroupedAmenities 按分类分组的设施
// GET /api/v1/amenities/grouped
func (h *AmenityHandler) GroupedAmenities(c *gin.Context) {
	groups, err := h.amenitySvc.Grouped(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, groups)
}

// CreateAmenity 创建设施
// POST /api/v1/amenities
func (h *AmenityHandler) CreateAmenity(c *gin.Context) {
	var req dto.CreateAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	amenity, err := h.amenitySvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleAmenityError(c, err)
		return
	}

	response.Created(c, amenity)
}

// UpdateAmenity 更新设施
// PUT /api/v1/amenities/:id
func (h *AmenityHandler) UpdateAmenity(c *gin.Context) {
	id, ok := MustGetUUIDParam(c, "id", "设施ID")
	if !ok {
		return
	}

	var req dto.UpdateAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	amenity, err := h.amenitySvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleAmenityError(c, err)
		return
	}

	response.OK(c, amenity)
}

// DeleteAmenity 删除设施
// DELETE /api/v1/amenities/:id
func (h *AmenityHandler) DeleteAmenity(c *gin.Context) {
	id, ok := MustGetUUIDParam(c, "id", "设施ID")
	if !ok {
		return
	}

	if err := h.amenitySvc.Delete(c.Request.Context(), id); err != nil {
		handleAmenityError(c, err)
		return
	}

	response.OK(c, nil)
}

// BulkDeleteAmenities 批量删除设施
// POST /api/v1/amenities/bulk-delete
func (h *AmenityHandler) BulkDeleteAmenities(c *gin.Context) {
	var req dto.BulkDeleteAmenitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	deleted, err := h.amenitySvc.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		handleAmenityError(c, err)
		return
	}

	response.OK(c, dto.BulkDeleteResponse{Deleted: deleted})
}

// handleAmenityError 设施与房源设施共用的错误映射
func handleAmenityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAmenityNotFound):
		response.NotFound(c, 23001, "设施不存在")
	case errors.Is(err, service.ErrAmenityNameExists):
		response.Conflict(c, 23002, "设施名称已存在")
	case errors.Is(err, service.ErrAmenityAlreadyAssigned):
		response.Conflict(c, 23003, "房源已包含该设施")
	case errors.Is(err, service.ErrAmenityNotAssigned):
		response.NotFound(c, 23004, "房源未包含该设施")
	case errors.Is(err, service.ErrListingNotFound):
		response.NotFound(c, 20001, "房源不存在")
	default:
		response.InternalError(c)
	}
}
