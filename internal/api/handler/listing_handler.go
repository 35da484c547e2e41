package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/internal/service"
	"github.com/AVN-Software/seascapes-admin/pkg/response"
)

// ListingHandler 房源模块 HTTP 处理器
type ListingHandler struct {
	listingSvc service.ListingService
}

// NewListingHandler 创建 ListingHandler
func NewListingHandler(listingSvc service.ListingService) *ListingHandler {
	return &ListingHandler{listingSvc: listingSvc}
}

// ListListings 获取房源列表
// GET /api/v1/listings?town=&q=
func (h *ListingHandler) ListListings(c *gin.Context) {
	var req dto.ListingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	listings, err := h.listingSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKList(c, listings, len(listings))
}

// GetListing 获取房源详情
// GET /api/v1/listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	listing, err := h.listingSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleListingError(c, err)
		return
	}

	response.OK(c, listing)
}

// CreateListing 创建房源
// POST /api/v1/listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	listing, err := h.listingSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleListingError(c, err)
		return
	}

	response.Created(c, listing)
}

// UpdateListing 更新房源详情
// PATCH /api/v1/listings/:id
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	id, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	listing, err := h.listingSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleListingError(c, err)
		return
	}

	response.OK(c, listing)
}

// UpdateListingRates 更新房源默认价格、清洁费与最少晚数
// PUT /api/v1/listings/:id/rates
func (h *ListingHandler) UpdateListingRates(c *gin.Context) {
	id, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	var req dto.UpdateListingRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	listing, err := h.listingSvc.UpdateRates(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleListingError(c, err)
		return
	}

	response.OK(c, listing)
}

// DeleteListing 删除房源（软删除）
// DELETE /api/v1/listings/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	id, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.listingSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleListingError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleListingError 统一处理房源模块业务错误
func (h *ListingHandler) handleListingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrListingNotFound):
		response.NotFound(c, 20001, "房源不存在")
	case errors.Is(err, service.ErrListingNoChanges):
		response.BadRequest(c, 20002, "未检测到任何修改")
	case errors.Is(err, service.ErrListingVersionConflict):
		response.Conflict(c, 20003, "房源已被其他人修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
