package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/internal/service"
	"github.com/AVN-Software/seascapes-admin/pkg/response"
)

// RatePlanHandler 价格方案模块 HTTP 处理器
type RatePlanHandler struct {
	ratePlanSvc service.RatePlanService
}

// NewRatePlanHandler 创建 RatePlanHandler
func NewRatePlanHandler(ratePlanSvc service.RatePlanService) *RatePlanHandler {
	return &RatePlanHandler{ratePlanSvc: ratePlanSvc}
}

// ListRatePlans 获取房源的全部价格方案
// GET /api/v1/listings/:id/rate-plans
func (h *RatePlanHandler) ListRatePlans(c *gin.Context) {
	listingID, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	plans, err := h.ratePlanSvc.ListByListing(c.Request.Context(), listingID)
	if err != nil {
		h.handleRatePlanError(c, err)
		return
	}

	response.OKList(c, plans, len(plans))
}

// AvailableSeasons 获取房源尚可新增方案的季节
// GET /api/v1/listings/:id/rate-plans/available-seasons
func (h *RatePlanHandler) AvailableSeasons(c *gin.Context) {
	listingID, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	seasons, err := h.ratePlanSvc.AvailableSeasons(c.Request.Context(), listingID)
	if err != nil {
		h.handleRatePlanError(c, err)
		return
	}

	response.OKList(c, seasons, len(seasons))
}

// CreateRatePlan 为房源新增季节价格方案
// POST /api/v1/listings/:id/rate-plans
func (h *RatePlanHandler) CreateRatePlan(c *gin.Context) {
	listingID, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	var req dto.CreateRatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	plan, err := h.ratePlanSvc.Create(c.Request.Context(), listingID, &req, callerID)
	if err != nil {
		h.handleRatePlanError(c, err)
		return
	}

	response.Created(c, plan)
}

// UpdateRatePlan 更新价格方案
// PUT /api/v1/rate-plans/:id
func (h *RatePlanHandler) UpdateRatePlan(c *gin.Context) {
	id, ok := MustGetUUIDParam(c, "id", "价格方案ID")
	if !ok {
		return
	}

	var req dto.UpdateRatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	plan, err := h.ratePlanSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleRatePlanError(c, err)
		return
	}

	response.OK(c, plan)
}

// DeleteRatePlan 删除价格方案
// DELETE /api/v1/rate-plans/:id
func (h *RatePlanHandler) DeleteRatePlan(c *gin.Context) {
	id, ok := MustGetUUIDParam(c, "id", "价格方案ID")
	if !ok {
		return
	}

	if err := h.ratePlanSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleRatePlanError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleRatePlanError 统一处理价格方案模块业务错误
func (h *RatePlanHandler) handleRatePlanError(c *gin.Context, err error) {
	if writePricingError(c, 22003, 21003, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrRatePlanNotFound):
		response.NotFound(c, 22001, "价格方案不存在")
	case errors.Is(err, service.ErrRatePlanDuplicate):
		response.Conflict(c, 22002, "该房源在此季节下已有价格方案")
	case errors.Is(err, service.ErrListingNotFound):
		response.NotFound(c, 20001, "房源不存在")
	case errors.Is(err, service.ErrSeasonNotFound):
		response.NotFound(c, 21001, "季节不存在")
	default:
		response.InternalError(c)
	}
}
