package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/internal/service"
	"github.com/AVN-Software/seascapes-admin/pkg/response"
)

// SeasonHandler 季节模块 HTTP 处理器
type SeasonHandler struct {
	seasonSvc service.SeasonService
}

// NewSeasonHandler 创建 SeasonHandler
func NewSeasonHandler(seasonSvc service.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasonSvc: seasonSvc}
}

// ListSeasons 获取季节列表
// GET /api/v1/seasons?include_inactive=true
func (h *SeasonHandler) ListSeasons(c *gin.Context) {
	var req dto.SeasonListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	seasons, err := h.seasonSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKList(c, seasons, len(seasons))
}

// GetSeason 获取季节详情
// GET /api/v1/seasons/:id
func (h *SeasonHandler) GetSeason(c *gin.Context) {
	id, ok := MustGetUUIDParam(c, "id", "季节ID")
	if !ok {
		return
	}

	season, err := h.seasonSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.OK(c, season)
}

// CreateSeason 创建季节
// POST /api/v1/seasons
func (h *SeasonHandler) CreateSeason(c *gin.Context) {
	var req dto.CreateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	season, err := h.seasonSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.Created(c, season)
}

// UpdateSeason 更新季节
// PATCH /api/v1/seasons/:id
func (h *SeasonHandler) UpdateSeason(c *gin.Context) {
	id, ok := MustGetUUIDParam(c, "id", "季节ID")
	if !ok {
		return
	}

	var req dto.UpdateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	season, err := h.seasonSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.OK(c, season)
}

// SetSeasonActive 启用/停用季节
// PUT /api/v1/seasons/:id/active
func (h *SeasonHandler) SetSeasonActive(c *gin.Context) {
	id, ok := MustGetUUIDParam(c, "id", "季节ID")
	if !ok {
		return
	}

	var req dto.SetSeasonActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	season, err := h.seasonSvc.SetActive(c.Request.Context(), id, *req.Active, callerID)
	if err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.OK(c, season)
}

// DeleteSeason 删除季节
// DELETE /api/v1/seasons/:id
func (h *SeasonHandler) DeleteSeason(c *gin.Context) {
	id, ok := MustGetUUIDParam(c, "id", "季节ID")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.seasonSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleSeasonError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleSeasonError 统一处理季节模块业务错误
func (h *SeasonHandler) handleSeasonError(c *gin.Context, err error) {
	if writePricingError(c, 21002, 21003, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrSeasonNotFound):
		response.NotFound(c, 21001, "季节不存在")
	case errors.Is(err, service.ErrSeasonInUse):
		response.Conflict(c, 21004, "季节已被价格方案引用，无法删除")
	default:
		response.InternalError(c)
	}
}
