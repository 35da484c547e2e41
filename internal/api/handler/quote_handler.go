package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/internal/service"
	"github.com/AVN-Software/seascapes-admin/pkg/response"
)

// QuoteHandler 报价 HTTP 处理器
type QuoteHandler struct {
	quoteSvc service.QuoteService
}

// NewQuoteHandler 创建 QuoteHandler
func NewQuoteHandler(quoteSvc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc}
}

// NightlyQuote 查询房源某晚价格
// GET /api/v1/listings/:id/quote?date=2025-12-24
func (h *QuoteHandler) NightlyQuote(c *gin.Context) {
	listingID, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	var req dto.NightlyQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	quote, err := h.quoteSvc.NightlyRate(c.Request.Context(), listingID, req.Date)
	if err != nil {
		h.handleQuoteError(c, err)
		return
	}

	response.OK(c, quote)
}

// StayQuote 计算整段入住报价
// GET /api/v1/listings/:id/quote/stay?check_in=&check_out=
func (h *QuoteHandler) StayQuote(c *gin.Context) {
	listingID, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	var req dto.StayQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	quote, err := h.quoteSvc.StayQuote(c.Request.Context(), listingID, req.CheckIn, req.CheckOut)
	if err != nil {
		h.handleQuoteError(c, err)
		return
	}

	response.OK(c, quote)
}

func (h *QuoteHandler) handleQuoteError(c *gin.Context, err error) {
	if writePricingError(c, 24001, 24002, err) {
		return
	}
	if errors.Is(err, service.ErrListingNotFound) {
		response.NotFound(c, 20001, "房源不存在")
		return
	}
	response.InternalError(c)
}
