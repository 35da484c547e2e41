package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/AVN-Software/seascapes-admin/internal/service"
	"github.com/AVN-Software/seascapes-admin/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportRateSheet 导出房源价格表
// GET /api/v1/listings/:id/rate-plans/export
func (h *ExportHandler) ExportRateSheet(c *gin.Context) {
	listingID, ok := MustGetUUIDParam(c, "id", "房源ID")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportRateSheet(c.Request.Context(), listingID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.File(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportSeasonCalendar 导出启用季节的 iCalendar 日历
// GET /api/v1/seasons/export.ics
func (h *ExportHandler) ExportSeasonCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportSeasonCalendar(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.File(c, filename, contentTypeICS, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrListingNotFound):
		response.NotFound(c, 20001, "房源不存在")
	default:
		response.InternalError(c)
	}
}
