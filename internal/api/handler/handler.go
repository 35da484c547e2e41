package handler

import "github.com/AVN-Software/seascapes-admin/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Listing        *ListingHandler
	Season         *SeasonHandler
	RatePlan       *RatePlanHandler
	Amenity        *AmenityHandler
	ListingAmenity *ListingAmenityHandler
	Quote          *QuoteHandler
	Export         *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Listing:        NewListingHandler(svc.Listing),
		Season:         NewSeasonHandler(svc.Season),
		RatePlan:       NewRatePlanHandler(svc.RatePlan),
		Amenity:        NewAmenityHandler(svc.Amenity),
		ListingAmenity: NewListingAmenityHandler(svc.ListingAmenity),
		Quote:          NewQuoteHandler(svc.Quote),
		Export:         NewExportHandler(svc.Export),
	}
}
