package service

import (
	"go.uber.org/zap"

	"github.com/AVN-Software/seascapes-admin/config"
	"github.com/AVN-Software/seascapes-admin/internal/repository"
	"github.com/AVN-Software/seascapes-admin/pkg/redis"
	"github.com/AVN-Software/seascapes-admin/pkg/storage"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Listing        ListingService
	Season         SeasonService
	RatePlan       RatePlanService
	Amenity        AmenityService
	ListingAmenity ListingAmenityService
	Quote          QuoteService
	Export         ExportService
}

// NewService 创建 Service 聚合
// rdb 可为 nil（Redis 不可用时不缓存）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	cache := NewRatePlanCache(rdb, cfg.Cache.RatePlanTTL, logger)
	images := storage.NewURLBuilder(&cfg.Storage)

	return &Service{
		Listing:        NewListingService(repo, images, cache, logger),
		Season:         NewSeasonService(repo, cache, logger),
		RatePlan:       NewRatePlanService(repo, cache, logger),
		Amenity:        NewAmenityService(repo, logger),
		ListingAmenity: NewListingAmenityService(repo, logger),
		Quote:          NewQuoteService(repo, cache, logger),
		Export:         NewExportService(repo, logger),
	}
}
