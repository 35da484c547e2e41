package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/internal/model"
	"github.com/AVN-Software/seascapes-admin/internal/pricing"
	"github.com/AVN-Software/seascapes-admin/internal/repository"
)

// ── 价格方案模块业务错误 ──

var (
	ErrRatePlanNotFound  = errors.New("价格方案不存在")
	ErrRatePlanDuplicate = errors.New("该房源在此季节下已有价格方案")
)

// RatePlanService 价格方案业务接口
type RatePlanService interface {
	ListByListing(ctx context.Context, listingID string) ([]dto.RatePlanResponse, error)
	// AvailableSeasons 房源尚未设置方案的启用季节
	AvailableSeasons(ctx context.Context, listingID string) ([]dto.SeasonResponse, error)
	Create(ctx context.Context, listingID string, req *dto.CreateRatePlanRequest, callerID string) (*dto.RatePlanResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateRatePlanRequest, callerID string) (*dto.RatePlanResponse, error)
	Delete(ctx context.Context, id string) error
}

type ratePlanService struct {
	repo   *repository.Repository
	cache  RatePlanCache
	logger *zap.Logger
}

// NewRatePlanService 创建 RatePlanService 实例
func NewRatePlanService(repo *repository.Repository, cache RatePlanCache, logger *zap.Logger) RatePlanService {
	return &ratePlanService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── ListByListing ──────────────────────

func (s *ratePlanService) ListByListing(ctx context.Context, listingID string) ([]dto.RatePlanResponse, error) {
	if err := s.ensureListing(ctx, listingID); err != nil {
		return nil, err
	}

	plans, err := s.repo.RatePlan.ListByListing(ctx, listingID)
	if err != nil {
		s.logger.Error("列出价格方案失败", zap.String("listing_id", listingID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.RatePlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, *s.toRatePlanResponse(&plans[i]))
	}
	return result, nil
}

// ────────────────────── AvailableSeasons ──────────────────────

func (s *ratePlanService) AvailableSeasons(ctx context.Context, listingID string) ([]dto.SeasonResponse, error) {
	if err := s.ensureListing(ctx, listingID); err != nil {
		return nil, err
	}

	plans, err := s.repo.RatePlan.ListByListing(ctx, listingID)
	if err != nil {
		s.logger.Error("列出价格方案失败", zap.String("listing_id", listingID), zap.Error(err))
		return nil, err
	}
	used := make(map[string]bool, len(plans))
	for _, p := range plans {
		used[p.SeasonID] = true
	}

	seasons, err := s.repo.Season.List(ctx, false)
	if err != nil {
		s.logger.Error("列出季节失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SeasonResponse, 0, len(seasons))
	for i := range seasons {
		if used[seasons[i].ID] {
			continue
		}
		result = append(result, *toSeasonResponse(&seasons[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *ratePlanService) Create(ctx context.Context, listingID string, req *dto.CreateRatePlanRequest, callerID string) (*dto.RatePlanResponse, error) {
	if err := s.ensureListing(ctx, listingID); err != nil {
		return nil, err
	}
	season, err := s.getSeason(ctx, req.SeasonID)
	if err != nil {
		return nil, err
	}

	adj := model.RateAdjustment{Type: string(pricing.AdjustmentFixed), Value: decimal.Zero}
	if req.RateAdjustment != nil {
		adj = toModelAdjustment(req.RateAdjustment)
	}
	plan := &model.RatePlan{
		ListingID:      listingID,
		SeasonID:       season.ID,
		Price:          dto.ToDecimal(req.Price),
		RateAdjustment: datatypes.NewJSONType(adj),
	}
	plan.CreatedBy = model.StrPtr(callerID)
	plan.UpdatedBy = model.StrPtr(callerID)

	if _, err := pricing.CalculateFinalPrice(plan.Price, plan.Adjustment()); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, listingID, season.ID, ""); err != nil {
		return nil, err
	}

	if err := s.repo.RatePlan.Create(ctx, plan); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRatePlanDuplicate
		}
		s.logger.Error("创建价格方案失败", zap.Error(err))
		return nil, err
	}
	plan.Season = season

	s.cache.Invalidate(ctx, listingID)
	s.logger.Info("价格方案已创建",
		zap.String("id", plan.ID),
		zap.String("listing_id", listingID),
		zap.String("season_id", season.ID),
	)
	return s.toRatePlanResponse(plan), nil
}

// ────────────────────── Update ──────────────────────

func (s *ratePlanService) Update(ctx context.Context, id string, req *dto.UpdateRatePlanRequest, callerID string) (*dto.RatePlanResponse, error) {
	plan, err := s.repo.RatePlan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatePlanNotFound
		}
		s.logger.Error("查询价格方案失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.SeasonID != nil && *req.SeasonID != plan.SeasonID {
		season, err := s.getSeason(ctx, *req.SeasonID)
		if err != nil {
			return nil, err
		}
		if err := s.ensureUnique(ctx, plan.ListingID, season.ID, plan.ID); err != nil {
			return nil, err
		}
		plan.SeasonID = season.ID
		plan.Season = season
	}
	if req.Price != nil {
		plan.Price = dto.ToDecimal(*req.Price)
	}
	if req.RateAdjustment != nil {
		plan.RateAdjustment = datatypes.NewJSONType(toModelAdjustment(req.RateAdjustment))
	}
	plan.UpdatedBy = model.StrPtr(callerID)

	if _, err := pricing.CalculateFinalPrice(plan.Price, plan.Adjustment()); err != nil {
		return nil, err
	}

	if err := s.repo.RatePlan.Update(ctx, plan); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRatePlanDuplicate
		}
		s.logger.Error("更新价格方案失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.cache.Invalidate(ctx, plan.ListingID)
	return s.toRatePlanResponse(plan), nil
}

// ────────────────────── Delete ──────────────────────

func (s *ratePlanService) Delete(ctx context.Context, id string) error {
	plan, err := s.repo.RatePlan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatePlanNotFound
		}
		s.logger.Error("查询价格方案失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.RatePlan.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatePlanNotFound
		}
		s.logger.Error("删除价格方案失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.cache.Invalidate(ctx, plan.ListingID)
	return nil
}

// ── 辅助方法 ──

func (s *ratePlanService) ensureListing(ctx context.Context, listingID string) error {
	if _, err := s.repo.Listing.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingNotFound
		}
		s.logger.Error("查询房源失败", zap.String("id", listingID), zap.Error(err))
		return err
	}
	return nil
}

func (s *ratePlanService) getSeason(ctx context.Context, id string) (*model.Season, error) {
	season, err := s.repo.Season.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		s.logger.Error("查询季节失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return season, nil
}

func (s *ratePlanService) ensureUnique(ctx context.Context, listingID, seasonID, excludeID string) error {
	exists, err := s.repo.RatePlan.ExistsForSeason(ctx, listingID, seasonID, excludeID)
	if err != nil {
		s.logger.Error("检查价格方案唯一性失败", zap.Error(err))
		return err
	}
	if exists {
		return ErrRatePlanDuplicate
	}
	return nil
}

func toModelAdjustment(a *dto.RateAdjustmentDTO) model.RateAdjustment {
	return model.RateAdjustment{
		Type:  a.Type,
		Value: decimal.NewFromFloat(a.Value).Round(2),
	}
}

func (s *ratePlanService) toRatePlanResponse(p *model.RatePlan) *dto.RatePlanResponse {
	adj := p.RateAdjustment.Data()
	resp := &dto.RatePlanResponse{
		ID:        p.ID,
		ListingID: p.ListingID,
		SeasonID:  p.SeasonID,
		Price:     dto.Money(p.Price),
		RateAdjustment: dto.RateAdjustmentDTO{
			Type:  adj.Type,
			Value: adj.Value.InexactFloat64(),
		},
		CreatedAt: dto.FormatTime(p.CreatedAt),
		UpdatedAt: dto.FormatTime(p.UpdatedAt),
	}
	if p.Season != nil {
		resp.Season = toSeasonResponse(p.Season)
	}

	final, err := pricing.CalculateFinalPrice(p.Price, p.Adjustment())
	if err != nil {
		s.logger.Warn("价格方案数据异常", zap.String("id", p.ID), zap.Error(err))
	}
	resp.FinalPrice = dto.Money(final)
	return resp
}
