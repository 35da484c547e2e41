package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/internal/model"
	"github.com/AVN-Software/seascapes-admin/internal/pricing"
	"github.com/AVN-Software/seascapes-admin/internal/repository"
)

// ── 季节模块业务错误 ──

var (
	ErrSeasonNotFound = errors.New("季节不存在")
	ErrSeasonInUse    = errors.New("季节已被价格方案引用，无法删除")
)

// SeasonService 季节业务接口
//
// 季节的任何写操作都会改变所有房源的计价结果，因此写入后清空全部价格方案缓存。
// 写入前校验：区间合法、同一季节内区间不重叠、不与其他同优先级启用季节重叠
// （后者返回 pricing.ErrAmbiguousSeason）。
type SeasonService interface {
	List(ctx context.Context, req *dto.SeasonListRequest) ([]dto.SeasonResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SeasonResponse, error)
	Create(ctx context.Context, req *dto.CreateSeasonRequest, callerID string) (*dto.SeasonResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSeasonRequest, callerID string) (*dto.SeasonResponse, error)
	SetActive(ctx context.Context, id string, active bool, callerID string) (*dto.SeasonResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type seasonService struct {
	repo   *repository.Repository
	cache  RatePlanCache
	logger *zap.Logger
}

// NewSeasonService 创建 SeasonService 实例
func NewSeasonService(repo *repository.Repository, cache RatePlanCache, logger *zap.Logger) SeasonService {
	return &seasonService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *seasonService) List(ctx context.Context, req *dto.SeasonListRequest) ([]dto.SeasonResponse, error) {
	seasons, err := s.repo.Season.List(ctx, req.IncludeInactive)
	if err != nil {
		s.logger.Error("列出季节失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SeasonResponse, 0, len(seasons))
	for i := range seasons {
		result = append(result, *toSeasonResponse(&seasons[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *seasonService) GetByID(ctx context.Context, id string) (*dto.SeasonResponse, error) {
	season, err := s.getSeason(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSeasonResponse(season), nil
}

// ────────────────────── Create ──────────────────────

func (s *seasonService) Create(ctx context.Context, req *dto.CreateSeasonRequest, callerID string) (*dto.SeasonResponse, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	season := &model.Season{
		Name:        req.Name,
		DateRanges:  toModelRanges(req.DateRanges),
		MinimumStay: req.MinimumStay,
		Priority:    req.Priority,
		Active:      active,
	}
	season.CreatedBy = model.StrPtr(callerID)
	season.UpdatedBy = model.StrPtr(callerID)

	if err := s.validate(ctx, season); err != nil {
		return nil, err
	}

	if err := s.repo.Season.Create(ctx, season); err != nil {
		s.logger.Error("创建季节失败", zap.Error(err))
		return nil, err
	}

	s.cache.InvalidateAll(ctx)
	s.logger.Info("季节已创建", zap.String("id", season.ID), zap.String("name", season.Name))
	return toSeasonResponse(season), nil
}

// ────────────────────── Update ──────────────────────

func (s *seasonService) Update(ctx context.Context, id string, req *dto.UpdateSeasonRequest, callerID string) (*dto.SeasonResponse, error) {
	season, err := s.getSeason(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		season.Name = *req.Name
	}
	if req.DateRanges != nil {
		season.DateRanges = toModelRanges(req.DateRanges)
	}
	if req.MinimumStay != nil {
		season.MinimumStay = *req.MinimumStay
	}
	if req.Priority != nil {
		season.Priority = *req.Priority
	}
	if req.Active != nil {
		season.Active = *req.Active
	}
	season.UpdatedBy = model.StrPtr(callerID)

	return s.save(ctx, season)
}

// ────────────────────── SetActive ──────────────────────

func (s *seasonService) SetActive(ctx context.Context, id string, active bool, callerID string) (*dto.SeasonResponse, error) {
	season, err := s.getSeason(ctx, id)
	if err != nil {
		return nil, err
	}
	if season.Active == active {
		return toSeasonResponse(season), nil
	}

	season.Active = active
	season.UpdatedBy = model.StrPtr(callerID)
	return s.save(ctx, season)
}

func (s *seasonService) save(ctx context.Context, season *model.Season) (*dto.SeasonResponse, error) {
	if err := s.validate(ctx, season); err != nil {
		return nil, err
	}

	if err := s.repo.Season.Update(ctx, season); err != nil {
		s.logger.Error("更新季节失败", zap.String("id", season.ID), zap.Error(err))
		return nil, err
	}

	s.cache.InvalidateAll(ctx)
	return toSeasonResponse(season), nil
}

// ────────────────────── Delete ──────────────────────

func (s *seasonService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.getSeason(ctx, id); err != nil {
		return err
	}

	refs, err := s.repo.RatePlan.CountBySeason(ctx, id)
	if err != nil {
		s.logger.Error("统计季节引用失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if refs > 0 {
		return ErrSeasonInUse
	}

	if err := s.repo.Season.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除季节失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.cache.InvalidateAll(ctx)
	s.logger.Info("季节已删除", zap.String("id", id), zap.String("by", callerID))
	return nil
}

// ── 辅助方法 ──

func (s *seasonService) getSeason(ctx context.Context, id string) (*model.Season, error) {
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

// validate 校验季节本身并检查与其他季节的优先级冲突
func (s *seasonService) validate(ctx context.Context, season *model.Season) error {
	candidate, err := season.ToPricing()
	if err != nil {
		return err
	}
	if err := pricing.ValidateSeason(candidate); err != nil {
		return err
	}

	existing, err := s.repo.Season.List(ctx, false)
	if err != nil {
		s.logger.Error("查询季节列表失败", zap.Error(err))
		return err
	}

	others := make([]pricing.Season, 0, len(existing))
	for i := range existing {
		ps, err := existing[i].ToPricing()
		if err != nil {
			// 历史数据格式异常的季节不参与冲突检查
			s.logger.Warn("季节日期格式异常", zap.String("id", existing[i].ID), zap.Error(err))
			continue
		}
		others = append(others, ps)
	}

	return pricing.CheckPriorityConflicts(candidate, others)
}

func toModelRanges(ranges []dto.DateRangeDTO) datatypes.JSONSlice[model.DateRange] {
	out := make([]model.DateRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, model.DateRange{StartDate: r.StartDate, EndDate: r.EndDate})
	}
	return datatypes.NewJSONSlice(out)
}

func toSeasonResponse(s *model.Season) *dto.SeasonResponse {
	ranges := make([]dto.DateRangeDTO, 0, len(s.DateRanges))
	for _, r := range s.DateRanges {
		ranges = append(ranges, dto.DateRangeDTO{StartDate: r.StartDate, EndDate: r.EndDate})
	}
	return &dto.SeasonResponse{
		ID:          s.ID,
		Name:        s.Name,
		DateRanges:  ranges,
		MinimumStay: s.MinimumStay,
		Priority:    s.Priority,
		Active:      s.Active,
		CreatedAt:   dto.FormatTime(s.CreatedAt),
		UpdatedAt:   dto.FormatTime(s.UpdatedAt),
	}
}
