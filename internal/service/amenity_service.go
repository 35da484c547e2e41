package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/internal/model"
	"github.com/AVN-Software/seascapes-admin/internal/repository"
)

// ── 设施模块业务错误 ──

var (
	ErrAmenityNotFound   = errors.New("设施不存在")
	ErrAmenityNameExists = errors.New("设施名称已存在")
)

// UncategorizedAmenity 未分类设施的分组名
const UncategorizedAmenity = "Other"

// AmenityService 设施目录业务接口
type AmenityService interface {
	List(ctx context.Context, req *dto.AmenityListRequest) ([]dto.AmenityResponse, error)
	// Grouped 按分类分组，分类名升序，未分类归入 "Other" 并排在最后
	Grouped(ctx context.Context) ([]dto.AmenityGroupResponse, error)
	Create(ctx context.Context, req *dto.CreateAmenityRequest, callerID string) (*dto.AmenityResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAmenityRequest, callerID string) (*dto.AmenityResponse, error)
	// Delete 同时删除所有房源上的该设施关联
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}

type amenityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAmenityService 创建 AmenityService 实例
func NewAmenityService(repo *repository.Repository, logger *zap.Logger) AmenityService {
	return &amenityService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *amenityService) List(ctx context.Context, req *dto.AmenityListRequest) ([]dto.AmenityResponse, error) {
	amenities, err := s.repo.Amenity.List(ctx, req.Q)
	if err != nil {
		s.logger.Error("列出设施失败", zap.Error(err))
		return nil, err
	}
	return toAmenityResponses(amenities), nil
}

// ────────────────────── Grouped ──────────────────────

func (s *amenityService) Grouped(ctx context.Context) ([]dto.AmenityGroupResponse, error) {
	amenities, err := s.repo.Amenity.List(ctx, "")
	if err != nil {
		s.logger.Error("列出设施失败", zap.Error(err))
		return nil, err
	}

	groups := map[string][]dto.AmenityResponse{}
	for i := range amenities {
		resp := toAmenityResponse(&amenities[i])
		key := resp.Category
		if key == "" {
			key = UncategorizedAmenity
		}
		groups[key] = append(groups[key], *resp)
	}

	categories := make([]string, 0, len(groups))
	for k := range groups {
		categories = append(categories, k)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := categories[i], categories[j]
		if a == UncategorizedAmenity || b == UncategorizedAmenity {
			return b == UncategorizedAmenity && a != UncategorizedAmenity
		}
		return a < b
	})

	result := make([]dto.AmenityGroupResponse, 0, len(categories))
	for _, c := range categories {
		items := groups[c]
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		result = append(result, dto.AmenityGroupResponse{Category: c, Amenities: items})
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *amenityService) Create(ctx context.Context, req *dto.CreateAmenityRequest, callerID string) (*dto.AmenityResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	amenity := &model.Amenity{
		Name:     name,
		Category: normalizeCategory(req.Category),
		Icon:     req.Icon,
	}
	amenity.CreatedBy = model.StrPtr(callerID)
	amenity.UpdatedBy = model.StrPtr(callerID)

	if err := s.repo.Amenity.Create(ctx, amenity); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAmenityNameExists
		}
		s.logger.Error("创建设施失败", zap.Error(err))
		return nil, err
	}

	return toAmenityResponse(amenity), nil
}

// ────────────────────── Update ──────────────────────

func (s *amenityService) Update(ctx context.Context, id string, req *dto.UpdateAmenityRequest, callerID string) (*dto.AmenityResponse, error) {
	amenity, err := s.getAmenity(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, amenity.Name) {
			if err := s.ensureNameFree(ctx, name, amenity.ID); err != nil {
				return nil, err
			}
		}
		amenity.Name = name
	}
	if req.Category != nil {
		amenity.Category = normalizeCategory(req.Category)
	}
	if req.Icon != nil {
		amenity.Icon = *req.Icon
	}
	amenity.UpdatedBy = model.StrPtr(callerID)

	if err := s.repo.Amenity.Update(ctx, amenity); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAmenityNameExists
		}
		s.logger.Error("更新设施失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toAmenityResponse(amenity), nil
}

// ────────────────────── Delete ──────────────────────

func (s *amenityService) Delete(ctx context.Context, id string) error {
	if _, err := s.getAmenity(ctx, id); err != nil {
		return err
	}
	_, err := s.deleteAmenities(ctx, []string{id})
	return err
}

func (s *amenityService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	return s.deleteAmenities(ctx, uniqueStrings(ids))
}

// deleteAmenities 在同一事务中删除关联与设施
func (s *amenityService) deleteAmenities(ctx context.Context, ids []string) (int64, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return 0, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.AmenityMap.DeleteByAmenities(ctx, ids); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除设施关联失败", zap.Error(err))
		return 0, err
	}

	deleted, err := txRepo.Amenity.DeleteByIDs(ctx, ids)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除设施失败", zap.Error(err))
		return 0, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return 0, err
		}
	}

	s.logger.Info("设施已删除", zap.Strings("ids", ids), zap.Int64("deleted", deleted))
	return deleted, nil
}

// ── 辅助方法 ──

func (s *amenityService) getAmenity(ctx context.Context, id string) (*model.Amenity, error) {
	amenity, err := s.repo.Amenity.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAmenityNotFound
		}
		s.logger.Error("查询设施失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return amenity, nil
}

func (s *amenityService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.Amenity.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("查询设施名称失败", zap.Error(err))
		return err
	}
	if existing.ID != selfID {
		return ErrAmenityNameExists
	}
	return nil
}

func normalizeCategory(c *string) *string {
	if c == nil {
		return nil
	}
	return model.StrPtr(strings.TrimSpace(*c))
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func toAmenityResponse(a *model.Amenity) *dto.AmenityResponse {
	resp := &dto.AmenityResponse{
		ID:        a.ID,
		Name:      a.Name,
		Icon:      a.Icon,
		CreatedAt: dto.FormatTime(a.CreatedAt),
		UpdatedAt: dto.FormatTime(a.UpdatedAt),
	}
	if a.Category != nil {
		resp.Category = *a.Category
	}
	return resp
}

func toAmenityResponses(amenities []model.Amenity) []dto.AmenityResponse {
	result := make([]dto.AmenityResponse, 0, len(amenities))
	for i := range amenities {
		result = append(result, *toAmenityResponse(&amenities[i]))
	}
	return result
}
