package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/internal/model"
	"github.com/AVN-Software/seascapes-admin/internal/repository"
	pkgerrors "github.com/AVN-Software/seascapes-admin/pkg/errors"
	"github.com/AVN-Software/seascapes-admin/pkg/storage"
)

// ── 房源模块业务错误 ──

var (
	ErrListingNotFound        = errors.New("房源不存在")
	ErrListingNoChanges       = errors.New("未检测到任何修改")
	ErrListingVersionConflict = errors.New("房源已被其他人修改，请刷新后重试")
)

// ListingService 房源业务接口
type ListingService interface {
	List(ctx context.Context, req *dto.ListingListRequest) ([]dto.ListingResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ListingResponse, error)
	Create(ctx context.Context, req *dto.CreateListingRequest, callerID string) (*dto.ListingResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateListingRequest, callerID string) (*dto.ListingResponse, error)
	UpdateRates(ctx context.Context, id string, req *dto.UpdateListingRatesRequest, callerID string) (*dto.ListingResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type listingService struct {
	repo   *repository.Repository
	images *storage.URLBuilder
	cache  RatePlanCache
	logger *zap.Logger
}

// NewListingService 创建 ListingService 实例
func NewListingService(repo *repository.Repository, images *storage.URLBuilder, cache RatePlanCache, logger *zap.Logger) ListingService {
	return &listingService{repo: repo, images: images, cache: cache, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *listingService) List(ctx context.Context, req *dto.ListingListRequest) ([]dto.ListingResponse, error) {
	listings, err := s.repo.Listing.List(ctx, repository.ListingFilter{Town: req.Town, Query: req.Q})
	if err != nil {
		s.logger.Error("列出房源失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ListingResponse, 0, len(listings))
	for i := range listings {
		result = append(result, *s.toListingResponse(&listings[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *listingService) GetByID(ctx context.Context, id string) (*dto.ListingResponse, error) {
	listing, err := s.getListing(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toListingResponse(listing), nil
}

// ────────────────────── Create ──────────────────────

func (s *listingService) Create(ctx context.Context, req *dto.CreateListingRequest, callerID string) (*dto.ListingResponse, error) {
	minStay := req.MinStay
	if minStay <= 0 {
		minStay = 1
	}

	listing := &model.Listing{
		Title:        req.Title,
		TownName:     req.TownName,
		PropertyType: req.PropertyType,
		NumBedrooms:  req.NumBedrooms,
		NumBaths:     req.NumBaths,
		MaxGuests:    req.MaxGuests,
		PetsAllowed:  req.PetsAllowed,
		CleaningFee:  dto.ToDecimal(req.CleaningFee),
		DefaultPrice: dto.ToDecimal(req.DefaultPrice),
		MinStay:      minStay,
		CoverImg:     req.CoverImg,
		ListingDesc:  req.ListingDesc,
		PropertyDesc: req.PropertyDesc,
	}
	listing.Version = 1
	listing.CreatedBy = model.StrPtr(callerID)
	listing.UpdatedBy = model.StrPtr(callerID)

	if err := s.repo.Listing.Create(ctx, listing); err != nil {
		s.logger.Error("创建房源失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("房源已创建", zap.String("id", listing.ID), zap.String("title", listing.Title))
	return s.toListingResponse(listing), nil
}

// ────────────────────── Update ──────────────────────

func (s *listingService) Update(ctx context.Context, id string, req *dto.UpdateListingRequest, callerID string) (*dto.ListingResponse, error) {
	listing, err := s.getListing(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	setIfChanged(fields, "title", req.Title, listing.Title)
	setIfChanged(fields, "townname", req.TownName, listing.TownName)
	setIfChanged(fields, "property_type", req.PropertyType, listing.PropertyType)
	setIfChanged(fields, "num_bedrooms", req.NumBedrooms, listing.NumBedrooms)
	setIfChanged(fields, "num_baths", req.NumBaths, listing.NumBaths)
	setIfChanged(fields, "max_guests", req.MaxGuests, listing.MaxGuests)
	setIfChanged(fields, "pets_allowed", req.PetsAllowed, listing.PetsAllowed)
	setIfChanged(fields, "cover_img", req.CoverImg, listing.CoverImg)
	setIfChanged(fields, "listing_desc", req.ListingDesc, listing.ListingDesc)
	setIfChanged(fields, "property_desc", req.PropertyDesc, listing.PropertyDesc)

	return s.applyUpdate(ctx, listing, req.Version, fields, callerID)
}

// ────────────────────── UpdateRates ──────────────────────

func (s *listingService) UpdateRates(ctx context.Context, id string, req *dto.UpdateListingRatesRequest, callerID string) (*dto.ListingResponse, error) {
	listing, err := s.getListing(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.DefaultPrice != nil {
		if v := dto.ToDecimal(*req.DefaultPrice); !v.Equal(listing.DefaultPrice) {
			fields["default_price"] = v
		}
	}
	if req.CleaningFee != nil {
		if v := dto.ToDecimal(*req.CleaningFee); !v.Equal(listing.CleaningFee) {
			fields["cleaning_fee"] = v
		}
	}
	setIfChanged(fields, "min_stay", req.MinStay, listing.MinStay)

	return s.applyUpdate(ctx, listing, req.Version, fields, callerID)
}

// applyUpdate 以乐观锁写入变更字段并返回最新数据
func (s *listingService) applyUpdate(ctx context.Context, listing *model.Listing, version int, fields map[string]interface{}, callerID string) (*dto.ListingResponse, error) {
	if version != listing.Version {
		return nil, ErrListingVersionConflict
	}
	if len(fields) == 0 {
		return nil, ErrListingNoChanges
	}
	fields["updated_by"] = model.StrPtr(callerID)

	if err := s.repo.Listing.UpdateFields(ctx, listing.ID, version, fields); err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrOptimisticLock):
			return nil, ErrListingVersionConflict
		case errors.Is(err, pkgerrors.ErrEmptyUpdate):
			return nil, ErrListingNoChanges
		}
		s.logger.Error("更新房源失败", zap.String("id", listing.ID), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, listing.ID)
}

// ────────────────────── Delete ──────────────────────

func (s *listingService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.getListing(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Listing.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingNotFound
		}
		s.logger.Error("删除房源失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.cache.Invalidate(ctx, id)
	s.logger.Info("房源已删除", zap.String("id", id), zap.String("by", callerID))
	return nil
}

// ── 辅助方法 ──

func (s *listingService) getListing(ctx context.Context, id string) (*model.Listing, error) {
	listing, err := s.repo.Listing.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		s.logger.Error("查询房源失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return listing, nil
}

func (s *listingService) toListingResponse(l *model.Listing) *dto.ListingResponse {
	return &dto.ListingResponse{
		ID:           l.ID,
		Title:        l.Title,
		TownName:     l.TownName,
		PropertyType: l.PropertyType,
		NumBedrooms:  l.NumBedrooms,
		NumBaths:     l.NumBaths,
		MaxGuests:    l.MaxGuests,
		PetsAllowed:  l.PetsAllowed,
		CleaningFee:  dto.Money(l.CleaningFee),
		DefaultPrice: dto.Money(l.DefaultPrice),
		MinStay:      l.MinStay,
		CoverImg:     l.CoverImg,
		CoverImgURL:  s.images.ListingImageURL(l.ID, l.CoverImg),
		ListingDesc:  l.ListingDesc,
		PropertyDesc: l.PropertyDesc,
		Version:      l.Version,
		CreatedAt:    dto.FormatTime(l.CreatedAt),
		UpdatedAt:    dto.FormatTime(l.UpdatedAt),
	}
}

// setIfChanged 请求值非空且与当前值不同时写入 fields
func setIfChanged[T comparable](fields map[string]interface{}, column string, next *T, current T) {
	if next != nil && *next != current {
		fields[column] = *next
	}
}
