package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AVN-Software/seascapes-admin/internal/dto"
	"github.com/AVN-Software/seascapes-admin/internal/model"
	"github.com/AVN-Software/seascapes-admin/internal/repository"
)

// ── 房源设施业务错误 ──

var (
	ErrAmenityAlreadyAssigned = errors.New("房源已包含该设施")
	ErrAmenityNotAssigned     = errors.New("房源未包含该设施")
)

// ListingAmenityService 房源设施关联业务接口
type ListingAmenityService interface {
	// List 关联中指向已删除设施的记录会被过滤并计入 Orphaned
	List(ctx context.Context, listingID string) (*dto.ListingAmenitiesResponse, error)
	// Replace 整体替换房源设施；重复 ID 合并，任一 ID 不存在则整体失败
	Replace(ctx context.Context, listingID string, amenityIDs []string, callerID string) (*dto.ListingAmenitiesResponse, error)
	Assign(ctx context.Context, listingID, amenityID string, callerID string) error
	Unassign(ctx context.Context, listingID, amenityID string) error
}

type listingAmenityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewListingAmenityService 创建 ListingAmenityService 实例
func NewListingAmenityService(repo *repository.Repository, logger *zap.Logger) ListingAmenityService {
	return &listingAmenityService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *listingAmenityService) List(ctx context.Context, listingID string) (*dto.ListingAmenitiesResponse, error) {
	if err := s.ensureListing(ctx, listingID); err != nil {
		return nil, err
	}

	maps, err := s.repo.AmenityMap.ListByListing(ctx, listingID)
	if err != nil {
		s.logger.Error("查询房源设施关联失败", zap.String("listing_id", listingID), zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(maps))
	for _, m := range maps {
		ids = append(ids, m.AmenityID)
	}
	ids = uniqueStrings(ids)

	amenities, err := s.repo.Amenity.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("查询设施失败", zap.Error(err))
		return nil, err
	}

	orphaned := len(ids) - len(amenities)
	if orphaned > 0 {
		s.logger.Warn("房源存在指向已删除设施的关联",
			zap.String("listing_id", listingID),
			zap.Int("orphaned", orphaned),
		)
	}

	return &dto.ListingAmenitiesResponse{
		ListingID: listingID,
		Amenities: toAmenityResponses(amenities),
		Orphaned:  orphaned,
	}, nil
}

// ────────────────────── Replace ──────────────────────

func (s *listingAmenityService) Replace(ctx context.Context, listingID string, amenityIDs []string, callerID string) (*dto.ListingAmenitiesResponse, error) {
	if err := s.ensureListing(ctx, listingID); err != nil {
		return nil, err
	}

	ids := uniqueStrings(amenityIDs)
	found, err := s.repo.Amenity.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("查询设施失败", zap.Error(err))
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, ErrAmenityNotFound
	}

	maps := make([]model.AmenityMap, 0, len(ids))
	for _, id := range ids {
		maps = append(maps, model.AmenityMap{
			ListingID: listingID,
			AmenityID: id,
			CreatedBy: model.StrPtr(callerID),
		})
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
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

	if err := txRepo.AmenityMap.DeleteByListing(ctx, listingID); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("清除房源设施失败", zap.String("listing_id", listingID), zap.Error(err))
		return nil, err
	}
	if err := txRepo.AmenityMap.BatchCreate(ctx, maps); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入房源设施失败", zap.String("listing_id", listingID), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return s.List(ctx, listingID)
}

// ────────────────────── Assign / Unassign ──────────────────────

func (s *listingAmenityService) Assign(ctx context.Context, listingID, amenityID string, callerID string) error {
	if err := s.ensureListing(ctx, listingID); err != nil {
		return err
	}
	if _, err := s.repo.Amenity.GetByID(ctx, amenityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAmenityNotFound
		}
		s.logger.Error("查询设施失败", zap.String("id", amenityID), zap.Error(err))
		return err
	}

	exists, err := s.repo.AmenityMap.Exists(ctx, listingID, amenityID)
	if err != nil {
		s.logger.Error("查询房源设施关联失败", zap.Error(err))
		return err
	}
	if exists {
		return ErrAmenityAlreadyAssigned
	}

	m := &model.AmenityMap{ListingID: listingID, AmenityID: amenityID, CreatedBy: model.StrPtr(callerID)}
	if err := s.repo.AmenityMap.Create(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAmenityAlreadyAssigned
		}
		s.logger.Error("添加房源设施失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *listingAmenityService) Unassign(ctx context.Context, listingID, amenityID string) error {
	if err := s.ensureListing(ctx, listingID); err != nil {
		return err
	}

	n, err := s.repo.AmenityMap.Delete(ctx, listingID, amenityID)
	if err != nil {
		s.logger.Error("移除房源设施失败", zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrAmenityNotAssigned
	}
	return nil
}

func (s *listingAmenityService) ensureListing(ctx context.Context, listingID string) error {
	if _, err := s.repo.Listing.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingNotFound
		}
		s.logger.Error("查询房源失败", zap.String("id", listingID), zap.Error(err))
		return err
	}
	return nil
}
