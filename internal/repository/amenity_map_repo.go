package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AVN-Software/seascapes-admin/internal/model"
)

// AmenityMapRepository 房源设施关联数据访问接口
type AmenityMapRepository interface {
	ListByListing(ctx context.Context, listingID string) ([]model.AmenityMap, error)
	Exists(ctx context.Context, listingID, amenityID string) (bool, error)
	Create(ctx context.Context, m *model.AmenityMap) error
	BatchCreate(ctx context.Context, maps []model.AmenityMap) error
	// Delete 删除单条关联，返回删除行数
	Delete(ctx context.Context, listingID, amenityID string) (int64, error)
	DeleteByListing(ctx context.Context, listingID string) error
	DeleteByAmenities(ctx context.Context, amenityIDs []string) error
}

type amenityMapRepo struct {
	db *gorm.DB
}

// NewAmenityMapRepo 创建 AmenityMapRepository 实例
func NewAmenityMapRepo(db *gorm.DB) AmenityMapRepository {
	return &amenityMapRepo{db: db}
}

func (r *amenityMapRepo) ListByListing(ctx context.Context, listingID string) ([]model.AmenityMap, error) {
	var maps []model.AmenityMap
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at ASC").
		Find(&maps).Error
	return maps, err
}

func (r *amenityMapRepo) Exists(ctx context.Context, listingID, amenityID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AmenityMap{}).
		Where("listing_id = ? AND amenity_id = ?", listingID, amenityID).
		Count(&count).Error
	return count > 0, err
}

func (r *amenityMapRepo) Create(ctx context.Context, m *model.AmenityMap) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *amenityMapRepo) BatchCreate(ctx context.Context, maps []model.AmenityMap) error {
	if len(maps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(maps, 100).Error
}

func (r *amenityMapRepo) Delete(ctx context.Context, listingID, amenityID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("listing_id = ? AND amenity_id = ?", listingID, amenityID).
		Delete(&model.AmenityMap{})
	return result.RowsAffected, result.Error
}

func (r *amenityMapRepo) DeleteByListing(ctx context.Context, listingID string) error {
	return r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Delete(&model.AmenityMap{}).Error
}

func (r *amenityMapRepo) DeleteByAmenities(ctx context.Context, amenityIDs []string) error {
	if len(amenityIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("amenity_id IN ?", amenityIDs).
		Delete(&model.AmenityMap{}).Error
}
