package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/AVN-Software/seascapes-admin/internal/model"
)

// AmenityRepository 设施目录数据访问接口
type AmenityRepository interface {
	Create(ctx context.Context, amenity *model.Amenity) error
	GetByID(ctx context.Context, id string) (*model.Amenity, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Amenity, error)
	// GetByName 名称不区分大小写
	GetByName(ctx context.Context, name string) (*model.Amenity, error)
	List(ctx context.Context, query string) ([]model.Amenity, error)
	Update(ctx context.Context, amenity *model.Amenity) error
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

type amenityRepo struct {
	db *gorm.DB
}

// NewAmenityRepo 创建 AmenityRepository 实例
func NewAmenityRepo(db *gorm.DB) AmenityRepository {
	return &amenityRepo{db: db}
}

func (r *amenityRepo) Create(ctx context.Context, amenity *model.Amenity) error {
	return r.db.WithContext(ctx).Create(amenity).Error
}

func (r *amenityRepo) GetByID(ctx context.Context, id string) (*model.Amenity, error) {
	var amenity model.Amenity
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&amenity).Error
	if err != nil {
		return nil, err
	}
	return &amenity, nil
}

func (r *amenityRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Amenity, error) {
	var amenities []model.Amenity
	if len(ids) == 0 {
		return amenities, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("name ASC").
		Find(&amenities).Error
	return amenities, err
}

func (r *amenityRepo) GetByName(ctx context.Context, name string) (*model.Amenity, error) {
	var amenity model.Amenity
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		First(&amenity).Error
	if err != nil {
		return nil, err
	}
	return &amenity, nil
}

func (r *amenityRepo) List(ctx context.Context, query string) ([]model.Amenity, error) {
	var amenities []model.Amenity
	db := r.db.WithContext(ctx)

	if q := strings.TrimSpace(query); q != "" {
		db = db.Where("name ILIKE ?", "%"+escapeLike(q)+"%")
	}

	err := db.Order("name ASC").Find(&amenities).Error
	return amenities, err
}

func (r *amenityRepo) Update(ctx context.Context, amenity *model.Amenity) error {
	return r.db.WithContext(ctx).Save(amenity).Error
}

func (r *amenityRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.Amenity{})
	return result.RowsAffected, result.Error
}
