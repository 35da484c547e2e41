package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AVN-Software/seascapes-admin/internal/model"
)

// RatePlanRepository 价格方案数据访问接口
type RatePlanRepository interface {
	Create(ctx context.Context, plan *model.RatePlan) error
	GetByID(ctx context.Context, id string) (*model.RatePlan, error)
	// ListByListing 返回房源全部方案，预加载季节
	ListByListing(ctx context.Context, listingID string) ([]model.RatePlan, error)
	// ExistsForSeason 房源在该季节下是否已有方案；excludeID 用于更新时排除自身
	ExistsForSeason(ctx context.Context, listingID, seasonID, excludeID string) (bool, error)
	CountBySeason(ctx context.Context, seasonID string) (int64, error)
	Update(ctx context.Context, plan *model.RatePlan) error
	Delete(ctx context.Context, id string) error
}

type ratePlanRepo struct {
	db *gorm.DB
}

// NewRatePlanRepo 创建 RatePlanRepository 实例
func NewRatePlanRepo(db *gorm.DB) RatePlanRepository {
	return &ratePlanRepo{db: db}
}

func (r *ratePlanRepo) Create(ctx context.Context, plan *model.RatePlan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(plan).Error
}

func (r *ratePlanRepo) GetByID(ctx context.Context, id string) (*model.RatePlan, error) {
	var plan model.RatePlan
	err := r.db.WithContext(ctx).
		Preload("Season").
		Where("id = ?", id).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *ratePlanRepo) ListByListing(ctx context.Context, listingID string) ([]model.RatePlan, error) {
	var plans []model.RatePlan
	err := r.db.WithContext(ctx).
		Preload("Season").
		Where("listing_id = ?", listingID).
		Order("created_at ASC").
		Find(&plans).Error
	return plans, err
}

func (r *ratePlanRepo) ExistsForSeason(ctx context.Context, listingID, seasonID, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.RatePlan{}).
		Where("listing_id = ? AND season_id = ?", listingID, seasonID)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *ratePlanRepo) CountBySeason(ctx context.Context, seasonID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RatePlan{}).
		Where("season_id = ?", seasonID).
		Count(&count).Error
	return count, err
}

func (r *ratePlanRepo) Update(ctx context.Context, plan *model.RatePlan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(plan).Error
}

func (r *ratePlanRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RatePlan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
