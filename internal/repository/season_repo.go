package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AVN-Software/seascapes-admin/internal/model"
)

// SeasonRepository 季节数据访问接口
type SeasonRepository interface {
	Create(ctx context.Context, season *model.Season) error
	GetByID(ctx context.Context, id string) (*model.Season, error)
	// List 按优先级升序、名称升序返回
	List(ctx context.Context, includeInactive bool) ([]model.Season, error)
	Update(ctx context.Context, season *model.Season) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type seasonRepo struct {
	db *gorm.DB
}

// NewSeasonRepo 创建 SeasonRepository 实例
func NewSeasonRepo(db *gorm.DB) SeasonRepository {
	return &seasonRepo{db: db}
}

func (r *seasonRepo) Create(ctx context.Context, season *model.Season) error {
	return r.db.WithContext(ctx).Create(season).Error
}

func (r *seasonRepo) GetByID(ctx context.Context, id string) (*model.Season, error) {
	var season model.Season
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&season).Error
	if err != nil {
		return nil, err
	}
	return &season, nil
}

func (r *seasonRepo) List(ctx context.Context, includeInactive bool) ([]model.Season, error) {
	var seasons []model.Season
	db := r.db.WithContext(ctx)

	if !includeInactive {
		db = db.Where("active = ?", true)
	}

	err := db.Order("priority ASC, name ASC").Find(&seasons).Error
	return seasons, err
}

func (r *seasonRepo) Update(ctx context.Context, season *model.Season) error {
	return r.db.WithContext(ctx).Save(season).Error
}

func (r *seasonRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Season{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": model.StrPtr(deletedBy),
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
