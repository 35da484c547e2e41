package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/AVN-Software/seascapes-admin/internal/model"
	pkgerrors "github.com/AVN-Software/seascapes-admin/pkg/errors"
)

// ListingFilter 房源列表筛选条件
type ListingFilter struct {
	Town  string // 精确匹配城镇
	Query string // 标题模糊搜索（不区分大小写）
}

// ListingRepository 房源数据访问接口
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]model.Listing, error)
	// UpdateFields 以乐观锁更新指定字段，成功后版本号 +1
	UpdateFields(ctx context.Context, id string, version int, fields map[string]interface{}) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type listingRepo struct {
	db *gorm.DB
}

// NewListingRepo 创建 ListingRepository 实例
func NewListingRepo(db *gorm.DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) Create(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepo) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepo) List(ctx context.Context, filter ListingFilter) ([]model.Listing, error) {
	var listings []model.Listing
	db := r.db.WithContext(ctx)

	if town := strings.TrimSpace(filter.Town); town != "" {
		db = db.Where("townname = ?", town)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		db = db.Where("title ILIKE ?", "%"+escapeLike(q)+"%")
	}

	err := db.Order("title ASC").Find(&listings).Error
	return listings, err
}

func (r *listingRepo) UpdateFields(ctx context.Context, id string, version int, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return pkgerrors.ErrEmptyUpdate
	}
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["version"] = version + 1

	result := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *listingRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": model.StrPtr(deletedBy),
			"deleted_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
