package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/persistence/models"
)

// GormCategoryRepository implements catalog.CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	var model models.CategoryModel
	model.FromDomain(category)
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	var model models.CategoryModel
	err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormCategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]*catalog.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, rows[i].ToDomain())
	}
	return categories, nil
}

func (r *GormCategoryRepository) SaveShopCategory(ctx context.Context, sc *catalog.ShopCategory) error {
	var model models.ShopCategoryModel
	model.FromDomain(sc)
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *GormCategoryRepository) FindShopCategory(ctx context.Context, shopID uuid.UUID, externalID int64) (*catalog.ShopCategory, error) {
	var model models.ShopCategoryModel
	err := r.db.WithContext(ctx).First(&model, "shop_id = ? AND external_id = ?", shopID, externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormCategoryRepository) FindShopCategoryByCategory(ctx context.Context, shopID, categoryID uuid.UUID) (*catalog.ShopCategory, error) {
	var model models.ShopCategoryModel
	err := r.db.WithContext(ctx).First(&model, "shop_id = ? AND category_id = ?", shopID, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormCategoryRepository) FindShopCategoryByID(ctx context.Context, id uuid.UUID) (*catalog.ShopCategory, error) {
	var model models.ShopCategoryModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormCategoryRepository) ListShopCategories(ctx context.Context, shopID uuid.UUID) ([]*catalog.ShopCategory, error) {
	var rows []models.ShopCategoryModel
	if err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*catalog.ShopCategory, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}
