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

// GormShopRepository implements catalog.ShopRepository
type GormShopRepository struct {
	db *gorm.DB
}

func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

func (r *GormShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	var model models.ShopModel
	model.FromDomain(shop)
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	var model models.ShopModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormShopRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*catalog.Shop, error) {
	var model models.ShopModel
	err := r.db.WithContext(ctx).First(&model, "owner_id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormShopRepository) FindByName(ctx context.Context, name string) (*catalog.Shop, error) {
	var model models.ShopModel
	err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormShopRepository) ListOpen(ctx context.Context) ([]*catalog.Shop, error) {
	var rows []models.ShopModel
	if err := r.db.WithContext(ctx).Where("is_open = ?", true).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	shops := make([]*catalog.Shop, 0, len(rows))
	for i := range rows {
		shops = append(shops, rows[i].ToDomain())
	}
	return shops, nil
}
