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

// GormListingRepository implements catalog.ListingRepository
type GormListingRepository struct {
	db *gorm.DB
}

func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// Save persists the listing and reconciles its parameter rows.
// Parameter names are deduplicated in their own table, so each pair is
// attached through a find-or-create on the name.
func (r *GormListingRepository) Save(ctx context.Context, listing *catalog.Listing) error {
	var model models.ListingModel
	model.FromDomain(listing)

	db := r.db.WithContext(ctx)
	if err := db.Save(&model).Error; err != nil {
		return err
	}

	if err := db.Where("listing_id = ?", listing.ID).Delete(&models.ListingParameterModel{}).Error; err != nil {
		return err
	}
	for _, pair := range listing.Parameters {
		var param models.ParameterModel
		err := db.Where(models.ParameterModel{Name: pair.Name}).
			Attrs(models.ParameterModel{ID: uuid.New()}).
			FirstOrCreate(&param).Error
		if err != nil {
			return err
		}
		row := models.ListingParameterModel{
			ID:          uuid.New(),
			ListingID:   listing.ID,
			ParameterID: param.ID,
			Value:       pair.Value,
		}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormListingRepository) SaveBatch(ctx context.Context, listings []*catalog.Listing) error {
	for _, listing := range listings {
		if err := r.Save(ctx, listing); err != nil {
			return err
		}
	}
	return nil
}

func (r *GormListingRepository) preload() *gorm.DB {
	return r.db.Preload("Parameters").Preload("Parameters.Parameter")
}

func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Listing, error) {
	var model models.ListingModel
	err := r.preload().WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormListingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Listing, error) {
	var rows []models.ListingModel
	if err := r.preload().WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainListings(rows), nil
}

func (r *GormListingRepository) FindByShopAndExternalID(ctx context.Context, shopID uuid.UUID, externalID int64) (*catalog.Listing, error) {
	var model models.ListingModel
	err := r.preload().WithContext(ctx).
		First(&model, "shop_id = ? AND external_id = ?", shopID, externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormListingRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*catalog.Listing, error) {
	var rows []models.ListingModel
	if err := r.preload().WithContext(ctx).Where("shop_id = ?", shopID).Order("external_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainListings(rows), nil
}

// ListAvailable returns in-stock listings of open shops, optionally
// narrowed to one shop or one global category
func (r *GormListingRepository) ListAvailable(ctx context.Context, query catalog.CatalogQuery) ([]*catalog.Listing, error) {
	q := r.preload().WithContext(ctx).
		Joins("JOIN shops ON shops.id = listings.shop_id").
		Where("listings.quantity > 0 AND shops.is_open = ?", true)

	if query.ShopID != nil {
		q = q.Where("listings.shop_id = ?", *query.ShopID)
	}
	if query.CategoryID != nil {
		q = q.Joins("JOIN shop_categories ON shop_categories.id = listings.shop_category_id").
			Where("shop_categories.category_id = ?", *query.CategoryID)
	}
	if query.Limit > 0 {
		q = q.Limit(query.Limit).Offset(query.Offset)
	}

	var rows []models.ListingModel
	if err := q.Order("listings.created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainListings(rows), nil
}

func (r *GormListingRepository) DelistAbsent(ctx context.Context, shopID uuid.UUID, keep []int64) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ListingModel{}).
		Where("shop_id = ? AND quantity > 0", shopID)
	if len(keep) > 0 {
		q = q.Where("external_id NOT IN ?", keep)
	}
	result := q.Update("quantity", 0)
	return result.RowsAffected, result.Error
}

// ReserveStock decrements the quantity only when enough units remain,
// so two concurrent checkouts cannot both take the last pieces
func (r *GormListingRepository) ReserveStock(ctx context.Context, id uuid.UUID, qty int) error {
	result := r.db.WithContext(ctx).Model(&models.ListingModel{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrInsufficientStock
	}
	return nil
}

func (r *GormListingRepository) ReleaseStock(ctx context.Context, id uuid.UUID, qty int) error {
	result := r.db.WithContext(ctx).Model(&models.ListingModel{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainListings(rows []models.ListingModel) []*catalog.Listing {
	listings := make([]*catalog.Listing, 0, len(rows))
	for i := range rows {
		listings = append(listings, rows[i].ToDomain())
	}
	return listings
}
