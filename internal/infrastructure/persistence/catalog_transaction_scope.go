package persistence

import (
	"context"

	"gorm.io/gorm"

	appcatalog "github.com/orderhub/backend/internal/application/catalog"
)

// GormCatalogTransactionScope implements the catalog transaction scope
// on a gorm transaction: all repositories handed to fn share it, and an
// error from fn rolls everything back
type GormCatalogTransactionScope struct {
	db *gorm.DB
}

func NewGormCatalogTransactionScope(db *gorm.DB) *GormCatalogTransactionScope {
	return &GormCatalogTransactionScope{db: db}
}

func (s *GormCatalogTransactionScope) Execute(ctx context.Context, fn func(repos appcatalog.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(appcatalog.Repositories{
			Shops:      NewGormShopRepository(tx),
			Categories: NewGormCategoryRepository(tx),
			Products:   NewGormProductRepository(tx),
			Listings:   NewGormListingRepository(tx),
		})
	})
}
