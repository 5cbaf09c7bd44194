package persistence

import (
	"context"

	"gorm.io/gorm"

	appordering "github.com/orderhub/backend/internal/application/ordering"
)

// GormOrderingTransactionScope implements the ordering transaction
// scope on a gorm transaction. Stock reservation and order placement
// commit or roll back together.
type GormOrderingTransactionScope struct {
	db *gorm.DB
}

func NewGormOrderingTransactionScope(db *gorm.DB) *GormOrderingTransactionScope {
	return &GormOrderingTransactionScope{db: db}
}

func (s *GormOrderingTransactionScope) Execute(ctx context.Context, fn func(repos appordering.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(appordering.Repositories{
			Orders:   NewGormBuyerOrderRepository(tx),
			Contacts: NewGormContactRepository(tx),
			Shops:    NewGormShopRepository(tx),
			Listings: NewGormListingRepository(tx),
		})
	})
}
