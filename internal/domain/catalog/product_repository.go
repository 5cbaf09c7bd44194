package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for global products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
}
