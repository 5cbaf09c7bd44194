package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/persistence/models"
)

// GormContactRepository implements ordering.ContactRepository
type GormContactRepository struct {
	db *gorm.DB
}

func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

func (r *GormContactRepository) Save(ctx context.Context, contact *ordering.Contact) error {
	var model models.ContactModel
	model.FromDomain(contact)
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Contact, error) {
	var model models.ContactModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormContactRepository) FindActive(ctx context.Context, buyerID, contactID uuid.UUID) (*ordering.Contact, error) {
	var model models.ContactModel
	err := r.db.WithContext(ctx).
		First(&model, "id = ? AND buyer_id = ? AND is_deleted = ?", contactID, buyerID, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormContactRepository) InUse(ctx context.Context, contactID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BuyerOrderModel{}).
		Where("contact_id = ?", contactID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormContactRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*ordering.Contact, error) {
	var rows []models.ContactModel
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	contacts := make([]*ordering.Contact, 0, len(rows))
	for i := range rows {
		contacts = append(contacts, rows[i].ToDomain())
	}
	return contacts, nil
}
