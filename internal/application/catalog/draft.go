package catalog

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
)

// ListingDraft is the validated form of one incoming listing, shared by
// the bulk import pipeline and the manual partner endpoint
type ListingDraft struct {
	ExternalID         int64  `validate:"required,gt=0"`
	CategoryExternalID int64  `validate:"required,gt=0"`
	CategoryName       string `validate:"required"`
	ProductName        string `validate:"required"`
	Model              string
	Quantity           int             `validate:"gte=0"`
	Price              decimal.Decimal `validate:"required,gt=0"`
	PriceRRC           decimal.Decimal `validate:"required,gt=0"`
	Picture            string          `validate:"omitempty,url"`
	Parameters         []catalog.ParameterPair
}

// ToUpdate converts the draft into the domain update form
func (d *ListingDraft) ToUpdate() catalog.ListingUpdate {
	return catalog.ListingUpdate{
		Model:      d.Model,
		Quantity:   d.Quantity,
		Price:      d.Price,
		PriceRRC:   d.PriceRRC,
		Picture:    d.Picture,
		Parameters: d.Parameters,
	}
}

// NewDraftValidator builds a validator that understands decimal fields
func NewDraftValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ValidateDraft runs struct validation and converts failures into the
// domain error form, naming the first offending field
func ValidateDraft(v *validator.Validate, draft *ListingDraft) error {
	if err := v.Struct(draft); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return shared.NewDomainErrorWithContext(shared.CodeValidationError,
				"Invalid listing data",
				map[string]any{
					"field":       verrs[0].Field(),
					"constraint":  verrs[0].Tag(),
					"external_id": draft.ExternalID,
				})
		}
		return shared.NewDomainError(shared.CodeValidationError, "Invalid listing data")
	}
	return nil
}
