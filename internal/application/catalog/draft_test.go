package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderhub/backend/internal/domain/shared"
)

func validDraft() ListingDraft {
	return ListingDraft{
		ExternalID:         10,
		CategoryExternalID: 1,
		CategoryName:       "Toys",
		ProductName:        "Ball",
		Quantity:           5,
		Price:              decimal.NewFromInt(100),
		PriceRRC:           decimal.NewFromInt(150),
	}
}

func TestValidateDraft(t *testing.T) {
	v := NewDraftValidator()

	t.Run("valid draft passes", func(t *testing.T) {
		draft := validDraft()
		require.NoError(t, ValidateDraft(v, &draft))
	})

	tests := []struct {
		name   string
		mutate func(*ListingDraft)
		field  string
	}{
		{"negative category external id", func(d *ListingDraft) { d.CategoryExternalID = -5 }, "CategoryExternalID"},
		{"zero category external id", func(d *ListingDraft) { d.CategoryExternalID = 0 }, "CategoryExternalID"},
		{"negative external id", func(d *ListingDraft) { d.ExternalID = -1 }, "ExternalID"},
		{"negative quantity", func(d *ListingDraft) { d.Quantity = -1 }, "Quantity"},
		{"zero price", func(d *ListingDraft) { d.Price = decimal.Zero }, "Price"},
		{"missing product name", func(d *ListingDraft) { d.ProductName = "" }, "ProductName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)

			err := ValidateDraft(v, &draft)
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, shared.CodeValidationError, domainErr.Code)
			assert.Equal(t, tt.field, domainErr.Context["field"])
		})
	}
}
