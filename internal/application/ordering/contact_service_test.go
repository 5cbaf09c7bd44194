package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/shared"
)

func TestContactCreateDeduplicates(t *testing.T) {
	repos := newMemRepos()
	svc := NewContactService(repos.Contacts, zap.NewNop())
	buyerID := uuid.New()

	input := ContactInput{City: "Riga", Street: "Brivibas", House: "1", Phone: "+371000"}
	first, err := svc.Create(context.Background(), buyerID, input)
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), buyerID, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	input.House = "2"
	third, err := svc.Create(context.Background(), buyerID, input)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)

	contacts, err := svc.List(context.Background(), buyerID)
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
}

func TestContactUpdateRejectedWhenReferenced(t *testing.T) {
	repos := newMemRepos()
	svc := NewContactService(repos.Contacts, zap.NewNop())
	buyerID := uuid.New()

	contact, err := svc.Create(context.Background(), buyerID,
		ContactInput{City: "Riga", Street: "Brivibas", Phone: "+371000"})
	require.NoError(t, err)

	repos.Contacts.(*memContacts).inUse[contact.ID] = true

	_, err = svc.Update(context.Background(), buyerID, contact.ID,
		ContactInput{City: "Liepaja", Street: "Graudu", Phone: "+371000"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeConflict, domainErr.Code)
}

func TestContactDeleteIsSoft(t *testing.T) {
	repos := newMemRepos()
	svc := NewContactService(repos.Contacts, zap.NewNop())
	buyerID := uuid.New()

	contact, err := svc.Create(context.Background(), buyerID,
		ContactInput{City: "Riga", Street: "Brivibas", Phone: "+371000"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), buyerID, contact.ID))

	contacts, err := svc.List(context.Background(), buyerID)
	require.NoError(t, err)
	assert.Empty(t, contacts)

	kept, err := repos.Contacts.FindByID(context.Background(), contact.ID)
	require.NoError(t, err)
	assert.True(t, kept.IsDeleted)
}
