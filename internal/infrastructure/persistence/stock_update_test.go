package persistence

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orderhub/backend/internal/domain/shared"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestReserveStockConditionalUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormListingRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE "listings" SET "quantity"=quantity - $1,"updated_at"=$2 WHERE id = $3 AND quantity >= $4`)).
		WithArgs(3, sqlmock.AnyArg(), id, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ReserveStock(context.Background(), id, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveStockInsufficient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormListingRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE "listings" SET "quantity"=quantity - $1,"updated_at"=$2 WHERE id = $3 AND quantity >= $4`)).
		WithArgs(5, sqlmock.AnyArg(), id, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ReserveStock(context.Background(), id, 5)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}
