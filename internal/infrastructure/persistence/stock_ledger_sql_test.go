package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/emansa3ed/jewelry-store/internal/domain/inventory"
)

// newMockLedger creates a ledger backed by sqlmock to assert the exact SQL
// shape of reservations against Postgres.
func newMockLedger(t *testing.T) (*GormStockLedger, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStockLedger(gormDB), mock, mockDB
}

// The decrement must be a single conditional UPDATE whose WHERE clause both
// identifies the row and checks availability. There must be no separate
// read-then-write of the stock value.
func TestGormStockLedger_ReserveIsConditionalUpdate(t *testing.T) {
	ledger, mock, mockDB := newMockLedger(t)
	defer mockDB.Close()

	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET .* WHERE id = \$\d+ AND stock >= \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "stock_movements"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := ledger.Reserve(context.Background(), productID, 3)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStockLedger_ReserveShortStockRollsBack(t *testing.T) {
	ledger, mock, mockDB := newMockLedger(t)
	defer mockDB.Close()

	productID := uuid.New()

	mock.ExpectBegin()
	// Conditional update misses: the row exists but has too few units.
	mock.ExpectExec(`UPDATE "products" SET .* WHERE id = \$\d+ AND stock >= \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT "stock" FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(2))
	mock.ExpectRollback()

	err := ledger.Reserve(context.Background(), productID, 5)

	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.EqualValues(t, 5, stockErr.Requested)
	assert.EqualValues(t, 2, stockErr.Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStockLedger_ReleaseIsUnconditionalIncrement(t *testing.T) {
	ledger, mock, mockDB := newMockLedger(t)
	defer mockDB.Close()

	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET .* WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "stock_movements"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := ledger.Release(context.Background(), productID, 3)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
