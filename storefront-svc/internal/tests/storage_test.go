package tests

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"campus-storefront/storefront-svc/internal/domain"
	"campus-storefront/storefront-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*storage.PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewPostgresRepository(db), mock
}

func q(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

var productColumns = []string{
	"id", "section_id", "section_name", "name", "description", "price",
	"image_url", "active", "display_order", "created_at", "current_quantity",
}

func TestPostgresRepository_ListActiveSections(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery(q("FROM sections")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "active", "display_order", "created_at"}).
			AddRow(2, "Drinks", "", true, 1, now).
			AddRow(1, "Breakfast", "Morning menu", true, 2, now))

	sections, err := repo.ListActiveSections(context.Background())

	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "Drinks", sections[0].Name)
	assert.Equal(t, "Morning menu", sections[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetActiveProduct(t *testing.T) {
	tests := []struct {
		name      string
		rows      *sqlmock.Rows
		wantFound bool
		wantStock int
	}{
		{
			name: "found with stock",
			rows: sqlmock.NewRows(productColumns).
				AddRow(3, 1, "Breakfast", "Bolon", "", 2.5, "", true, 0, time.Now(), 7),
			wantFound: true,
			wantStock: 7,
		},
		{
			name:      "inactive or unknown",
			rows:      sqlmock.NewRows(productColumns),
			wantFound: false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectQuery(q("WHERE p.id = $1 AND p.active = TRUE")).WithArgs(3).WillReturnRows(testCase.rows)

			product, found, err := repo.GetActiveProduct(context.Background(), 3)

			require.NoError(t, err)
			assert.Equal(t, testCase.wantFound, found)
			assert.Equal(t, testCase.wantStock, product.StockAvailable)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_GetCurrentStock(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(sqlmock.Sqlmock)
		want    int
		wantErr bool
	}{
		{
			name: "row for today",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(q("SELECT current_quantity")).WithArgs(4).
					WillReturnRows(sqlmock.NewRows([]string{"current_quantity"}).AddRow(12))
			},
			want: 12,
		},
		{
			name: "no row for today defaults to zero",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(q("SELECT current_quantity")).WithArgs(4).
					WillReturnRows(sqlmock.NewRows([]string{"current_quantity"}))
			},
			want: 0,
		},
		{
			name: "connection failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(q("SELECT current_quantity")).WithArgs(4).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			testCase.setup(mock)

			got, err := repo.GetCurrentStock(context.Background(), 4)

			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testCase.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_GetStockLevel(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(q("SELECT p.name, COALESCE(ds.current_quantity, 0)")).WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"name", "current_quantity"}).AddRow("Tigrillo", 1))

	name, current, found, err := repo.GetStockLevel(context.Background(), 9)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Tigrillo", name)
	assert.Equal(t, 1, current)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_InitializeDailyStock(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec(q("ON CONFLICT (product_id, stock_date) DO NOTHING")).
		WithArgs("2026-10-16", 20).
		WillReturnResult(sqlmock.NewResult(0, 4))

	created, err := repo.InitializeDailyStock(context.Background(), "2026-10-16", 20)

	require.NoError(t, err)
	assert.Equal(t, int64(4), created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CreateInvoice_Success(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT name, price FROM products")).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"name", "price"}).AddRow("Empanada", 1.5))
	mock.ExpectQuery(q("FOR UPDATE")).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"current_quantity"}).AddRow(5))
	mock.ExpectExec(q("UPDATE daily_stock")).WithArgs(2, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("SELECT name, price FROM products")).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"name", "price"}).AddRow("Jugo", 2.25))
	mock.ExpectQuery(q("FOR UPDATE")).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"current_quantity"}).AddRow(3))
	mock.ExpectExec(q("UPDATE daily_stock")).WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("SELECT nextval('invoice_number_seq')")).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(42))
	mock.ExpectQuery(q("INSERT INTO invoices")).
		WithArgs("FAC-000042", "user-1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "cash", "pickup at noon").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(q("INSERT INTO invoice_items")).
		WithArgs(7, 1, "Empanada", 2, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("INSERT INTO invoice_items")).
		WithArgs(7, 2, "Jugo", 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// lines arrive unsorted and are locked in product order
	result, err := repo.CreateInvoice(context.Background(), domain.InvoiceRequest{
		CustomerID:    "user-1",
		Lines:         []domain.StockRequest{{ProductID: 2, Quantity: 1}, {ProductID: 1, Quantity: 2}},
		PaymentMethod: domain.PaymentCash,
		Notes:         "pickup at noon",
	}, 0.12)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 7, result.InvoiceID)
	assert.Equal(t, "FAC-000042", result.InvoiceNumber)
	assert.InDelta(t, 5.25, result.Subtotal, 0.001)
	assert.InDelta(t, 0.63, result.Tax, 0.001)
	assert.InDelta(t, 5.88, result.Total, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CreateInvoice_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		lines       []domain.StockRequest
		setup       func(sqlmock.Sqlmock)
		wantMessage string
	}{
		{
			name:        "no lines",
			lines:       nil,
			setup:       func(sqlmock.Sqlmock) {},
			wantMessage: "the order has no products",
		},
		{
			name:        "non positive quantity",
			lines:       []domain.StockRequest{{ProductID: 1, Quantity: 0}},
			setup:       func(sqlmock.Sqlmock) {},
			wantMessage: "invalid quantity",
		},
		{
			name:  "insufficient stock",
			lines: []domain.StockRequest{{ProductID: 5, Quantity: 3}},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("SELECT name, price FROM products")).WithArgs(5).
					WillReturnRows(sqlmock.NewRows([]string{"name", "price"}).AddRow("Batido", 2.0))
				mock.ExpectQuery(q("FOR UPDATE")).WithArgs(5).
					WillReturnRows(sqlmock.NewRows([]string{"current_quantity"}).AddRow(1))
				mock.ExpectRollback()
			},
			wantMessage: "Available: 1, requested: 3",
		},
		{
			name:  "no stock row today",
			lines: []domain.StockRequest{{ProductID: 5, Quantity: 1}},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("SELECT name, price FROM products")).WithArgs(5).
					WillReturnRows(sqlmock.NewRows([]string{"name", "price"}).AddRow("Batido", 2.0))
				mock.ExpectQuery(q("FOR UPDATE")).WithArgs(5).
					WillReturnRows(sqlmock.NewRows([]string{"current_quantity"}))
				mock.ExpectRollback()
			},
			wantMessage: "Available: 0, requested: 1",
		},
		{
			name:  "inactive product",
			lines: []domain.StockRequest{{ProductID: 8, Quantity: 1}},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("SELECT name, price FROM products")).WithArgs(8).
					WillReturnRows(sqlmock.NewRows([]string{"name", "price"}))
				mock.ExpectRollback()
			},
			wantMessage: "product 8 is not available",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			testCase.setup(mock)

			result, err := repo.CreateInvoice(context.Background(), domain.InvoiceRequest{
				CustomerID:    "user-1",
				Lines:         testCase.lines,
				PaymentMethod: domain.PaymentCard,
			}, 0.12)

			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Contains(t, result.Message, testCase.wantMessage)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_CreateInvoice_DatabaseError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT name, price FROM products")).WithArgs(1).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.CreateInvoice(context.Background(), domain.InvoiceRequest{
		CustomerID:    "user-1",
		Lines:         []domain.StockRequest{{ProductID: 1, Quantity: 1}},
		PaymentMethod: domain.PaymentCash,
	}, 0.12)

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListInvoicesByCustomer(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()
	invoiceColumns := []string{"id", "invoice_number", "customer_id", "subtotal", "tax", "discount", "total",
		"status", "payment_method", "notes", "created_at"}

	mock.ExpectQuery(q("ORDER BY created_at DESC, id DESC")).WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(invoiceColumns).
			AddRow(9, "FAC-000009", "user-1", 10.0, 1.2, 0.0, 11.2, "paid", "cash", "", now).
			AddRow(8, "FAC-000008", "user-1", 5.0, 0.6, 0.0, 5.6, "pending", "card", "", now.Add(-time.Hour)))
	mock.ExpectQuery(q("WHERE invoice_id = ANY($1)")).WithArgs(pq.Array([]int64{9, 8})).
		WillReturnRows(sqlmock.NewRows([]string{"invoice_id", "product_id", "product_name", "quantity", "unit_price", "line_total"}).
			AddRow(8, 1, "Empanada", 2, 2.5, 5.0).
			AddRow(9, 2, "Jugo", 4, 2.5, 10.0))

	invoices, err := repo.ListInvoicesByCustomer(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "FAC-000009", invoices[0].InvoiceNumber)
	require.Len(t, invoices[0].Items, 1)
	assert.Equal(t, "Jugo", invoices[0].Items[0].ProductName)
	assert.Equal(t, "Empanada", invoices[1].Items[0].ProductName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListInvoicesByCustomer_Empty(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(q("FROM invoices")).WithArgs("user-2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	invoices, err := repo.ListInvoicesByCustomer(context.Background(), "user-2")

	require.NoError(t, err)
	assert.Empty(t, invoices)
	assert.NotNil(t, invoices)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CountPaidInvoices(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(q("status = 'paid'")).WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountPaidInvoices(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UniqueViolations(t *testing.T) {
	t.Run("duplicate email", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(q("INSERT INTO users")).WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateUser(context.Background(), &domain.User{ID: "u", Email: "a@b.ec", Role: domain.RoleCustomer})

		assert.ErrorIs(t, err, storage.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate rating", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(q("INSERT INTO ratings")).WillReturnError(&pq.Error{Code: "23505"})

		err := repo.InsertRating(context.Background(), &domain.Rating{UserID: "u", Score: 4})

		assert.ErrorIs(t, err, storage.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_UpsertProfile(t *testing.T) {
	tests := []struct {
		name        string
		profile     domain.Profile
		wantAddress bool
	}{
		{
			name:    "profile only",
			profile: domain.Profile{UserID: "u1", FirstName: "Ana", LastName: "Mora", Phone: "0991"},
		},
		{
			name:        "profile with address",
			profile:     domain.Profile{UserID: "u1", FirstName: "Ana", StreetAddress: "Av. 9 de Octubre"},
			wantAddress: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectBegin()
			mock.ExpectExec(q("INSERT INTO profiles")).WillReturnResult(sqlmock.NewResult(0, 1))
			if testCase.wantAddress {
				mock.ExpectExec(q("INSERT INTO addresses")).
					WithArgs("u1", "Av. 9 de Octubre", "").
					WillReturnResult(sqlmock.NewResult(0, 1))
			}
			mock.ExpectCommit()

			assert.NoError(t, repo.UpsertProfile(context.Background(), testCase.profile))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_GetProfile_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(q("FROM profiles p")).WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, found, err := repo.GetProfile(context.Background(), "nobody")

	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}
