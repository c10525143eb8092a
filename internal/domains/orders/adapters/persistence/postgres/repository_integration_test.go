//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
	"github.com/fieldops/salesorder-api/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("salesorder_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func testLines() []domain.DraftItem {
	return []domain.DraftItem{
		{
			ProductCode:   "P-100",
			CaseQuantity:  5,
			PieceQuantity: 10,
			Facts: domain.ProductFacts{
				ProductCode:      "P-100",
				UnitPrice:        5000,
				UnitsPerCase:     50,
				MinimumOrderUnit: 10,
				SupplyQuantity:   10_000,
				DCQuantity:       2_000,
			},
		},
	}
}

func testDraft(t *testing.T, userID string) *domain.Draft {
	t.Helper()
	draft, err := domain.NewDraft(userID, "C-1001", time.Now().AddDate(0, 0, 3), testLines())
	require.NoError(t, err)
	draft.SavedAt = time.Now()
	return draft
}

func testOrder(t *testing.T, requestNumber, userID string, orderDate time.Time) *domain.Order {
	t.Helper()
	order, err := domain.NewSubmittedOrder(requestNumber, userID, "C-1001", orderDate, orderDate.AddDate(0, 0, 3), testLines())
	require.NoError(t, err)
	return order
}

func TestDraftRepository_ReplaceAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewDraftRepository(db)
	ctx := context.Background()

	saved, err := repo.Replace(ctx, testDraft(t, "rep-1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1_300_000), saved.TotalAmount)
	assert.Len(t, saved.Items, 1)
	assert.Equal(t, int64(5000), saved.Items[0].Facts.UnitPrice)

	fetched, err := repo.Get(ctx, "rep-1")
	require.NoError(t, err)
	assert.Equal(t, "C-1001", fetched.ClientID)
	assert.Equal(t, int64(260), fetched.Items[0].TotalUnits())
}

func TestDraftRepository_ReplaceIsWholesale(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewDraftRepository(db)
	ctx := context.Background()

	_, err := repo.Replace(ctx, testDraft(t, "rep-1"))
	require.NoError(t, err)

	replacement, err := domain.NewDraft("rep-1", "C-1001", time.Now().AddDate(0, 0, 5), []domain.DraftItem{
		{ProductCode: "P-200", PieceQuantity: 24, Facts: domain.ProductFacts{ProductCode: "P-200", UnitPrice: 1200, UnitsPerCase: 24}},
		{ProductCode: "P-300", CaseQuantity: 1, Facts: domain.ProductFacts{ProductCode: "P-300", UnitPrice: 900, UnitsPerCase: 12}},
	})
	require.NoError(t, err)
	replacement.SavedAt = time.Now()

	saved, err := repo.Replace(ctx, replacement)
	require.NoError(t, err)
	require.Len(t, saved.Items, 2)
	assert.Equal(t, "P-200", saved.Items[0].ProductCode)
	assert.Equal(t, "P-300", saved.Items[1].ProductCode)
}

func TestDraftRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewDraftRepository(db)
	ctx := context.Background()

	_, err := repo.Replace(ctx, testDraft(t, "rep-1"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "rep-1"))

	_, err = repo.Get(ctx, "rep-1")
	assert.ErrorIs(t, err, ports.ErrDraftNotFound)

	err = repo.Delete(ctx, "rep-1")
	assert.ErrorIs(t, err, ports.ErrDraftNotFound)
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := testOrder(t, "SO-20260301-AAAA1111", "rep-1", time.Now())
	created, err := repo.Create(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, int64(1_300_000), created.TotalAmount)
	require.Len(t, created.Items, 1)
	assert.Equal(t, int64(260), created.Items[0].TotalUnits)
}

func TestOrderRepository_DuplicateRequestNumber(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, testOrder(t, "SO-20260301-AAAA1111", "rep-1", time.Now()))
	require.NoError(t, err)

	_, err = repo.Create(ctx, testOrder(t, "SO-20260301-AAAA1111", "rep-2", time.Now()))
	assert.ErrorIs(t, err, ports.ErrDuplicateRequestNumber)
}

func TestOrderRepository_RecordOutcome(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := testOrder(t, "SO-20260301-AAAA1111", "rep-1", time.Now())
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	err = repo.RecordOutcome(ctx, order.RequestNumber, domain.StatusSendFailed, order.TotalAmount, "intake unreachable")
	require.NoError(t, err)

	fetched, err := repo.GetByRequestNumber(ctx, order.RequestNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSendFailed, fetched.Status)
	assert.Equal(t, "intake unreachable", fetched.FailureReason)
	assert.True(t, fetched.Resendable())

	err = repo.RecordOutcome(ctx, "SO-20260301-FFFFFFFF", domain.StatusApproved, 0, "")
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestOrderRepository_ListByUserNewestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()
	base := time.Now()

	_, err := repo.Create(ctx, testOrder(t, "SO-20260301-AAAA1111", "rep-1", base.Add(-48*time.Hour)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testOrder(t, "SO-20260303-BBBB2222", "rep-1", base))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testOrder(t, "SO-20260303-CCCC3333", "rep-2", base))
	require.NoError(t, err)

	orders, err := repo.ListByUser(ctx, "rep-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "SO-20260303-BBBB2222", orders[0].RequestNumber)
	assert.Equal(t, "SO-20260301-AAAA1111", orders[1].RequestNumber)
}

func TestReference_Lookups(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	require.NoError(t, db.Exec(
		`INSERT INTO clients (client_id, name, credit_limit, used_credit, updated_at) VALUES (?, ?, ?, ?, NOW())`,
		"C-1001", "Acme Foods", int64(50_000_000), int64(12_500_000),
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO products (product_code, name, unit_price, units_per_case, minimum_order_unit, supply_quantity, dc_quantity, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`,
		"P-100", "Canned Corn", int64(5000), int64(50), int64(10), int64(10_000), int64(2_000),
	).Error)

	reference := NewReference(db)
	ctx := context.Background()

	client, err := reference.ResolveClient(ctx, "C-1001")
	require.NoError(t, err)
	assert.Equal(t, int64(50_000_000), client.CreditLimit)

	_, err = reference.ResolveClient(ctx, "C-404")
	assert.ErrorIs(t, err, ports.ErrClientNotFound)

	facts, err := reference.ResolveProducts(ctx, []string{"P-100", "P-404"})
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, int64(50), facts["P-100"].UnitsPerCase)
}
