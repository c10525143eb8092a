package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
)

func sampleDraft(userID string, items ...domain.DraftItem) *domain.Draft {
	if len(items) == 0 {
		items = []domain.DraftItem{{
			ProductCode:  "P-100",
			CaseQuantity: 1,
			Facts:        domain.ProductFacts{ProductCode: "P-100", UnitPrice: 5000, UnitsPerCase: 50},
		}}
	}
	draft, err := domain.NewDraft(userID, "C-1001", time.Now().AddDate(0, 0, 3), items)
	if err != nil {
		panic(err)
	}
	return draft
}

func sampleOrder(requestNumber, userID string, orderDate time.Time) *domain.Order {
	order, err := domain.NewSubmittedOrder(requestNumber, userID, "C-1001", orderDate, orderDate.AddDate(0, 0, 3), []domain.DraftItem{{
		ProductCode:  "P-100",
		CaseQuantity: 1,
		Facts:        domain.ProductFacts{ProductCode: "P-100", UnitPrice: 5000, UnitsPerCase: 50},
	}})
	if err != nil {
		panic(err)
	}
	return order
}

func TestDraftRepository_ReplaceOverwrites(t *testing.T) {
	repo := NewDraftRepository()
	ctx := context.Background()

	_, err := repo.Replace(ctx, sampleDraft("rep-1"))
	require.NoError(t, err)

	updated := sampleDraft("rep-1", domain.DraftItem{
		ProductCode:   "P-200",
		PieceQuantity: 24,
		Facts:         domain.ProductFacts{ProductCode: "P-200", UnitPrice: 1200, UnitsPerCase: 24},
	})
	_, err = repo.Replace(ctx, updated)
	require.NoError(t, err)

	got, err := repo.Get(ctx, "rep-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, "P-200", got.Items[0].ProductCode)
}

func TestDraftRepository_GetReturnsCopy(t *testing.T) {
	repo := NewDraftRepository()
	ctx := context.Background()

	_, err := repo.Replace(ctx, sampleDraft("rep-1"))
	require.NoError(t, err)

	first, err := repo.Get(ctx, "rep-1")
	require.NoError(t, err)
	first.Items[0].ProductCode = "mutated"

	second, err := repo.Get(ctx, "rep-1")
	require.NoError(t, err)
	require.Equal(t, "P-100", second.Items[0].ProductCode)
}

func TestDraftRepository_DeleteMissing(t *testing.T) {
	repo := NewDraftRepository()

	err := repo.Delete(context.Background(), "rep-ghost")
	require.ErrorIs(t, err, ports.ErrDraftNotFound)
}

func TestOrderRepository_CreateRejectsDuplicates(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	order := sampleOrder("SO-20260301-AAAA1111", "rep-1", time.Now())

	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	_, err = repo.Create(ctx, order)
	require.ErrorIs(t, err, ports.ErrDuplicateRequestNumber)
}

func TestOrderRepository_RecordOutcome(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	order := sampleOrder("SO-20260301-AAAA1111", "rep-1", time.Now())

	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	err = repo.RecordOutcome(ctx, order.RequestNumber, domain.StatusSendFailed, order.TotalAmount, "intake unreachable")
	require.NoError(t, err)

	got, err := repo.GetByRequestNumber(ctx, order.RequestNumber)
	require.NoError(t, err)
	require.Equal(t, domain.StatusSendFailed, got.Status)
	require.Equal(t, "intake unreachable", got.FailureReason)

	err = repo.RecordOutcome(ctx, order.RequestNumber, domain.ApprovalStatus("SHIPPED"), 0, "")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	err = repo.RecordOutcome(ctx, "SO-20260301-FFFFFFFF", domain.StatusApproved, 0, "")
	require.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestOrderRepository_ListByUserNewestFirst(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	base := time.Now()

	_, err := repo.Create(ctx, sampleOrder("SO-20260301-AAAA1111", "rep-1", base.Add(-2*time.Hour)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, sampleOrder("SO-20260301-BBBB2222", "rep-1", base))
	require.NoError(t, err)
	_, err = repo.Create(ctx, sampleOrder("SO-20260301-CCCC3333", "rep-2", base))
	require.NoError(t, err)

	orders, err := repo.ListByUser(ctx, "rep-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "SO-20260301-BBBB2222", orders[0].RequestNumber)
	require.Equal(t, "SO-20260301-AAAA1111", orders[1].RequestNumber)
}

func TestReference_ResolveProductsOmitsMissing(t *testing.T) {
	ref := NewReference()
	ref.SeedProduct(domain.ProductFacts{ProductCode: "P-100", UnitPrice: 5000})

	facts, err := ref.ResolveProducts(context.Background(), []string{"P-100", "P-404"})
	require.NoError(t, err)
	require.Len(t, facts, 1)
	require.Contains(t, facts, "P-100")
}

func TestReference_ResolveClient(t *testing.T) {
	ref := NewReference()
	ref.SeedClient(ports.ClientFacts{ClientID: "C-1001", CreditLimit: 100, UsedCredit: 40})

	facts, err := ref.ResolveClient(context.Background(), "C-1001")
	require.NoError(t, err)
	require.Equal(t, int64(100), facts.CreditLimit)

	_, err = ref.ResolveClient(context.Background(), "C-404")
	require.ErrorIs(t, err, ports.ErrClientNotFound)
}

func TestGateway_ScriptedOutcome(t *testing.T) {
	gateway := NewGateway()
	order := sampleOrder("SO-20260301-AAAA1111", "rep-1", time.Now())

	receipt, err := gateway.SubmitOrder(context.Background(), order)
	require.NoError(t, err)
	require.True(t, receipt.Accepted)

	gateway.Script(ports.Receipt{Accepted: false, Reason: "credit limit exceeded"}, nil)
	receipt, err = gateway.SubmitOrder(context.Background(), order)
	require.NoError(t, err)
	require.False(t, receipt.Accepted)
	require.Equal(t, "credit limit exceeded", receipt.Reason)

	require.Equal(t, []string{"SO-20260301-AAAA1111", "SO-20260301-AAAA1111"}, gateway.Submitted())
}
