package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	erpclient "github.com/fieldops/salesorder-api/internal/clients/http/erp"
	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
)

func submittedOrder(t *testing.T) *domain.Order {
	t.Helper()
	orderDate := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	order, err := domain.NewSubmittedOrder("SO-20260301-1A2B3C4D", "rep-1", "C-1001", orderDate, orderDate.AddDate(0, 0, 4), []domain.DraftItem{{
		ProductCode:   "P-100",
		CaseQuantity:  5,
		PieceQuantity: 10,
		Facts:         domain.ProductFacts{ProductCode: "P-100", UnitPrice: 5000, UnitsPerCase: 50},
	}})
	require.NoError(t, err)
	return order
}

func TestToPayload(t *testing.T) {
	payload := ToPayload(submittedOrder(t))

	require.Equal(t, "SO-20260301-1A2B3C4D", payload.RequestNumber)
	require.Equal(t, "C-1001", payload.ClientID)
	require.Equal(t, "2026-03-01", payload.OrderDate)
	require.Equal(t, "2026-03-05", payload.DeliveryDate)
	require.Equal(t, int64(1_300_000), payload.TotalAmount)
	require.Len(t, payload.Lines, 1)
	require.Equal(t, int64(260), payload.Lines[0].TotalUnits)
	require.Equal(t, int64(1_300_000), payload.Lines[0].Amount)
}

func TestGateway_SubmitOrderSetsIdempotencyKey(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(erpclient.IntakeResult{Accepted: true})
	}))
	defer server.Close()

	client, err := erpclient.NewClient(server.URL, nil)
	require.NoError(t, err)
	gateway := NewGateway(client)

	receipt, err := gateway.SubmitOrder(context.Background(), submittedOrder(t))
	require.NoError(t, err)
	require.True(t, receipt.Accepted)
	require.NotEmpty(t, gotKey, "every transmission attempt carries its own key")
}

func TestGateway_TimeoutSurfacesAsError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	client, err := erpclient.NewClient(server.URL, &http.Client{})
	require.NoError(t, err)
	gateway := NewGateway(client, WithTimeout(50*time.Millisecond))

	_, err = gateway.SubmitOrder(context.Background(), submittedOrder(t))
	require.Error(t, err)
}

func TestGateway_RejectionPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(erpclient.IntakeResult{Accepted: false, Reason: "credit limit exceeded"})
	}))
	defer server.Close()

	client, err := erpclient.NewClient(server.URL, nil)
	require.NoError(t, err)
	gateway := NewGateway(client)

	receipt, err := gateway.SubmitOrder(context.Background(), submittedOrder(t))
	require.NoError(t, err)
	require.False(t, receipt.Accepted)
	require.Equal(t, "credit limit exceeded", receipt.Reason)
}
