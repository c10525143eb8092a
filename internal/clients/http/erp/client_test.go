package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testPayload() OrderPayload {
	return OrderPayload{
		RequestNumber: "SO-20260301-1A2B3C4D",
		ClientID:      "C-1001",
		OrderDate:     "2026-03-01",
		DeliveryDate:  "2026-03-05",
		TotalAmount:   1_300_000,
		Lines: []OrderLine{
			{ProductCode: "P-100", CaseQuantity: 5, PieceQuantity: 10, TotalUnits: 260, Amount: 1_300_000},
		},
	}
}

func TestSubmitOrder_Accepted(t *testing.T) {
	var gotIdempotencyKey string
	var gotPayload OrderPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders/intake", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotIdempotencyKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(IntakeResult{Accepted: true})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)

	result, err := client.SubmitOrder(context.Background(), testPayload(), WithIdempotencyKey("key-123"))
	require.NoError(t, err)
	require.True(t, result.Accepted)
	require.Equal(t, "key-123", gotIdempotencyKey)
	require.Equal(t, testPayload(), gotPayload)
}

func TestSubmitOrder_RejectionIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(IntakeResult{Accepted: false, Reason: "credit limit exceeded"})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)

	result, err := client.SubmitOrder(context.Background(), testPayload())
	require.NoError(t, err)
	require.False(t, result.Accepted)
	require.Equal(t, "credit limit exceeded", result.Reason)
}

func TestSubmitOrder_ProtocolErrorUsesBodyMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"clientId is required"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)

	_, err = client.SubmitOrder(context.Background(), testPayload())
	require.Error(t, err)
	require.Contains(t, err.Error(), "clientId is required")
}

func TestSubmitOrder_ErrorFallsBackToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)

	_, err = client.SubmitOrder(context.Background(), testPayload())
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}

func TestSubmitOrder_RequiresRequestNumber(t *testing.T) {
	client, err := NewClient("http://localhost:1", nil)
	require.NoError(t, err)

	payload := testPayload()
	payload.RequestNumber = " "
	_, err = client.SubmitOrder(context.Background(), payload)
	require.Error(t, err)
}

func TestSubmitOrder_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)

	_, err = client.SubmitOrder(context.Background(), testPayload())
	require.Error(t, err)
	require.Contains(t, err.Error(), "call erp intake API")
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("   ", nil)
	require.Error(t, err)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/intake", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(IntakeResult{Accepted: true})
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/", nil)
	require.NoError(t, err)

	_, err = client.SubmitOrder(context.Background(), testPayload())
	require.NoError(t, err)
}
