//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "erp-intake"
	ConsumerName = "salesorder-api"

	StateIntakeAccepts   = "erp accepts well-formed orders"
	StateIntakeRejects   = "erp rejects orders over the client credit limit"
	StateIntakeValidates = "erp validates intake payloads"
)

const (
	ExampleRequestNumber  = "SO-20260301-1A2B3C4D"
	RejectedRequestNumber = "SO-20260301-9F8E7D6C"
	ExampleClientID       = "C-1001"
	ExampleOrderDate      = "2026-03-01"
	ExampleDeliveryDate   = "2026-03-05"
	ExampleRejectReason   = "credit limit exceeded"
)

// ExampleOrderPayload provides stable intake request data for pact interactions.
func ExampleOrderPayload(requestNumber string) map[string]any {
	return map[string]any{
		"requestNumber": requestNumber,
		"clientId":      ExampleClientID,
		"orderDate":     ExampleOrderDate,
		"deliveryDate":  ExampleDeliveryDate,
		"totalAmount":   1_300_000,
		"lines": []map[string]any{
			{
				"productCode":   "P-100",
				"caseQuantity":  5,
				"pieceQuantity": 10,
				"totalUnits":    260,
				"amount":        1_300_000,
			},
		},
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the intake consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
