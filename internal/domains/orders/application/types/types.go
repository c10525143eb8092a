// Package types carries the input and result shapes exchanged between the
// orders service, its adapters, and the durable resend workflow.
package types

import (
	"time"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
)

// OrderLineInput is the requested quantity split for one product.
type OrderLineInput struct {
	ProductCode   string
	CaseQuantity  int64
	PieceQuantity int64
}

// OrderRequest is the caller-supplied candidate order used by draft saves,
// validation, and submission. The delivery date travels as YYYY-MM-DD text.
type OrderRequest struct {
	ClientID     string
	DeliveryDate string
	Items        []OrderLineInput
}

// SaveDraftReceipt confirms a draft save.
type SaveDraftReceipt struct {
	SavedAt     time.Time
	TotalAmount int64
}

// InvalidItem pairs a product with every rule it violated.
type InvalidItem struct {
	ProductCode string
	Violations  []domain.Violation
}

// ValidationReport is the non-persisting verdict over a candidate order.
type ValidationReport struct {
	IsValid      bool
	InvalidItems []InvalidItem
}

// SubmitResult is the terminal answer of one submission or resend attempt.
// FailureReason is empty unless Status is SEND_FAILED.
type SubmitResult struct {
	RequestNumber string
	Status        domain.ApprovalStatus
	TotalAmount   int64
	FailureReason string
}

// CreditStanding is the read-side credit balance for a client.
type CreditStanding struct {
	ClientID    string
	CreditLimit int64
	UsedCredit  int64
	Available   int64
}
