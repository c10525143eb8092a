package ports

import (
	"context"

	types "github.com/fieldops/salesorder-api/internal/domains/orders/application/types"
)

// ResendOrchestrator re-transmits a SEND_FAILED order, either inline or
// through a durable workflow engine.
type ResendOrchestrator interface {
	ResendOrder(ctx context.Context, requestNumber string) (*types.SubmitResult, error)
}
