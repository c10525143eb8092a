package orders

import (
	"context"
	"errors"

	types "github.com/fieldops/salesorder-api/internal/domains/orders/application/types"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
)

const (
	// ResendOrderActivityName registers the ERP re-transmission activity.
	ResendOrderActivityName = "orders.activities.ResendOrder"
)

// Activities adapts the orders service into Temporal activities.
type Activities struct {
	service ports.Service
}

// NewActivities wires the orders service for worker registration.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// ResendOrder re-transmits a SEND_FAILED order and records the new outcome.
func (a *Activities) ResendOrder(ctx context.Context, requestNumber string) (*types.SubmitResult, error) {
	if a == nil || a.service == nil {
		return nil, errors.New("order activities not configured")
	}
	return a.service.ResendOrder(ctx, requestNumber)
}
