package erp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	erpclient "github.com/fieldops/salesorder-api/internal/clients/http/erp"
	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
)

var _ ports.FulfillmentGateway = (*Gateway)(nil)

// Gateway implements the outbound fulfillment port over the ERP intake
// client. Each call is bounded by the configured timeout; a timeout is
// indistinguishable from any other transport failure to the pipeline.
type Gateway struct {
	client  *erpclient.Client
	timeout time.Duration
}

// Option configures the gateway.
type Option func(*Gateway)

// WithTimeout bounds each outbound call.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Gateway) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

// NewGateway wires the ERP intake client into a fulfillment adapter.
func NewGateway(client *erpclient.Client, opts ...Option) *Gateway {
	g := &Gateway{client: client, timeout: 10 * time.Second}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SubmitOrder transmits the persisted order snapshot exactly once.
func (g *Gateway) SubmitOrder(ctx context.Context, order *domain.Order) (ports.Receipt, error) {
	if g == nil || g.client == nil {
		return ports.Receipt{}, errors.New("erp gateway not configured")
	}
	if order == nil {
		return ports.Receipt{}, errors.New("order is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	result, err := g.client.SubmitOrder(ctx, ToPayload(order), erpclient.WithIdempotencyKey(uuid.NewString()))
	if err != nil {
		return ports.Receipt{}, err
	}
	return ports.Receipt{Accepted: result.Accepted, Reason: result.Reason}, nil
}
