package memory

import (
	"context"
	"sync"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
)

var _ ports.FulfillmentGateway = (*Gateway)(nil)

// Gateway is an in-memory fulfillment endpoint for local runs and tests. It
// approves every order unless a scripted outcome is set.
type Gateway struct {
	mu      sync.Mutex
	receipt ports.Receipt
	err     error
	seen    []string
}

func NewGateway() *Gateway {
	return &Gateway{receipt: ports.Receipt{Accepted: true}}
}

// Script fixes the outcome returned by subsequent SubmitOrder calls.
func (g *Gateway) Script(receipt ports.Receipt, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.receipt = receipt
	g.err = err
}

// Submitted returns the request numbers transmitted so far.
func (g *Gateway) Submitted() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.seen...)
}

func (g *Gateway) SubmitOrder(_ context.Context, order *domain.Order) (ports.Receipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if order != nil {
		g.seen = append(g.seen, order.RequestNumber)
	}
	if g.err != nil {
		return ports.Receipt{}, g.err
	}
	return g.receipt, nil
}
