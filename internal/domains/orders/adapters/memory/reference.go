package memory

import (
	"context"
	"sync"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
)

var _ ports.ReferenceLookup = (*Reference)(nil)

// Reference is a seeded in-memory master-data lookup, used for local runs and
// tests when no Postgres master tables are available.
type Reference struct {
	mu       sync.RWMutex
	clients  map[string]ports.ClientFacts
	products map[string]domain.ProductFacts
}

func NewReference() *Reference {
	return &Reference{
		clients:  map[string]ports.ClientFacts{},
		products: map[string]domain.ProductFacts{},
	}
}

// SeedClient registers or overwrites a client's credit facts.
func (r *Reference) SeedClient(facts ports.ClientFacts) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[facts.ClientID] = facts
}

// SeedProduct registers or overwrites a product's packaging facts.
func (r *Reference) SeedProduct(facts domain.ProductFacts) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[facts.ProductCode] = facts
}

func (r *Reference) ResolveClient(_ context.Context, clientID string) (*ports.ClientFacts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	facts, ok := r.clients[clientID]
	if !ok {
		return nil, ports.ErrClientNotFound
	}
	return &facts, nil
}

func (r *Reference) ResolveProducts(_ context.Context, codes []string) (map[string]domain.ProductFacts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[string]domain.ProductFacts, len(codes))
	for _, code := range codes {
		if facts, ok := r.products[code]; ok {
			result[code] = facts
		}
	}
	return result, nil
}
