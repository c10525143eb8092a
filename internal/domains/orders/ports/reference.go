package ports

import (
	"context"
	"errors"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
)

var ErrClientNotFound = errors.New("client not found")

// ClientFacts are the credit facts resolved for a client code.
type ClientFacts struct {
	ClientID    string
	CreditLimit int64
	UsedCredit  int64
}

// ReferenceLookup resolves master data. Read-only, no side effects.
type ReferenceLookup interface {
	// ResolveClient returns ErrClientNotFound for unknown client codes.
	ResolveClient(ctx context.Context, clientID string) (*ClientFacts, error)
	// ResolveProducts is a batch lookup; unknown codes are simply absent from
	// the result and callers must detect them.
	ResolveProducts(ctx context.Context, codes []string) (map[string]domain.ProductFacts, error)
}
