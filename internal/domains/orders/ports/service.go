package ports

import (
	"context"

	types "github.com/fieldops/salesorder-api/internal/domains/orders/application/types"
	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
)

// Service exposes the order pipeline use cases to adapters.
type Service interface {
	GetDraft(ctx context.Context, userID string) (*domain.Draft, error)
	SaveDraft(ctx context.Context, userID string, req types.OrderRequest) (*types.SaveDraftReceipt, error)
	DeleteDraft(ctx context.Context, userID string) error
	ValidateOrder(ctx context.Context, userID string, req types.OrderRequest) (*types.ValidationReport, error)
	SubmitOrder(ctx context.Context, userID string, req types.OrderRequest) (*types.SubmitResult, error)
	ResendOrder(ctx context.Context, requestNumber string) (*types.SubmitResult, error)
	ListOrders(ctx context.Context, userID string) ([]*domain.Order, error)
	CreditStanding(ctx context.Context, clientID string) (*types.CreditStanding, error)
}
