package ports

import (
	"context"
	"errors"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
)

var (
	ErrDraftNotFound          = errors.New("draft not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrDuplicateRequestNumber = errors.New("order request number already exists")
)

// DraftRepository persists the single in-progress draft per user.
type DraftRepository interface {
	Get(ctx context.Context, userID string) (*domain.Draft, error)
	// Replace atomically discards any existing draft for the user and stores
	// the new one. Two concurrent replaces for the same user must resolve to
	// exactly one surviving draft, never zero and never a hybrid.
	Replace(ctx context.Context, draft *domain.Draft) (*domain.Draft, error)
	Delete(ctx context.Context, userID string) error
}

// OrderRepository persists submitted orders. The pipeline inserts exactly
// once per successful validation pass and afterwards only records the
// transmission outcome.
type OrderRepository interface {
	// Create inserts the order and its items in one unit of work. Returns
	// ErrDuplicateRequestNumber when the request number collides.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	RecordOutcome(ctx context.Context, requestNumber string, status domain.ApprovalStatus, approvedAmount int64, failureReason string) error
	GetByRequestNumber(ctx context.Context, requestNumber string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
}
