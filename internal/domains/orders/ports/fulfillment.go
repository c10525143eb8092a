package ports

import (
	"context"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
)

// Receipt is the ERP intake service's synchronous answer. A business
// rejection carries the ERP's reason verbatim.
type Receipt struct {
	Accepted bool
	Reason   string
}

// FulfillmentGateway hands a persisted order to the external ERP. Called at
// most once per submission attempt; transport-level failures surface as
// errors and are recorded on the order, never re-raised to the caller.
type FulfillmentGateway interface {
	SubmitOrder(ctx context.Context, order *domain.Order) (Receipt, error)
}
