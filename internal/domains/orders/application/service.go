package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	types "github.com/fieldops/salesorder-api/internal/domains/orders/application/types"
	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
)

// requestNumberAttempts bounds insert retries on request number collisions.
const requestNumberAttempts = 3

// Service orchestrates the order pipeline: draft management, validation, and
// the submission state machine (validate, persist, transmit, record outcome).
type Service struct {
	drafts      ports.DraftRepository
	orders      ports.OrderRepository
	reference   ports.ReferenceLookup
	fulfillment ports.FulfillmentGateway
}

// NewService wires the pipeline with its dependencies.
func NewService(drafts ports.DraftRepository, orders ports.OrderRepository, reference ports.ReferenceLookup, fulfillment ports.FulfillmentGateway) *Service {
	return &Service{drafts: drafts, orders: orders, reference: reference, fulfillment: fulfillment}
}

// GetDraft loads the user's current draft. Returns ports.ErrDraftNotFound
// when none exists; it never fabricates an empty draft.
func (s *Service) GetDraft(ctx context.Context, userID string) (*domain.Draft, error) {
	return s.drafts.Get(ctx, userID)
}

// SaveDraft replaces the user's draft wholesale. Reference data is resolved
// up front and snapshotted into the lines; the draft total is recomputed on
// every save.
func (s *Service) SaveDraft(ctx context.Context, userID string, req types.OrderRequest) (*types.SaveDraftReceipt, error) {
	deliveryDate, err := parseDeliveryDate(req.DeliveryDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.reference.ResolveClient(ctx, req.ClientID); err != nil {
		return nil, err
	}
	facts, err := s.resolveProducts(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	lines, err := buildLines(req.Items, facts)
	if err != nil {
		return nil, mapError(err)
	}
	draft, err := domain.NewDraft(userID, req.ClientID, deliveryDate, lines)
	if err != nil {
		return nil, mapError(err)
	}
	draft.SavedAt = time.Now()
	saved, err := s.drafts.Replace(ctx, draft)
	if err != nil {
		return nil, err
	}
	return &types.SaveDraftReceipt{SavedAt: saved.SavedAt, TotalAmount: saved.TotalAmount}, nil
}

// DeleteDraft removes the user's draft and its items.
func (s *Service) DeleteDraft(ctx context.Context, userID string) error {
	return s.drafts.Delete(ctx, userID)
}

// ValidateOrder resolves references and runs the per-item acceptance rules
// without persisting anything.
func (s *Service) ValidateOrder(ctx context.Context, userID string, req types.OrderRequest) (*types.ValidationReport, error) {
	if _, err := s.reference.ResolveClient(ctx, req.ClientID); err != nil {
		return nil, err
	}
	facts, err := s.resolveProducts(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	return checkItems(req.Items, facts), nil
}

// SubmitOrder runs the full submission state machine. Any rule violation on
// any item aborts before a row is written. Once the order is persisted the
// attempt is spent: transmission failures are recorded on the order and the
// draft is deleted regardless of the transmission outcome.
func (s *Service) SubmitOrder(ctx context.Context, userID string, req types.OrderRequest) (*types.SubmitResult, error) {
	deliveryDate, err := parseDeliveryDate(req.DeliveryDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.reference.ResolveClient(ctx, req.ClientID); err != nil {
		return nil, err
	}
	facts, err := s.resolveProducts(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	report := checkItems(req.Items, facts)
	if !report.IsValid {
		return nil, &ValidationError{Items: report.InvalidItems}
	}
	lines, err := buildLines(req.Items, facts)
	if err != nil {
		return nil, mapError(err)
	}
	order, err := s.createOrder(ctx, userID, req.ClientID, deliveryDate, lines)
	if err != nil {
		return nil, err
	}

	result, err := s.transmit(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := s.drafts.Delete(ctx, userID); err != nil && !errors.Is(err, ports.ErrDraftNotFound) {
		return nil, err
	}
	return result, nil
}

// ResendOrder re-transmits a SEND_FAILED order on behalf of back-office
// tooling and records the fresh outcome. Orders in any other state are
// refused.
func (s *Service) ResendOrder(ctx context.Context, requestNumber string) (*types.SubmitResult, error) {
	order, err := s.orders.GetByRequestNumber(ctx, requestNumber)
	if err != nil {
		return nil, err
	}
	if !order.Resendable() {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrOrderNotResendable, order.RequestNumber, order.Status)
	}
	return s.transmit(ctx, order)
}

// ListOrders returns the user's submitted orders, newest first.
func (s *Service) ListOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// CreditStanding exposes the client's credit balance from reference data.
func (s *Service) CreditStanding(ctx context.Context, clientID string) (*types.CreditStanding, error) {
	facts, err := s.reference.ResolveClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &types.CreditStanding{
		ClientID:    facts.ClientID,
		CreditLimit: facts.CreditLimit,
		UsedCredit:  facts.UsedCredit,
		Available:   facts.CreditLimit - facts.UsedCredit,
	}, nil
}

// createOrder inserts the order with a fresh request number, retrying a
// bounded number of times when the number collides.
func (s *Service) createOrder(ctx context.Context, userID, clientID string, deliveryDate time.Time, lines []domain.DraftItem) (*domain.Order, error) {
	orderDate := time.Now()
	var lastErr error
	for attempt := 0; attempt < requestNumberAttempts; attempt++ {
		candidate, err := domain.NewSubmittedOrder(domain.NewRequestNumber(orderDate), userID, clientID, orderDate, deliveryDate, lines)
		if err != nil {
			return nil, mapError(err)
		}
		created, err := s.orders.Create(ctx, candidate)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, ports.ErrDuplicateRequestNumber) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("allocate order request number: %w", lastErr)
}

// transmit performs the single outbound ERP call and durably records the
// outcome. Transport errors become a SEND_FAILED outcome with the error
// message as reason; they are never raised to the caller, because the order
// row already exists and must stay visible.
func (s *Service) transmit(ctx context.Context, order *domain.Order) (*types.SubmitResult, error) {
	receipt, err := s.fulfillment.SubmitOrder(ctx, order)
	if err != nil {
		order.RecordOutcome(false, err.Error())
	} else {
		order.RecordOutcome(receipt.Accepted, receipt.Reason)
	}
	if err := s.orders.RecordOutcome(ctx, order.RequestNumber, order.Status, order.TotalApprovedAmount, order.FailureReason); err != nil {
		return nil, err
	}
	return &types.SubmitResult{
		RequestNumber: order.RequestNumber,
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		FailureReason: order.FailureReason,
	}, nil
}

// resolveProducts batches the distinct product codes through reference lookup
// and fails on the first requested code missing from the result, preserving
// request order.
func (s *Service) resolveProducts(ctx context.Context, items []types.OrderLineInput) (map[string]domain.ProductFacts, error) {
	codes := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductCode]; ok {
			continue
		}
		seen[item.ProductCode] = struct{}{}
		codes = append(codes, item.ProductCode)
	}
	facts, err := s.reference.ResolveProducts(ctx, codes)
	if err != nil {
		return nil, err
	}
	for _, code := range codes {
		if _, ok := facts[code]; !ok {
			return nil, &ProductNotFoundError{Code: code}
		}
	}
	return facts, nil
}

var _ ports.Service = (*Service)(nil)
