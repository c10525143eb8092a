package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository is an in-memory submitted-order store.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: map[string]*domain.Order{}}
}

func (r *OrderRepository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.RequestNumber]; ok {
		return nil, ports.ErrDuplicateRequestNumber
	}
	clone := cloneOrder(order)
	r.orders[clone.RequestNumber] = clone
	return cloneOrder(clone), nil
}

func (r *OrderRepository) RecordOutcome(_ context.Context, requestNumber string, status domain.ApprovalStatus, approvedAmount int64, failureReason string) error {
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[requestNumber]
	if !ok {
		return ports.ErrOrderNotFound
	}
	order.Status = status
	order.TotalApprovedAmount = approvedAmount
	order.FailureReason = failureReason
	return nil
}

func (r *OrderRepository) GetByRequestNumber(_ context.Context, requestNumber string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[requestNumber]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *OrderRepository) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			list = append(list, cloneOrder(order))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OrderDate.After(list[j].OrderDate) })
	return list, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.OrderItem(nil), order.Items...)
	return &clone
}
