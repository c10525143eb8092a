package application

import (
	"errors"
	"fmt"

	types "github.com/fieldops/salesorder-api/internal/domains/orders/application/types"
	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a structural invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrInvalidDeliveryDate covers malformed dates and dates before today.
	ErrInvalidDeliveryDate = errors.New("invalid delivery date")
)

// ProductNotFoundError names the first requested product code missing from
// master data.
type ProductNotFoundError struct {
	Code string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %q not found", e.Code)
}

// ValidationError aborts a submission. It carries the full per-item, per-rule
// violation set so callers can render precise correction guidance. No order
// row exists when this is returned.
type ValidationError struct {
	Items []types.InvalidItem
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("order validation failed for %d item(s)", len(e.Items))
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyUser) ||
		errors.Is(err, domain.ErrEmptyClient) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrNegativeQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
