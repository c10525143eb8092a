package domain

import (
	"errors"
	"time"
)

var (
	ErrEmptyUser        = errors.New("user id is required")
	ErrEmptyClient      = errors.New("client id is required")
	ErrNoItems          = errors.New("draft needs at least one item")
	ErrNegativeQuantity = errors.New("quantities must be non-negative")
)

// ProductFacts is the packaging, pricing, and supply snapshot copied from
// master data at save/submit time. Copies are deliberate: a draft keeps
// rendering consistently even when master data changes afterwards.
type ProductFacts struct {
	ProductCode      string
	UnitPrice        int64
	UnitsPerCase     int64
	MinimumOrderUnit int64
	SupplyQuantity   int64
	DCQuantity       int64
}

// DraftItem is one requested line of an in-progress order.
type DraftItem struct {
	ProductCode   string
	CaseQuantity  int64
	PieceQuantity int64
	Facts         ProductFacts
}

// TotalUnits converts the case/piece split into pieces.
func (i DraftItem) TotalUnits() int64 {
	return i.CaseQuantity*i.Facts.UnitsPerCase + i.PieceQuantity
}

// Amount is the line total in the smallest currency unit. Integer arithmetic
// throughout, no rounding step exists.
func (i DraftItem) Amount() int64 {
	return i.TotalUnits() * i.Facts.UnitPrice
}

// Draft models the single in-progress order a sales representative owns.
// At most one exists per user; saving replaces the previous one wholesale.
type Draft struct {
	UserID       string
	ClientID     string
	DeliveryDate time.Time
	Items        []DraftItem
	TotalAmount  int64
	SavedAt      time.Time
}

// NewDraft validates and constructs a draft, recomputing the derived total.
func NewDraft(userID, clientID string, deliveryDate time.Time, items []DraftItem) (*Draft, error) {
	draft := &Draft{
		UserID:       userID,
		ClientID:     clientID,
		DeliveryDate: deliveryDate,
		Items:        items,
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	draft.RecalculateTotal()
	return draft, nil
}

// Validate enforces structural invariants on the aggregate.
func (d *Draft) Validate() error {
	if d.UserID == "" {
		return ErrEmptyUser
	}
	if d.ClientID == "" {
		return ErrEmptyClient
	}
	if len(d.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range d.Items {
		if item.CaseQuantity < 0 || item.PieceQuantity < 0 {
			return ErrNegativeQuantity
		}
	}
	return nil
}

// RecalculateTotal derives the draft total from its items. The stored total is
// never trusted across requests; every save recomputes it.
func (d *Draft) RecalculateTotal() {
	var total int64
	for _, item := range d.Items {
		total += item.Amount()
	}
	d.TotalAmount = total
}
