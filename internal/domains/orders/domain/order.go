package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus enumerates the persisted outcome of handing an order to the
// ERP intake service. Back-office processes may move an order beyond these
// states later; this pipeline only ever produces the three below.
type ApprovalStatus string

const (
	// StatusPending is the transient state between insert and transmission.
	StatusPending ApprovalStatus = "PENDING"
	// StatusApproved means the ERP accepted the order.
	StatusApproved ApprovalStatus = "APPROVED"
	// StatusSendFailed means the ERP rejected the order or was unreachable.
	// The row stays visible so back-office tooling can offer a resend.
	StatusSendFailed ApprovalStatus = "SEND_FAILED"
)

var (
	ErrInvalidStatus      = errors.New("order status is invalid")
	ErrOrderNotResendable = errors.New("only SEND_FAILED orders can be resent")
)

// OrderItem is a frozen line of a submitted order. Same shape as a DraftItem
// but never recomputed after submission.
type OrderItem struct {
	ProductCode   string
	CaseQuantity  int64
	PieceQuantity int64
	Facts         ProductFacts
	TotalUnits    int64
	Amount        int64
}

// Order is the immutable system of record for one submission attempt.
type Order struct {
	RequestNumber       string
	UserID              string
	ClientID            string
	OrderDate           time.Time
	DeliveryDate        time.Time
	Items               []OrderItem
	TotalAmount         int64
	TotalApprovedAmount int64
	Status              ApprovalStatus
	FailureReason       string
}

// NewSubmittedOrder freezes validated draft lines into an order pending
// transmission. Amounts are recomputed here from the snapshotted facts, never
// taken from the caller.
func NewSubmittedOrder(requestNumber, userID, clientID string, orderDate, deliveryDate time.Time, lines []DraftItem) (*Order, error) {
	if userID == "" {
		return nil, ErrEmptyUser
	}
	if clientID == "" {
		return nil, ErrEmptyClient
	}
	if len(lines) == 0 {
		return nil, ErrNoItems
	}
	items := make([]OrderItem, 0, len(lines))
	var total int64
	for _, line := range lines {
		item := OrderItem{
			ProductCode:   line.ProductCode,
			CaseQuantity:  line.CaseQuantity,
			PieceQuantity: line.PieceQuantity,
			Facts:         line.Facts,
			TotalUnits:    line.TotalUnits(),
			Amount:        line.Amount(),
		}
		total += item.Amount
		items = append(items, item)
	}
	return &Order{
		RequestNumber:       requestNumber,
		UserID:              userID,
		ClientID:            clientID,
		OrderDate:           orderDate,
		DeliveryDate:        deliveryDate,
		Items:               items,
		TotalAmount:         total,
		TotalApprovedAmount: total,
		Status:              StatusPending,
	}, nil
}

// RecordOutcome captures the transmission result. The stored reason keeps the
// rejection/outage distinction even though behavior does not branch on it.
func (o *Order) RecordOutcome(accepted bool, reason string) {
	if accepted {
		o.Status = StatusApproved
		o.FailureReason = ""
		return
	}
	o.Status = StatusSendFailed
	o.FailureReason = reason
}

// Resendable reports whether back-office tooling may re-transmit this order.
func (o *Order) Resendable() bool {
	return o.Status == StatusSendFailed
}

// ValidStatus reports whether the status belongs to the closed set.
func ValidStatus(status ApprovalStatus) bool {
	switch status {
	case StatusPending, StatusApproved, StatusSendFailed:
		return true
	default:
		return false
	}
}

// NewRequestNumber mints a human-readable, collision-resistant order request
// number, e.g. SO-20260828-7F3A2C1B. Uniqueness is ultimately enforced by the
// store; callers retry with a fresh number on conflict.
func NewRequestNumber(orderDate time.Time) string {
	entropy := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("SO-%s-%s", orderDate.Format("20060102"), entropy)
}
