// Package mapper converts between the HTTP transport shapes and the orders
// application types.
package mapper

import (
	"time"

	types "github.com/fieldops/salesorder-api/internal/domains/orders/application/types"
	ordersdomain "github.com/fieldops/salesorder-api/internal/domains/orders/domain"
)

const dateLayout = "2006-01-02"

// OrderLineRequest is one requested line in the transport shape.
type OrderLineRequest struct {
	ProductCode   string `json:"productCode" binding:"required"`
	CaseQuantity  int64  `json:"caseQuantity"`
	PieceQuantity int64  `json:"pieceQuantity"`
}

// OrderRequestBody is the shared body for draft saves, validation, and
// submission.
type OrderRequestBody struct {
	ClientID     string             `json:"clientId" binding:"required"`
	DeliveryDate string             `json:"deliveryDate" binding:"required"`
	Items        []OrderLineRequest `json:"items" binding:"required"`
}

// ToOrderRequest converts the transport body into the application shape.
func ToOrderRequest(body OrderRequestBody) types.OrderRequest {
	items := make([]types.OrderLineInput, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, types.OrderLineInput{
			ProductCode:   item.ProductCode,
			CaseQuantity:  item.CaseQuantity,
			PieceQuantity: item.PieceQuantity,
		})
	}
	return types.OrderRequest{
		ClientID:     body.ClientID,
		DeliveryDate: body.DeliveryDate,
		Items:        items,
	}
}

// DraftItemResponse renders a draft line with its snapshotted facts.
type DraftItemResponse struct {
	ProductCode      string `json:"productCode"`
	CaseQuantity     int64  `json:"caseQuantity"`
	PieceQuantity    int64  `json:"pieceQuantity"`
	UnitPrice        int64  `json:"unitPrice"`
	UnitsPerCase     int64  `json:"unitsPerCase"`
	MinimumOrderUnit int64  `json:"minimumOrderUnit"`
	SupplyQuantity   int64  `json:"supplyQuantity"`
	DCQuantity       int64  `json:"dcQuantity"`
	TotalUnits       int64  `json:"totalUnits"`
	Amount           int64  `json:"amount"`
}

// DraftResponse renders the user's current draft.
type DraftResponse struct {
	UserID       string              `json:"userId"`
	ClientID     string              `json:"clientId"`
	DeliveryDate string              `json:"deliveryDate"`
	Items        []DraftItemResponse `json:"items"`
	TotalAmount  int64               `json:"totalAmount"`
	SavedAt      time.Time           `json:"savedAt"`
}

// FromDomainDraft converts a draft aggregate to the transport representation.
func FromDomainDraft(draft *ordersdomain.Draft) DraftResponse {
	if draft == nil {
		return DraftResponse{}
	}
	items := make([]DraftItemResponse, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, DraftItemResponse{
			ProductCode:      item.ProductCode,
			CaseQuantity:     item.CaseQuantity,
			PieceQuantity:    item.PieceQuantity,
			UnitPrice:        item.Facts.UnitPrice,
			UnitsPerCase:     item.Facts.UnitsPerCase,
			MinimumOrderUnit: item.Facts.MinimumOrderUnit,
			SupplyQuantity:   item.Facts.SupplyQuantity,
			DCQuantity:       item.Facts.DCQuantity,
			TotalUnits:       item.TotalUnits(),
			Amount:           item.Amount(),
		})
	}
	return DraftResponse{
		UserID:       draft.UserID,
		ClientID:     draft.ClientID,
		DeliveryDate: draft.DeliveryDate.Format(dateLayout),
		Items:        items,
		TotalAmount:  draft.TotalAmount,
		SavedAt:      draft.SavedAt,
	}
}

// SaveDraftResponse confirms a draft save.
type SaveDraftResponse struct {
	SavedAt     time.Time `json:"savedAt"`
	TotalAmount int64     `json:"totalAmount"`
}

// ViolationResponse is one failed rule.
type ViolationResponse struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// InvalidItemResponse pairs a product with its violations.
type InvalidItemResponse struct {
	ProductCode string              `json:"productCode"`
	Violations  []ViolationResponse `json:"violations"`
}

// ValidationResponse is the non-persisting validation verdict.
type ValidationResponse struct {
	IsValid      bool                  `json:"isValid"`
	InvalidItems []InvalidItemResponse `json:"invalidItems"`
}

// FromValidationReport converts the application report to transport form.
func FromValidationReport(report *types.ValidationReport) ValidationResponse {
	if report == nil {
		return ValidationResponse{}
	}
	response := ValidationResponse{IsValid: report.IsValid, InvalidItems: []InvalidItemResponse{}}
	for _, item := range report.InvalidItems {
		response.InvalidItems = append(response.InvalidItems, fromInvalidItem(item))
	}
	return response
}

func fromInvalidItem(item types.InvalidItem) InvalidItemResponse {
	violations := make([]ViolationResponse, 0, len(item.Violations))
	for _, v := range item.Violations {
		violations = append(violations, ViolationResponse{Rule: string(v.Rule), Message: v.Message})
	}
	return InvalidItemResponse{ProductCode: item.ProductCode, Violations: violations}
}

// FromInvalidItems renders a rejected submission's violation set.
func FromInvalidItems(items []types.InvalidItem) []InvalidItemResponse {
	response := make([]InvalidItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, fromInvalidItem(item))
	}
	return response
}

// SubmitResponse is the terminal answer of a submission or resend.
type SubmitResponse struct {
	OrderRequestNumber string  `json:"orderRequestNumber"`
	ApprovalStatus     string  `json:"approvalStatus"`
	TotalAmount        int64   `json:"totalAmount"`
	FailureReason      *string `json:"failureReason"`
}

// FromSubmitResult converts a submission result to transport form.
func FromSubmitResult(result *types.SubmitResult) SubmitResponse {
	if result == nil {
		return SubmitResponse{}
	}
	response := SubmitResponse{
		OrderRequestNumber: result.RequestNumber,
		ApprovalStatus:     string(result.Status),
		TotalAmount:        result.TotalAmount,
	}
	if result.FailureReason != "" {
		reason := result.FailureReason
		response.FailureReason = &reason
	}
	return response
}

// OrderSummaryResponse renders one order history row.
type OrderSummaryResponse struct {
	RequestNumber       string  `json:"requestNumber"`
	ClientID            string  `json:"clientId"`
	OrderDate           string  `json:"orderDate"`
	DeliveryDate        string  `json:"deliveryDate"`
	TotalAmount         int64   `json:"totalAmount"`
	TotalApprovedAmount int64   `json:"totalApprovedAmount"`
	Status              string  `json:"status"`
	FailureReason       *string `json:"failureReason"`
}

// FromDomainOrders converts the order history to transport form.
func FromDomainOrders(orders []*ordersdomain.Order) []OrderSummaryResponse {
	response := make([]OrderSummaryResponse, 0, len(orders))
	for _, order := range orders {
		summary := OrderSummaryResponse{
			RequestNumber:       order.RequestNumber,
			ClientID:            order.ClientID,
			OrderDate:           order.OrderDate.Format(dateLayout),
			DeliveryDate:        order.DeliveryDate.Format(dateLayout),
			TotalAmount:         order.TotalAmount,
			TotalApprovedAmount: order.TotalApprovedAmount,
			Status:              string(order.Status),
		}
		if order.FailureReason != "" {
			reason := order.FailureReason
			summary.FailureReason = &reason
		}
		response = append(response, summary)
	}
	return response
}

// CreditResponse renders a client's credit standing.
type CreditResponse struct {
	ClientID    string `json:"clientId"`
	CreditLimit int64  `json:"creditLimit"`
	UsedCredit  int64  `json:"usedCredit"`
	Available   int64  `json:"available"`
}

// FromCreditStanding converts the credit read model to transport form.
func FromCreditStanding(standing *types.CreditStanding) CreditResponse {
	if standing == nil {
		return CreditResponse{}
	}
	return CreditResponse{
		ClientID:    standing.ClientID,
		CreditLimit: standing.CreditLimit,
		UsedCredit:  standing.UsedCredit,
		Available:   standing.Available,
	}
}
