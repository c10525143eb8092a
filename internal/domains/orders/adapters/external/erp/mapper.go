package erp

import (
	erpclient "github.com/fieldops/salesorder-api/internal/clients/http/erp"
	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
)

const dateLayout = "2006-01-02"

// ToPayload converts a persisted order into the ERP intake wire shape.
func ToPayload(order *domain.Order) erpclient.OrderPayload {
	lines := make([]erpclient.OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, erpclient.OrderLine{
			ProductCode:   item.ProductCode,
			CaseQuantity:  item.CaseQuantity,
			PieceQuantity: item.PieceQuantity,
			TotalUnits:    item.TotalUnits,
			Amount:        item.Amount,
		})
	}
	return erpclient.OrderPayload{
		RequestNumber: order.RequestNumber,
		ClientID:      order.ClientID,
		OrderDate:     order.OrderDate.Format(dateLayout),
		DeliveryDate:  order.DeliveryDate.Format(dateLayout),
		TotalAmount:   order.TotalAmount,
		Lines:         lines,
	}
}
