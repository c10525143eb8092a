package application

import (
	"fmt"
	"strings"
	"time"

	types "github.com/fieldops/salesorder-api/internal/domains/orders/application/types"
	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
)

const deliveryDateLayout = "2006-01-02"

// checkItems runs every acceptance rule over each requested line. Pure: no
// persistence, no lookups; callers resolve product facts beforehand.
func checkItems(items []types.OrderLineInput, facts map[string]domain.ProductFacts) *types.ValidationReport {
	report := &types.ValidationReport{IsValid: true}
	for _, item := range items {
		violations := domain.CheckItem(item.CaseQuantity, item.PieceQuantity, facts[item.ProductCode])
		if len(violations) == 0 {
			continue
		}
		report.IsValid = false
		report.InvalidItems = append(report.InvalidItems, types.InvalidItem{
			ProductCode: item.ProductCode,
			Violations:  violations,
		})
	}
	return report
}

// parseDeliveryDate accepts YYYY-MM-DD and rejects dates strictly before
// today. Applied on draft save and again on submission, since a draft saved
// earlier may have gone stale.
func parseDeliveryDate(raw string) (time.Time, error) {
	date, err := time.ParseInLocation(deliveryDateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeliveryDate, raw)
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if date.Before(today) {
		return time.Time{}, fmt.Errorf("%w: %s is in the past", ErrInvalidDeliveryDate, date.Format(deliveryDateLayout))
	}
	return date, nil
}

// buildLines snapshots resolved facts into draft lines.
func buildLines(items []types.OrderLineInput, facts map[string]domain.ProductFacts) ([]domain.DraftItem, error) {
	lines := make([]domain.DraftItem, 0, len(items))
	for _, item := range items {
		if item.CaseQuantity < 0 || item.PieceQuantity < 0 {
			return nil, domain.ErrNegativeQuantity
		}
		lines = append(lines, domain.DraftItem{
			ProductCode:   item.ProductCode,
			CaseQuantity:  item.CaseQuantity,
			PieceQuantity: item.PieceQuantity,
			Facts:         facts[item.ProductCode],
		})
	}
	return lines, nil
}
