package domain

import "fmt"

// RuleCode identifies one of the per-item order acceptance rules.
type RuleCode string

const (
	RuleQuantityRequired RuleCode = "QUANTITY_REQUIRED"
	RuleBelowMinimumUnit RuleCode = "BELOW_MINIMUM_ORDER_UNIT"
	RuleOverSupplyLimit  RuleCode = "OVER_SUPPLY_LIMIT"
	RuleOverDCLimit      RuleCode = "OVER_DC_LIMIT"
)

// Violation is one failed rule with a message naming the violated limit.
type Violation struct {
	Rule    RuleCode
	Message string
}

// CheckItem evaluates every acceptance rule for a single requested line
// against its product facts. Rules are independent: an item can violate
// several at once, and callers get the full set so they can render complete
// correction guidance rather than just the first failure.
func CheckItem(caseQty, pieceQty int64, facts ProductFacts) []Violation {
	var violations []Violation
	if caseQty == 0 && pieceQty == 0 {
		violations = append(violations, Violation{
			Rule:    RuleQuantityRequired,
			Message: "case or piece quantity is required",
		})
	}
	totalUnits := caseQty*facts.UnitsPerCase + pieceQty
	if totalUnits < facts.MinimumOrderUnit {
		violations = append(violations, Violation{
			Rule:    RuleBelowMinimumUnit,
			Message: fmt.Sprintf("minimum order unit is %d, requested %d", facts.MinimumOrderUnit, totalUnits),
		})
	}
	if totalUnits > facts.SupplyQuantity {
		violations = append(violations, Violation{
			Rule:    RuleOverSupplyLimit,
			Message: fmt.Sprintf("supply limit is %d, requested %d", facts.SupplyQuantity, totalUnits),
		})
	}
	if totalUnits > facts.DCQuantity {
		violations = append(violations, Violation{
			Rule:    RuleOverDCLimit,
			Message: fmt.Sprintf("distribution center limit is %d, requested %d", facts.DCQuantity, totalUnits),
		})
	}
	return violations
}
