package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ruleCodes(violations []Violation) []RuleCode {
	codes := make([]RuleCode, 0, len(violations))
	for _, v := range violations {
		codes = append(codes, v.Rule)
	}
	return codes
}

func TestCheckItem_PassesWithinLimits(t *testing.T) {
	facts := ProductFacts{UnitsPerCase: 50, MinimumOrderUnit: 10, SupplyQuantity: 10_000, DCQuantity: 2_000}

	require.Empty(t, CheckItem(5, 10, facts))
}

func TestCheckItem_QuantityRequired(t *testing.T) {
	facts := ProductFacts{UnitsPerCase: 50, MinimumOrderUnit: 10, SupplyQuantity: 100, DCQuantity: 100}

	codes := ruleCodes(CheckItem(0, 0, facts))
	require.Contains(t, codes, RuleQuantityRequired)
	require.Contains(t, codes, RuleBelowMinimumUnit)
}

func TestCheckItem_BelowMinimumOrderUnit(t *testing.T) {
	facts := ProductFacts{UnitsPerCase: 50, MinimumOrderUnit: 24, SupplyQuantity: 100, DCQuantity: 100}

	violations := CheckItem(0, 10, facts)
	require.Equal(t, []RuleCode{RuleBelowMinimumUnit}, ruleCodes(violations))
	require.Contains(t, violations[0].Message, "24")
	require.Contains(t, violations[0].Message, "10")
}

func TestCheckItem_OverSupplyAndDCLimitsTogether(t *testing.T) {
	facts := ProductFacts{UnitsPerCase: 50, MinimumOrderUnit: 10, SupplyQuantity: 100, DCQuantity: 80}

	codes := ruleCodes(CheckItem(4, 0, facts))
	require.Equal(t, []RuleCode{RuleOverSupplyLimit, RuleOverDCLimit}, codes)
}

func TestCheckItem_AtExactLimits(t *testing.T) {
	facts := ProductFacts{UnitsPerCase: 10, MinimumOrderUnit: 20, SupplyQuantity: 20, DCQuantity: 20}

	require.Empty(t, CheckItem(2, 0, facts), "boundary values satisfy every rule")
}
