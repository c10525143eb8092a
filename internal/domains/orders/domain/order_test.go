package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSubmittedOrder_FreezesLineAmounts(t *testing.T) {
	lines := []DraftItem{
		{
			ProductCode:   "P-100",
			CaseQuantity:  5,
			PieceQuantity: 10,
			Facts:         ProductFacts{ProductCode: "P-100", UnitPrice: 5000, UnitsPerCase: 50},
		},
	}

	order, err := NewSubmittedOrder("SO-20260301-AAAA1111", "rep-1", "C-1001", time.Now(), time.Now().AddDate(0, 0, 3), lines)
	require.NoError(t, err)
	require.Equal(t, StatusPending, order.Status)
	require.Len(t, order.Items, 1)
	require.Equal(t, int64(260), order.Items[0].TotalUnits)
	require.Equal(t, int64(1_300_000), order.Items[0].Amount)
	require.Equal(t, int64(1_300_000), order.TotalAmount)
	require.Equal(t, order.TotalAmount, order.TotalApprovedAmount)
}

func TestRecordOutcome_Approved(t *testing.T) {
	order := &Order{Status: StatusPending, FailureReason: "stale"}

	order.RecordOutcome(true, "")
	require.Equal(t, StatusApproved, order.Status)
	require.Empty(t, order.FailureReason)
	require.False(t, order.Resendable())
}

func TestRecordOutcome_KeepsRejectionReasonVerbatim(t *testing.T) {
	order := &Order{Status: StatusPending}

	order.RecordOutcome(false, "SAP 연결 오류")
	require.Equal(t, StatusSendFailed, order.Status)
	require.Equal(t, "SAP 연결 오류", order.FailureReason)
	require.True(t, order.Resendable())
}

func TestNewRequestNumber_Format(t *testing.T) {
	orderDate := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^SO-20260301-[0-9A-F]{8}$`)

	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		number := NewRequestNumber(orderDate)
		require.Regexp(t, pattern, number)
		seen[number] = struct{}{}
	}
	require.Len(t, seen, 50, "request numbers should not repeat")
}

func TestValidStatus(t *testing.T) {
	require.True(t, ValidStatus(StatusPending))
	require.True(t, ValidStatus(StatusApproved))
	require.True(t, ValidStatus(StatusSendFailed))
	require.False(t, ValidStatus(ApprovalStatus("SHIPPED")))
}
