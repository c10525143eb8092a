package orders

import (
	"go.temporal.io/sdk/workflow"

	types "github.com/fieldops/salesorder-api/internal/domains/orders/application/types"
	"github.com/fieldops/salesorder-api/internal/platform/temporal/sequences"
)

const (
	// OrderResendWorkflowName is the public identifier for registering the workflow.
	OrderResendWorkflowName = "orders.workflows.Resend"
	// OrderResendTaskQueue is the queue consumed by the back-office worker.
	OrderResendTaskQueue = "ORDER_RESEND"
)

// OrderResendWorkflowInput carries the payload for one re-transmission.
type OrderResendWorkflowInput struct {
	RequestNumber string
	TraceID       string
}

// OrderResendWorkflow durably re-transmits a SEND_FAILED order to the ERP.
func OrderResendWorkflow(ctx workflow.Context, input OrderResendWorkflowInput) (*types.SubmitResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderResendWorkflow started", withTraceID(input.TraceID, "requestNumber", input.RequestNumber)...)
	result, err := sequences.RunOrderResendSequence(ctx, input.RequestNumber)
	if err != nil {
		logger.Error("OrderResendWorkflow failed", withTraceID(input.TraceID, "requestNumber", input.RequestNumber, "error", err)...)
		return nil, err
	}
	logger.Info("OrderResendWorkflow completed", withTraceID(input.TraceID, "requestNumber", input.RequestNumber, "status", string(result.Status))...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
