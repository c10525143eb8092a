package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	types "github.com/fieldops/salesorder-api/internal/domains/orders/application/types"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
	orderworkflows "github.com/fieldops/salesorder-api/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.ResendOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.ResendOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order resend workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderResendTaskQueue}
}

// ResendOrder starts (or joins) the durable resend workflow for the order.
// The workflow ID is derived from the request number, so concurrent resend
// requests for the same order converge on a single execution.
func (o *TemporalOrderWorkflows) ResendOrder(ctx context.Context, requestNumber string) (*types.SubmitResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	workflowID := fmt.Sprintf("order-resend-%s", requestNumber)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderResendWorkflow,
		orderworkflows.OrderResendWorkflowInput{RequestNumber: requestNumber, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var result types.SubmitResult
			if err := existingRun.Get(ctx, &result); err != nil {
				return nil, err
			}
			return &result, nil
		}
		return nil, err
	}
	var result types.SubmitResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// InlineOrderWorkflows executes the resend directly without Temporal, useful
// for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// ResendOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) ResendOrder(ctx context.Context, requestNumber string) (*types.SubmitResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.ResendOrder(ctx, requestNumber)
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return fallbackTraceComponent()
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return fallbackTraceComponent()
	}
	return spanCtx.TraceID().String()
}

func fallbackTraceComponent() string {
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
