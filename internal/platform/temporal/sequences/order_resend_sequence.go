package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	types "github.com/fieldops/salesorder-api/internal/domains/orders/application/types"
	orderactivities "github.com/fieldops/salesorder-api/internal/platform/temporal/activities/orders"
)

// RunOrderResendSequence executes the single re-transmission activity with a
// bounded retry policy. Retries only fire on activity errors (store or
// orchestration failures); an ERP rejection is a successful activity result
// and is never retried here.
func RunOrderResendSequence(ctx workflow.Context, requestNumber string) (*types.SubmitResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order resend sequence started", "requestNumber", requestNumber)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    3,
		},
	}
	var result types.SubmitResult
	err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, options),
		orderactivities.ResendOrderActivityName,
		requestNumber,
	).Get(ctx, &result)
	if err != nil {
		logger.Error("order resend sequence failed", "requestNumber", requestNumber, "error", err)
		return nil, err
	}
	logger.Info("order resend sequence recorded outcome", "requestNumber", requestNumber, "status", string(result.Status))
	return &result, nil
}
