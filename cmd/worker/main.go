package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	erpclient "github.com/fieldops/salesorder-api/internal/clients/http/erp"
	erpgateway "github.com/fieldops/salesorder-api/internal/domains/orders/adapters/external/erp"
	ordersmemory "github.com/fieldops/salesorder-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/fieldops/salesorder-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/fieldops/salesorder-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/fieldops/salesorder-api/internal/domains/orders/application"
	ordersports "github.com/fieldops/salesorder-api/internal/domains/orders/ports"
	platformobservability "github.com/fieldops/salesorder-api/internal/platform/observability"
	platformpostgres "github.com/fieldops/salesorder-api/internal/platform/postgres"
	orderactivities "github.com/fieldops/salesorder-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/fieldops/salesorder-api/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "salesorder-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	drafts, orders, reference, cleanupRepo := buildRepositories(ctx, logger)
	defer cleanupRepo()
	gateway := buildFulfillmentGateway(logger)
	service := ordersobs.New(
		ordersapp.NewService(drafts, orders, reference, gateway),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	orderActivities := orderactivities.NewActivities(service)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderResendTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderResendWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderResendWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.ResendOrder, activity.RegisterOptions{Name: orderactivities.ResendOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderResendTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepositories(ctx context.Context, logger *slog.Logger) (ordersports.DraftRepository, ordersports.OrderRepository, ordersports.ReferenceLookup, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return ordersmemory.NewDraftRepository(), ordersmemory.NewOrderRepository(), ordersmemory.NewReference(), cleanup
	}
	logger.Info("worker repositories configured with postgres")
	return orderspostgres.NewDraftRepository(db), orderspostgres.NewOrderRepository(db), orderspostgres.NewReference(db), cleanup
}

func buildFulfillmentGateway(logger *slog.Logger) ordersports.FulfillmentGateway {
	baseURL := strings.TrimSpace(os.Getenv("ERP_BASE_URL"))
	if baseURL == "" {
		logger.Warn("ERP_BASE_URL not set, worker transmissions use the in-memory gateway")
		return ordersmemory.NewGateway()
	}
	intake, err := erpclient.NewClient(baseURL, nil)
	if err != nil {
		logger.Warn("failed to configure ERP client, worker transmissions use the in-memory gateway", slog.String("error", err.Error()))
		return ordersmemory.NewGateway()
	}
	return erpgateway.NewGateway(intake)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
