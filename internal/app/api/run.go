package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	erpclient "github.com/fieldops/salesorder-api/internal/clients/http/erp"
	erpgateway "github.com/fieldops/salesorder-api/internal/domains/orders/adapters/external/erp"
	ordershttp "github.com/fieldops/salesorder-api/internal/domains/orders/adapters/http"
	ordersmemory "github.com/fieldops/salesorder-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/fieldops/salesorder-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/fieldops/salesorder-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/fieldops/salesorder-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/fieldops/salesorder-api/internal/domains/orders/application"
	ordersdomain "github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	ordersports "github.com/fieldops/salesorder-api/internal/domains/orders/ports"
	platformobservability "github.com/fieldops/salesorder-api/internal/platform/observability"
	platformpostgres "github.com/fieldops/salesorder-api/internal/platform/postgres"
)

// Run boots the sales order HTTP API with observability, repositories, the
// ERP gateway, and resend workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "salesorder-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := connectPostgres(ctx, cfg, logger)
	defer cleanupDB()
	drafts, orders, reference := buildRepositories(db, logger)
	gateway := buildFulfillmentGateway(cfg, logger)

	coreService := ordersapp.NewService(drafts, orders, reference, gateway)
	service := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var resends ordersports.ResendOrchestrator = ordersworkflows.NewInlineOrderWorkflows(service)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running resends inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		resends = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	ordershttp.NewHandler(service, resends).RegisterRoutes(router)
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	addr := ":" + cfg.Port
	logger.Info("sales order API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("sales order API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func connectPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}

func buildRepositories(db *gorm.DB, logger *slog.Logger) (ordersports.DraftRepository, ordersports.OrderRepository, ordersports.ReferenceLookup) {
	if db != nil {
		logger.Info("order repositories configured with postgres")
		return orderspostgres.NewDraftRepository(db),
			orderspostgres.NewOrderRepository(db),
			orderspostgres.NewReference(db)
	}
	logger.Warn("order repositories running in memory, data is not durable")
	return ordersmemory.NewDraftRepository(), ordersmemory.NewOrderRepository(), seededReference(logger)
}

// seededReference loads a small master-data sample so the API is usable
// without Postgres. Local development only.
func seededReference(logger *slog.Logger) *ordersmemory.Reference {
	reference := ordersmemory.NewReference()
	reference.SeedClient(ordersports.ClientFacts{ClientID: "C-1001", CreditLimit: 50_000_000, UsedCredit: 12_500_000})
	reference.SeedClient(ordersports.ClientFacts{ClientID: "C-1002", CreditLimit: 10_000_000, UsedCredit: 9_800_000})
	reference.SeedProduct(ordersdomain.ProductFacts{ProductCode: "P-100", UnitPrice: 5000, UnitsPerCase: 50, MinimumOrderUnit: 10, SupplyQuantity: 10_000, DCQuantity: 2_000})
	reference.SeedProduct(ordersdomain.ProductFacts{ProductCode: "P-200", UnitPrice: 1200, UnitsPerCase: 24, MinimumOrderUnit: 24, SupplyQuantity: 5_000, DCQuantity: 1_000})
	logger.Info("in-memory reference data seeded for local development")
	return reference
}

func buildFulfillmentGateway(cfg Config, logger *slog.Logger) ordersports.FulfillmentGateway {
	if cfg.ERPBaseURL == "" {
		logger.Warn("ERP_BASE_URL not set, transmissions use the in-memory gateway")
		return ordersmemory.NewGateway()
	}
	intake, err := erpclient.NewClient(cfg.ERPBaseURL, nil)
	if err != nil {
		logger.Warn("failed to configure ERP client, transmissions use the in-memory gateway", slog.String("error", err.Error()))
		return ordersmemory.NewGateway()
	}
	opts := []erpgateway.Option{}
	if cfg.ERPTimeout > 0 {
		opts = append(opts, erpgateway.WithTimeout(cfg.ERPTimeout))
	}
	logger.Info("ERP gateway configured", slog.String("baseUrl", cfg.ERPBaseURL))
	return erpgateway.NewGateway(intake, opts...)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
