package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/fieldops/salesorder-api/internal/domains/orders/application/types"
	ordersdomain "github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	ordersports "github.com/fieldops/salesorder-api/internal/domains/orders/ports"
)

const tracerName = "github.com/fieldops/salesorder-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) GetDraft(ctx context.Context, userID string) (*ordersdomain.Draft, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetDraft",
		trace.WithAttributes(attribute.String("draft.user_id", userID)))
	defer span.End()

	result, err := s.inner.GetDraft(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load draft", slog.String("draft.user_id", userID))
	}
	return result, nil
}

func (s *Service) SaveDraft(ctx context.Context, userID string, req types.OrderRequest) (*types.SaveDraftReceipt, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.SaveDraft",
		trace.WithAttributes(
			attribute.String("draft.user_id", userID),
			attribute.String("draft.client_id", req.ClientID),
			attribute.Int("draft.items", len(req.Items)),
		))
	defer span.End()

	s.logInfo(ctx, "saving draft", slog.String("draft.user_id", userID), slog.String("draft.client_id", req.ClientID))
	result, err := s.inner.SaveDraft(ctx, userID, req)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to save draft", slog.String("draft.user_id", userID))
	}
	s.metrics.recordDraftSaved(ctx)
	s.logInfo(ctx, "draft saved", slog.String("draft.user_id", userID), slog.Int64("draft.total_amount", result.TotalAmount))
	return result, nil
}

func (s *Service) DeleteDraft(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.DeleteDraft",
		trace.WithAttributes(attribute.String("draft.user_id", userID)))
	defer span.End()

	if err := s.inner.DeleteDraft(ctx, userID); err != nil {
		return s.handleError(ctx, span, err, "failed to delete draft", slog.String("draft.user_id", userID))
	}
	s.logInfo(ctx, "draft deleted", slog.String("draft.user_id", userID))
	return nil
}

func (s *Service) ValidateOrder(ctx context.Context, userID string, req types.OrderRequest) (*types.ValidationReport, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ValidateOrder",
		trace.WithAttributes(
			attribute.String("order.user_id", userID),
			attribute.Int("order.items", len(req.Items)),
		))
	defer span.End()

	result, err := s.inner.ValidateOrder(ctx, userID, req)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to validate order", slog.String("order.user_id", userID))
	}
	span.SetAttributes(
		attribute.Bool("order.valid", result.IsValid),
		attribute.Int("order.invalid_items", len(result.InvalidItems)),
	)
	return result, nil
}

func (s *Service) SubmitOrder(ctx context.Context, userID string, req types.OrderRequest) (*types.SubmitResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.SubmitOrder",
		trace.WithAttributes(
			attribute.String("order.user_id", userID),
			attribute.String("order.client_id", req.ClientID),
			attribute.Int("order.items", len(req.Items)),
		))
	defer span.End()

	s.logInfo(ctx, "submitting order", slog.String("order.user_id", userID), slog.String("order.client_id", req.ClientID))
	result, err := s.inner.SubmitOrder(ctx, userID, req)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit order", slog.String("order.user_id", userID))
	}
	s.metrics.recordSubmitted(ctx, result.Status)
	s.logInfo(ctx, "order submitted",
		slog.String("order.request_number", result.RequestNumber),
		slog.String("order.status", string(result.Status)),
		slog.Int64("order.total_amount", result.TotalAmount))
	return result, nil
}

func (s *Service) ResendOrder(ctx context.Context, requestNumber string) (*types.SubmitResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ResendOrder",
		trace.WithAttributes(attribute.String("order.request_number", requestNumber)))
	defer span.End()

	s.logInfo(ctx, "resending order", slog.String("order.request_number", requestNumber))
	result, err := s.inner.ResendOrder(ctx, requestNumber)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to resend order", slog.String("order.request_number", requestNumber))
	}
	s.metrics.recordSubmitted(ctx, result.Status)
	s.logInfo(ctx, "order resent",
		slog.String("order.request_number", result.RequestNumber),
		slog.String("order.status", string(result.Status)))
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders",
		trace.WithAttributes(attribute.String("order.user_id", userID)))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("order.user_id", userID))
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) CreditStanding(ctx context.Context, clientID string) (*types.CreditStanding, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreditStanding",
		trace.WithAttributes(attribute.String("client.id", clientID)))
	defer span.End()

	result, err := s.inner.CreditStanding(ctx, clientID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load credit standing", slog.String("client.id", clientID))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	draftsSaved     metric.Int64Counter
	ordersSubmitted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	draftsSaved, _ := m.Int64Counter("orders.service.drafts_saved", metric.WithDescription("Number of drafts saved"))
	ordersSubmitted, _ := m.Int64Counter("orders.service.orders_submitted", metric.WithDescription("Number of orders submitted by outcome status"))
	return serviceMetrics{draftsSaved: draftsSaved, ordersSubmitted: ordersSubmitted}
}

func (m serviceMetrics) recordDraftSaved(ctx context.Context) {
	if m.draftsSaved != nil {
		m.draftsSaved.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context, status ordersdomain.ApprovalStatus) {
	if m.ordersSubmitted != nil {
		m.ordersSubmitted.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ordersports.Service = (*Service)(nil)
