// Package http exposes the order pipeline over a gin API.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldops/salesorder-api/internal/domains/orders/adapters/http/mapper"
	"github.com/fieldops/salesorder-api/internal/domains/orders/application"
	ordersdomain "github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
	sharederrors "github.com/fieldops/salesorder-api/internal/shared/errors"
)

// Handler wires the orders service into gin routes.
type Handler struct {
	service   ports.Service
	resends   ports.ResendOrchestrator
	responder *sharederrors.ChainedResponder
}

// NewHandler builds the HTTP adapter. The resend orchestrator may be the
// inline fallback when no workflow engine is configured.
func NewHandler(service ports.Service, resends ports.ResendOrchestrator) *Handler {
	return &Handler{
		service:   service,
		resends:   resends,
		responder: sharederrors.NewChainedResponder("", mapOrderError),
	}
}

// RegisterRoutes mounts the pipeline endpoints under /api/v1.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	v1 := router.Group("/api/v1")
	v1.GET("/reps/:userId/draft", h.getDraft)
	v1.PUT("/reps/:userId/draft", h.saveDraft)
	v1.DELETE("/reps/:userId/draft", h.deleteDraft)
	v1.POST("/reps/:userId/orders/validate", h.validateOrder)
	v1.POST("/reps/:userId/orders", h.submitOrder)
	v1.GET("/reps/:userId/orders", h.listOrders)
	v1.GET("/clients/:clientId/credit", h.creditStanding)
	v1.POST("/orders/:requestNumber/resend", h.resendOrder)
}

func (h *Handler) getDraft(c *gin.Context) {
	draft, err := h.service.GetDraft(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainDraft(draft))
}

func (h *Handler) saveDraft(c *gin.Context) {
	var body mapper.OrderRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	receipt, err := h.service.SaveDraft(c.Request.Context(), c.Param("userId"), mapper.ToOrderRequest(body))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.SaveDraftResponse{SavedAt: receipt.SavedAt, TotalAmount: receipt.TotalAmount})
}

func (h *Handler) deleteDraft(c *gin.Context) {
	if err := h.service.DeleteDraft(c.Request.Context(), c.Param("userId")); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) validateOrder(c *gin.Context) {
	var body mapper.OrderRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	report, err := h.service.ValidateOrder(c.Request.Context(), c.Param("userId"), mapper.ToOrderRequest(body))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromValidationReport(report))
}

func (h *Handler) submitOrder(c *gin.Context) {
	var body mapper.OrderRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.SubmitOrder(c.Request.Context(), c.Param("userId"), mapper.ToOrderRequest(body))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromSubmitResult(result))
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrders(orders))
}

func (h *Handler) creditStanding(c *gin.Context) {
	standing, err := h.service.CreditStanding(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromCreditStanding(standing))
}

func (h *Handler) resendOrder(c *gin.Context) {
	result, err := h.resends.ResendOrder(c.Request.Context(), c.Param("requestNumber"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSubmitResult(result))
}

// mapOrderError translates pipeline errors into Problem Details responses.
func mapOrderError(err error) (sharederrors.ProblemDetail, bool) {
	var validationErr *application.ValidationError
	if errors.As(err, &validationErr) {
		return sharederrors.ErrUnprocessable.
			WithDetail(validationErr.Error()).
			WithExtension("invalidItems", mapper.FromInvalidItems(validationErr.Items)), true
	}
	var productErr *application.ProductNotFoundError
	if errors.As(err, &productErr) {
		return sharederrors.ErrBadRequest.
			WithDetail(productErr.Error()).
			WithExtension("productCode", productErr.Code), true
	}
	switch {
	case errors.Is(err, ports.ErrDraftNotFound):
		return sharederrors.NewNotFoundProblem("draft", "current"), true
	case errors.Is(err, ports.ErrOrderNotFound):
		return sharederrors.NewNotFoundProblem("order", "requested"), true
	case errors.Is(err, ports.ErrClientNotFound):
		return sharederrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidDeliveryDate),
		errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, ordersdomain.ErrOrderNotResendable):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
