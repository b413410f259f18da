package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal/auth"
	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
)

type LifecycleUseCase interface {
	PlaceOrder(ctx context.Context, actor auth.Actor, req dto.PlaceOrderRequest) (*dto.LifecycleResult, error)
	SendQuotation(ctx context.Context, actor auth.Actor, orderID uint, req dto.QuotationRequest) (*dto.LifecycleResult, error)
	Finalize(ctx context.Context, actor auth.Actor, messageID uint) (*dto.LifecycleResult, error)
	Cancel(ctx context.Context, actor auth.Actor, messageID uint) (*dto.LifecycleResult, error)
	CancelOrder(ctx context.Context, actor auth.Actor, orderID uint) (*dto.LifecycleResult, error)
	Dispatch(ctx context.Context, actor auth.Actor, orderID uint) (*dto.LifecycleResult, error)
	MarkDelivered(ctx context.Context, actor auth.Actor, orderID uint) (*dto.LifecycleResult, error)
	UpdatePaymentStatus(ctx context.Context, actor auth.Actor, orderID uint, value string) error
	ListOrders(ctx context.Context, actor auth.Actor, filter dto.OrderFilter) ([]domain.Order, error)
	DeleteOrder(ctx context.Context, actor auth.Actor, orderID uint) error
}

type OrderController struct {
	useCase LifecycleUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase LifecycleUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{useCase: useCase, logger: logger}
}

func (c *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		c.writeUnauthenticated(w, traceID)
		return
	}

	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	result, err := c.useCase.PlaceOrder(r.Context(), actor, req)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeLifecycle(w, http.StatusCreated, traceID, result)
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		c.writeUnauthenticated(w, traceID)
		return
	}

	filter, err := parseOrderFilter(r.URL.Query().Get("scope"), r.URL.Query().Get("statuses"))
	if err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	orders, err := c.useCase.ListOrders(r.Context(), actor, filter)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	out := make([]dto.OrderDTO, len(orders))
	for i, o := range orders {
		out[i] = dto.NewOrderDTO(o)
	}
	c.writeJSON(w, http.StatusOK, out)
}

func (c *OrderController) SendQuotation(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		c.writeUnauthenticated(w, traceID)
		return
	}

	orderID, ok := c.pathID(w, r, traceID, "orderID")
	if !ok {
		return
	}

	var req dto.QuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	result, err := c.useCase.SendQuotation(r.Context(), actor, orderID, req)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeLifecycle(w, http.StatusOK, traceID, result)
}

func (c *OrderController) Dispatch(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, "orderID", c.useCase.Dispatch)
}

func (c *OrderController) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, "orderID", c.useCase.MarkDelivered)
}

func (c *OrderController) Finalize(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, "messageID", c.useCase.Finalize)
}

func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, "messageID", c.useCase.Cancel)
}

func (c *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, "orderID", c.useCase.CancelOrder)
}

// transition handles the body-less lifecycle actions, which differ only in
// the use case method and the path parameter naming the target.
func (c *OrderController) transition(w http.ResponseWriter, r *http.Request, param string, apply func(context.Context, auth.Actor, uint) (*dto.LifecycleResult, error)) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		c.writeUnauthenticated(w, traceID)
		return
	}

	id, ok := c.pathID(w, r, traceID, param)
	if !ok {
		return
	}

	result, err := apply(r.Context(), actor, id)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeLifecycle(w, http.StatusOK, traceID, result)
}

func (c *OrderController) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		c.writeUnauthenticated(w, traceID)
		return
	}

	orderID, ok := c.pathID(w, r, traceID, "orderID")
	if !ok {
		return
	}

	var req dto.PaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.useCase.UpdatePaymentStatus(r.Context(), actor, orderID, req.PaymentStatus); err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"traceId": traceID,
		"orderId": orderID,
		"success": true,
	})
}

func (c *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		c.writeUnauthenticated(w, traceID)
		return
	}

	orderID, ok := c.pathID(w, r, traceID, "orderID")
	if !ok {
		return
	}

	if err := c.useCase.DeleteOrder(r.Context(), actor, orderID); err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseOrderFilter(scope, statuses string) (dto.OrderFilter, error) {
	switch scope {
	case "", "all":
		return dto.OrderFilter{Scope: dto.ScopeAll}, nil
	case "owner":
		return dto.OrderFilter{Scope: dto.ScopeOwner}, nil
	case "group":
		if statuses == "" {
			return dto.OrderFilter{}, apperrors.NewValidationError("statuses is required", apperrors.ValidationDetail{
				Field:   "statuses",
				Message: "scope=group requires a comma-separated statuses parameter",
			})
		}
		var parsed []domain.Status
		for _, raw := range strings.Split(statuses, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			s := domain.Status(raw)
			if !s.IsValid() {
				return dto.OrderFilter{}, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
					Field:   "statuses",
					Message: "unknown status: " + raw,
				})
			}
			parsed = append(parsed, s)
		}
		return dto.OrderFilter{Scope: dto.ScopeGroup, Statuses: parsed}, nil
	default:
		return dto.OrderFilter{}, apperrors.NewValidationError("invalid scope", apperrors.ValidationDetail{
			Field:   "scope",
			Message: "scope must be one of: all, owner, group",
		})
	}
}

func (c *OrderController) pathID(w http.ResponseWriter, r *http.Request, traceID, param string) (uint, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, traceID, "invalid "+param, apperrors.ValidationDetail{
			Field:   param,
			Message: param + " must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (c *OrderController) handleError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		c.writeError(w, traceID, http.StatusForbidden, "FORBIDDEN", err.Error())
		return
	}

	if _, ok := apperrors.IsInvalidTransitionError(err); ok {
		c.writeError(w, traceID, http.StatusConflict, "INVALID_TRANSITION", err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *OrderController) writeLifecycle(w http.ResponseWriter, status int, traceID string, result *dto.LifecycleResult) {
	c.writeJSON(w, status, dto.LifecycleResponse{
		TraceID:   traceID,
		OrderID:   result.Order.ID,
		Status:    string(result.Order.Status),
		Warning:   result.Warning,
		Timestamp: time.Now().UTC(),
	})
}

type errorResponse struct {
	TraceID string `json:"traceId"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *OrderController) writeError(w http.ResponseWriter, traceID string, status int, code, message string) {
	c.writeJSON(w, status, errorResponse{TraceID: traceID, Code: code, Message: message})
}

func (c *OrderController) writeUnauthenticated(w http.ResponseWriter, traceID string) {
	c.writeError(w, traceID, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, traceID, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
