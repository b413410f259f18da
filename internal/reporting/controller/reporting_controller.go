package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal/auth"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
)

type ReportingUseCase interface {
	Dashboard(ctx context.Context) (*dto.DashboardSummary, error)
	OrdersByGroup(ctx context.Context, group string) ([]dto.OrderDTO, error)
	InquiredItems(ctx context.Context) ([]dto.InquiredItem, error)
	ClientBreakdown(ctx context.Context) ([]dto.ClientOrders, error)
	DeliveredByCategory(ctx context.Context) (map[string][]dto.DeliveredOrder, error)
	TimelineMonths(ctx context.Context) ([]string, error)
	TimelineOrders(ctx context.Context, month string) ([]dto.TimelineOrder, error)
	PaymentStatusList(ctx context.Context) ([]dto.PaymentStatusEntry, error)
}

// ReportingController serves the admin report endpoints. Every handler
// requires an admin actor; clients get 403.
type ReportingController struct {
	useCase ReportingUseCase
	logger  *zap.Logger
}

func NewReportingController(useCase ReportingUseCase, logger *zap.Logger) *ReportingController {
	return &ReportingController{useCase: useCase, logger: logger}
}

func (c *ReportingController) Dashboard(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, func(ctx context.Context) (any, error) {
		return c.useCase.Dashboard(ctx)
	})
}

func (c *ReportingController) OrdersByGroup(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	c.serve(w, r, func(ctx context.Context) (any, error) {
		return c.useCase.OrdersByGroup(ctx, group)
	})
}

func (c *ReportingController) InquiredItems(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, func(ctx context.Context) (any, error) {
		return c.useCase.InquiredItems(ctx)
	})
}

func (c *ReportingController) ClientBreakdown(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, func(ctx context.Context) (any, error) {
		return c.useCase.ClientBreakdown(ctx)
	})
}

func (c *ReportingController) DeliveredByCategory(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, func(ctx context.Context) (any, error) {
		return c.useCase.DeliveredByCategory(ctx)
	})
}

func (c *ReportingController) TimelineMonths(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, func(ctx context.Context) (any, error) {
		return c.useCase.TimelineMonths(ctx)
	})
}

func (c *ReportingController) TimelineOrders(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	c.serve(w, r, func(ctx context.Context) (any, error) {
		return c.useCase.TimelineOrders(ctx, month)
	})
}

func (c *ReportingController) PaymentStatusList(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, func(ctx context.Context) (any, error) {
		return c.useCase.PaymentStatusList(ctx)
	})
}

func (c *ReportingController) serve(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context) (any, error)) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		c.writeError(w, traceID, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}
	if !actor.IsAdmin {
		c.writeError(w, traceID, http.StatusForbidden, "FORBIDDEN", "reports are restricted to administrators")
		return
	}

	body, err := fetch(r.Context())
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, body)
}

func (c *ReportingController) handleError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, map[string]any{
			"traceId": traceID,
			"code":    "VALIDATION",
			"message": ve.Message,
			"details": ve.Details,
		})
		return
	}

	if ie, ok := apperrors.IsInternalError(err); ok {
		logger.Error("internal error", zap.String("message", ie.Message), zap.Error(ie.Cause))
	} else {
		logger.Error("unexpected error", zap.Error(err))
	}
	c.writeError(w, traceID, http.StatusInternalServerError, "INTERNAL", "internal server error")
}

func (c *ReportingController) writeError(w http.ResponseWriter, traceID string, status int, code, message string) {
	c.writeJSON(w, status, map[string]any{
		"traceId": traceID,
		"code":    code,
		"message": message,
	})
}

func (c *ReportingController) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
