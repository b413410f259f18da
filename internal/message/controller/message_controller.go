package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal/auth"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
)

type InboxUseCase interface {
	ListMessages(ctx context.Context, actor auth.Actor) ([]dto.InboxEntry, error)
	UnreadCount(ctx context.Context, actor auth.Actor) (int, error)
}

type MessageController struct {
	useCase InboxUseCase
	logger  *zap.Logger
}

func NewMessageController(useCase InboxUseCase, logger *zap.Logger) *MessageController {
	return &MessageController{useCase: useCase, logger: logger}
}

// ListMessages returns the caller's inbox and marks every entry read.
func (c *MessageController) ListMessages(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		c.writeUnauthenticated(w, traceID)
		return
	}

	entries, err := c.useCase.ListMessages(r.Context(), actor)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, entries)
}

func (c *MessageController) UnreadCount(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		c.writeUnauthenticated(w, traceID)
		return
	}

	count, err := c.useCase.UnreadCount(r.Context(), actor)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (c *MessageController) handleError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ie, ok := apperrors.IsInternalError(err); ok {
		logger.Error("internal error", zap.String("message", ie.Message), zap.Error(ie.Cause))
	} else {
		logger.Error("unexpected error", zap.Error(err))
	}
	c.writeError(w, traceID, http.StatusInternalServerError, "INTERNAL", "internal server error")
}

func (c *MessageController) writeUnauthenticated(w http.ResponseWriter, traceID string) {
	c.writeError(w, traceID, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
}

func (c *MessageController) writeError(w http.ResponseWriter, traceID string, status int, code, message string) {
	c.writeJSON(w, status, map[string]any{
		"traceId": traceID,
		"code":    code,
		"message": message,
	})
}

func (c *MessageController) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
