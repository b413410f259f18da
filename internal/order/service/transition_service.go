package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	"orderdesk/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderStore interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, from, to domain.Status, now time.Time) error
}

type Ledger interface {
	Insert(ctx context.Context, tx *sql.Tx, msg domain.Message) (uint, error)
}

// ComposeMessage builds the ledger entry for a transition from the order as
// it stands inside the transaction, before the status moves.
type ComposeMessage func(order domain.Order) domain.Message

// TransitionService is the only code path that writes an order's status.
// Each Apply wraps the status update and its ledger entry in one
// transaction; callers notify after Apply returns, never inside it.
type TransitionService struct {
	db     TransactionManager
	orders OrderStore
	ledger Ledger
	logger *zap.Logger
	now    func() time.Time
}

func NewTransitionService(
	db TransactionManager,
	orders OrderStore,
	ledger Ledger,
	logger *zap.Logger,
	loc *time.Location,
) *TransitionService {
	return &TransitionService{
		db:     db,
		orders: orders,
		ledger: ledger,
		logger: logger,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

// Apply moves an order along the lifecycle edge the event names.
//
// Re-invoking an event on an order already in its target status is an
// idempotent success: no write, no duplicate ledger entry, AlreadyApplied
// set so the caller skips notification. An event fired from any other
// illegal state returns InvalidTransitionError and writes nothing.
func (s *TransitionService) Apply(ctx context.Context, orderID uint, event domain.Event, compose ComposeMessage) (*dto.TransitionOutcome, error) {
	txCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, errors.NewInternalError("beginning transition transaction", err)
	}
	// Rollback on any exit path; a no-op once committed.
	defer tx.Rollback()

	order, err := s.orders.FindByIDForUpdate(txCtx, tx, orderID)
	if err != nil {
		return nil, err
	}

	target := event.Target()
	if order.Status == target {
		s.logger.Info("transition already applied",
			zap.Uint("orderId", orderID),
			zap.String("event", string(event)),
		)
		return &dto.TransitionOutcome{Order: *order, AlreadyApplied: true}, nil
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, errors.NewInvalidTransitionError(string(order.Status), string(event))
	}

	now := s.now()
	if err := s.orders.UpdateStatus(txCtx, tx, orderID, order.Status, target, now); err != nil {
		s.logger.Error("failed to update order status",
			zap.Uint("orderId", orderID),
			zap.String("event", string(event)),
			zap.Error(err),
		)
		return nil, err
	}

	msg := compose(*order)
	msg.CreatedAt = now
	msgID, err := s.ledger.Insert(txCtx, tx, msg)
	if err != nil {
		s.logger.Error("failed to append ledger entry",
			zap.Uint("orderId", orderID),
			zap.String("event", string(event)),
			zap.Error(err),
		)
		return nil, errors.NewInternalError("appending ledger entry", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transition",
			zap.Uint("orderId", orderID),
			zap.String("event", string(event)),
			zap.Error(err),
		)
		return nil, errors.NewInternalError("committing transition", err)
	}

	s.logger.Info("transition applied",
		zap.Uint("orderId", orderID),
		zap.String("event", string(event)),
		zap.String("from", string(order.Status)),
		zap.String("to", string(target)),
	)

	order.Status = target
	order.LastUpdated = now
	return &dto.TransitionOutcome{Order: *order, MessageID: msgID}, nil
}
