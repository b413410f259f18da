package usecase

import (
	"context"

	"go.uber.org/zap"

	"orderdesk/internal/auth"
	"orderdesk/internal/dto"
	"orderdesk/internal/errors"
	"orderdesk/internal/message/repository"
)

type MessageRepository interface {
	ListForOwner(ctx context.Context, email string) ([]repository.InboxRow, error)
	MarkRead(ctx context.Context, email string, ids []uint) error
	UnreadCount(ctx context.Context, email string) (int, error)
}

// InboxUseCase is the client-facing read side of the ledger.
type InboxUseCase struct {
	messages MessageRepository
	logger   *zap.Logger
}

func NewInboxUseCase(messages MessageRepository, logger *zap.Logger) *InboxUseCase {
	return &InboxUseCase{messages: messages, logger: logger}
}

// ListMessages returns the owner's ledger newest-first, each entry carrying
// the live status of its order, then marks the fetched entries read. Only
// what was actually returned is flagged: an entry appended while the list
// is in flight keeps its unread badge for the next view. The returned
// entries still show the flags as they were when fetched.
func (uc *InboxUseCase) ListMessages(ctx context.Context, actor auth.Actor) ([]dto.InboxEntry, error) {
	rows, err := uc.messages.ListForOwner(ctx, actor.Email)
	if err != nil {
		return nil, errors.NewInternalError("listing messages", err)
	}

	var unread []uint
	entries := make([]dto.InboxEntry, len(rows))
	for i, row := range rows {
		status := ""
		if row.OrderStatus != nil {
			status = *row.OrderStatus
		}
		entries[i] = dto.NewInboxEntry(row.Message, status)
		if !row.Message.IsRead {
			unread = append(unread, row.Message.ID)
		}
	}

	if err := uc.messages.MarkRead(ctx, actor.Email, unread); err != nil {
		return nil, errors.NewInternalError("marking messages read", err)
	}

	return entries, nil
}

func (uc *InboxUseCase) UnreadCount(ctx context.Context, actor auth.Actor) (int, error) {
	count, err := uc.messages.UnreadCount(ctx, actor.Email)
	if err != nil {
		return 0, errors.NewInternalError("counting unread messages", err)
	}
	return count, nil
}
