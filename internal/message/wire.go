package message

import (
	"database/sql"

	"go.uber.org/zap"

	"orderdesk/internal/message/controller"
	"orderdesk/internal/message/repository"
	"orderdesk/internal/message/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.MessageController {
	messageRepo := repository.NewMySQLMessageRepository(db)
	inboxUC := usecase.NewInboxUseCase(messageRepo, logger)

	return controller.NewMessageController(inboxUC, logger)
}
