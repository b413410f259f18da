package order

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	catalogrepo "orderdesk/internal/catalog/repository"
	"orderdesk/internal/config"
	messagerepo "orderdesk/internal/message/repository"
	"orderdesk/internal/notifier"
	"orderdesk/internal/order/controller"
	orderrepo "orderdesk/internal/order/repository"
	"orderdesk/internal/order/service"
	"orderdesk/internal/order/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, loc *time.Location, sender notifier.Notifier, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	messageRepo := messagerepo.NewMySQLMessageRepository(db)
	catalogRepo := catalogrepo.NewMySQLCatalogRepository(db)

	transitionSvc := service.NewTransitionService(db, orderRepo, messageRepo, logger, loc)

	lifecycleUC := usecase.NewLifecycleUseCase(
		orderRepo,
		messageRepo,
		transitionSvc,
		catalogRepo,
		sender,
		notifier.NewRenderer(cfg.Portal.CompanyName),
		cfg.Portal.AdminEmail,
		logger,
		loc,
	)

	return controller.NewOrderController(lifecycleUC, logger)
}
