package reporting

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	catalogrepo "orderdesk/internal/catalog/repository"
	"orderdesk/internal/config"
	directoryrepo "orderdesk/internal/directory/repository"
	orderrepo "orderdesk/internal/order/repository"
	"orderdesk/internal/reporting/controller"
	"orderdesk/internal/reporting/repository"
	"orderdesk/internal/reporting/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, loc *time.Location, logger *zap.Logger) *controller.ReportingController {
	reportingRepo := repository.NewMySQLReportingRepository(db)
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	catalogRepo := catalogrepo.NewMySQLCatalogRepository(db)
	directoryRepo := directoryrepo.NewMySQLDirectoryRepository(db)

	reportingUC := usecase.NewReportingUseCase(
		reportingRepo,
		orderRepo,
		catalogRepo,
		directoryRepo,
		logger,
		cfg.Portal.ReportWindowDays,
		cfg.Portal.TimelineCutoff,
		loc,
	)

	return controller.NewReportingController(reportingUC, logger)
}
