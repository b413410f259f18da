package usecase

import (
	"context"
	"regexp"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	"orderdesk/internal/errors"
	"orderdesk/internal/reporting/repository"
)

type ReportingRepository interface {
	CountOrders(ctx context.Context, weekStart time.Time) (*repository.OrderCounts, error)
	ListByWindow(ctx context.Context, weekStart time.Time) ([]domain.Order, error)
	InquiredItems(ctx context.Context) ([]repository.ItemCount, error)
	ClientTotals(ctx context.Context) ([]repository.ItemCount, error)
	ProductsForClient(ctx context.Context, email string) ([]repository.ItemCount, error)
	DeliveredByCategory(ctx context.Context) ([]repository.DeliveredRow, error)
	TimelineMonths(ctx context.Context, cutoff string) ([]string, error)
	TimelineOrders(ctx context.Context, month string) ([]repository.TimelineRow, error)
	PaymentStatusList(ctx context.Context) ([]repository.PaymentRow, error)
}

type OrderLister interface {
	ListByStatuses(ctx context.Context, statuses []domain.Status) ([]domain.Order, error)
}

type CatalogStore interface {
	CountInStock(ctx context.Context) (int, error)
}

type Directory interface {
	CountClients(ctx context.Context) (int, error)
}

// ReportingUseCase recomputes every report from current store state on
// each call. There is no materialized view to refresh or invalidate.
type ReportingUseCase struct {
	reports    ReportingRepository
	orders     OrderLister
	catalog    CatalogStore
	directory  Directory
	logger     *zap.Logger
	windowDays int
	cutoff     string
	now        func() time.Time
}

func NewReportingUseCase(
	reports ReportingRepository,
	orders OrderLister,
	catalog CatalogStore,
	directory Directory,
	logger *zap.Logger,
	windowDays int,
	cutoff string,
	loc *time.Location,
) *ReportingUseCase {
	return &ReportingUseCase{
		reports:    reports,
		orders:     orders,
		catalog:    catalog,
		directory:  directory,
		logger:     logger,
		windowDays: windowDays,
		cutoff:     cutoff,
		now:        func() time.Time { return time.Now().In(loc) },
	}
}

func (uc *ReportingUseCase) weekStart() time.Time {
	return uc.now().AddDate(0, 0, -uc.windowDays)
}

// Dashboard assembles the admin summary tiles. Empty-store aggregates come
// back as zero counts and blank top entries.
func (uc *ReportingUseCase) Dashboard(ctx context.Context) (*dto.DashboardSummary, error) {
	counts, err := uc.reports.CountOrders(ctx, uc.weekStart())
	if err != nil {
		return nil, errors.NewInternalError("computing dashboard counts", err)
	}

	inStock, err := uc.catalog.CountInStock(ctx)
	if err != nil {
		return nil, errors.NewInternalError("counting stocked products", err)
	}

	clients, err := uc.directory.CountClients(ctx)
	if err != nil {
		return nil, errors.NewInternalError("counting clients", err)
	}

	return &dto.DashboardSummary{
		OrdersThisWeek:   counts.OrdersThisWeek,
		UnplacedOrders:   counts.UnplacedOrders,
		PendingOrders:    counts.PendingOrders,
		DeliveredCount:   counts.DeliveredCount,
		DispatchedCount:  counts.DispatchedCount,
		InStockProducts:  inStock,
		TotalClients:     clients,
		UnpaidShipped:    counts.UnpaidShipped,
		MostInquiredItem: counts.MostInquiredItem,
		MostActiveClient: counts.MostActiveClient,
	}, nil
}

var groupStatuses = map[string][]domain.Status{
	"unplaced":   {domain.StatusInquiryReceived, domain.StatusQuoteSent},
	"pending":    {domain.StatusOrderPlaced, domain.StatusDispatched},
	"dispatched": {domain.StatusDispatched},
	"delivered":  {domain.StatusDelivered},
}

// OrdersByGroup lists the orders behind one dashboard tile. "week" selects
// by activity (last_updated); the rest select by status.
func (uc *ReportingUseCase) OrdersByGroup(ctx context.Context, group string) ([]dto.OrderDTO, error) {
	var (
		orders []domain.Order
		err    error
	)

	if group == "week" {
		orders, err = uc.reports.ListByWindow(ctx, uc.weekStart())
	} else if statuses, ok := groupStatuses[group]; ok {
		orders, err = uc.orders.ListByStatuses(ctx, statuses)
	} else {
		return nil, errors.NewValidationError("invalid group", errors.ValidationDetail{
			Field:   "group",
			Message: "group must be one of: week, unplaced, pending, dispatched, delivered",
		})
	}
	if err != nil {
		return nil, errors.NewInternalError("listing orders by group", err)
	}

	result := make([]dto.OrderDTO, len(orders))
	for i, order := range orders {
		result[i] = dto.NewOrderDTO(order)
	}
	return result, nil
}

func (uc *ReportingUseCase) InquiredItems(ctx context.Context) ([]dto.InquiredItem, error) {
	items, err := uc.reports.InquiredItems(ctx)
	if err != nil {
		return nil, errors.NewInternalError("listing inquired items", err)
	}

	result := make([]dto.InquiredItem, len(items))
	for i, item := range items {
		result[i] = dto.InquiredItem{ProductName: item.Key, OrderCount: item.Count}
	}
	return result, nil
}

// ClientBreakdown returns every client with their order total and a
// per-product histogram, busiest clients first.
func (uc *ReportingUseCase) ClientBreakdown(ctx context.Context) ([]dto.ClientOrders, error) {
	totals, err := uc.reports.ClientTotals(ctx)
	if err != nil {
		return nil, errors.NewInternalError("listing client totals", err)
	}

	result := make([]dto.ClientOrders, len(totals))
	for i, total := range totals {
		products, err := uc.reports.ProductsForClient(ctx, total.Key)
		if err != nil {
			return nil, errors.NewInternalError("listing client products", err)
		}

		histogram := make([]dto.ProductCount, len(products))
		for j, p := range products {
			histogram[j] = dto.ProductCount{ProductName: p.Key, Count: p.Count}
		}

		result[i] = dto.ClientOrders{
			Email:       total.Key,
			TotalOrders: total.Count,
			Products:    histogram,
		}
	}
	return result, nil
}

// DeliveredByCategory groups delivered orders under their product category.
// Orders whose product no longer matches a catalog name are not listed.
func (uc *ReportingUseCase) DeliveredByCategory(ctx context.Context) (map[string][]dto.DeliveredOrder, error) {
	rows, err := uc.reports.DeliveredByCategory(ctx)
	if err != nil {
		return nil, errors.NewInternalError("listing delivered orders", err)
	}

	categories := make(map[string][]dto.DeliveredOrder)
	for _, row := range rows {
		categories[row.Category] = append(categories[row.Category], dto.DeliveredOrder{
			ID:          row.ID,
			Product:     row.Product,
			Client:      row.Client,
			DeliveredAt: row.DeliveredAt.Format(time.DateTime),
		})
	}
	return categories, nil
}

func (uc *ReportingUseCase) TimelineMonths(ctx context.Context) ([]string, error) {
	months, err := uc.reports.TimelineMonths(ctx, uc.cutoff)
	if err != nil {
		return nil, errors.NewInternalError("listing timeline months", err)
	}
	return months, nil
}

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

func (uc *ReportingUseCase) TimelineOrders(ctx context.Context, month string) ([]dto.TimelineOrder, error) {
	if !monthPattern.MatchString(month) {
		return nil, errors.NewValidationError("invalid month", errors.ValidationDetail{
			Field:   "month",
			Message: "month must be formatted as YYYY-MM",
		})
	}

	rows, err := uc.reports.TimelineOrders(ctx, month)
	if err != nil {
		return nil, errors.NewInternalError("listing timeline orders", err)
	}

	result := make([]dto.TimelineOrder, len(rows))
	for i, row := range rows {
		result[i] = dto.TimelineOrder{
			ID:          row.ID,
			ProductName: row.ProductName,
			ClientEmail: row.ClientEmail,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt.Format(time.DateTime),
		}
	}
	return result, nil
}

func (uc *ReportingUseCase) PaymentStatusList(ctx context.Context) ([]dto.PaymentStatusEntry, error) {
	rows, err := uc.reports.PaymentStatusList(ctx)
	if err != nil {
		return nil, errors.NewInternalError("listing payment statuses", err)
	}

	result := make([]dto.PaymentStatusEntry, len(rows))
	for i, row := range rows {
		paymentStatus := row.PaymentStatus
		if paymentStatus == "" {
			paymentStatus = string(domain.PaymentUnpaid)
		}
		result[i] = dto.PaymentStatusEntry{
			ID:            row.ID,
			ProductName:   row.ProductName,
			ClientEmail:   row.ClientEmail,
			Quantity:      row.Quantity,
			Status:        row.Status,
			PaymentStatus: paymentStatus,
			CreatedAt:     row.CreatedAt.Format(time.DateTime),
			LastUpdated:   row.LastUpdated.Format(time.DateTime),
		}
	}
	return result, nil
}
