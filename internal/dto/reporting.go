package dto

// DashboardSummary mirrors the admin dashboard tiles. Every field is
// recomputed from current store state on each call; nothing is cached.
type DashboardSummary struct {
	OrdersThisWeek   int    `json:"ordersThisWeek"`
	UnplacedOrders   int    `json:"unplacedOrders"`
	PendingOrders    int    `json:"pendingOrders"`
	DeliveredCount   int    `json:"deliveredCount"`
	DispatchedCount  int    `json:"dispatchedCount"`
	InStockProducts  int    `json:"inStockProducts"`
	TotalClients     int    `json:"totalClients"`
	UnpaidShipped    int    `json:"unpaidShipped"`
	MostInquiredItem string `json:"mostInquiredItem"`
	MostActiveClient string `json:"mostActiveClient"`
}

type InquiredItem struct {
	ProductName string `json:"productName"`
	OrderCount  int    `json:"orderCount"`
}

type ProductCount struct {
	ProductName string `json:"productName"`
	Count       int    `json:"count"`
}

type ClientOrders struct {
	Email       string         `json:"email"`
	TotalOrders int            `json:"totalOrders"`
	Products    []ProductCount `json:"products"`
}

type DeliveredOrder struct {
	ID          uint   `json:"id"`
	Product     string `json:"product"`
	Client      string `json:"client"`
	DeliveredAt string `json:"deliveredAt"`
}

type TimelineOrder struct {
	ID          uint   `json:"id"`
	ProductName string `json:"productName"`
	ClientEmail string `json:"clientEmail"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type PaymentStatusEntry struct {
	ID            uint   `json:"id"`
	ProductName   string `json:"productName"`
	ClientEmail   string `json:"clientEmail"`
	Quantity      string `json:"quantity"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	CreatedAt     string `json:"createdAt"`
	LastUpdated   string `json:"lastUpdated"`
}
