package domain

type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// Product is the read-only view of a catalog entry the ordering core
// consumes; the catalog itself is managed elsewhere.
type Product struct {
	ID          int
	Name        string
	Category    string
	StockStatus StockStatus
}

func (p Product) InStock() bool {
	return p.StockStatus == StockInStock
}
