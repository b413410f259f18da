package catalog

import (
	"context"

	"orderdesk/internal/domain"
)

// Store is the read surface of the product catalog the ordering core
// consumes. Catalog writes (CRUD, images) live with the catalog owner.
type Store interface {
	ResolveProduct(ctx context.Context, id int) (*domain.Product, error)
	CountInStock(ctx context.Context) (int, error)
}
