// internal/domain/admin/products.go
package admin

import (
	"context"
	"fmt"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/domain/catalog"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

// Products manages the course catalog from the admin console
type Products struct {
	*Collection[catalog.Product]
}

// NewProducts creates the admin product store
func NewProducts(client *api.Client, session SessionRevoker, notifier notify.Notifier) *Products {
	return &Products{
		Collection: NewCollection[catalog.Product](client, session, notifier, "products", "/products/all"),
	}
}

// ProductRequest represents a product create/update submission
type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	CategoryID  int64  `json:"category_id"`
	Instructor  string `json:"instructor"`
	ImageURL    string `json:"image_url"`
}

func (r *ProductRequest) validate() error {
	if r.Name == "" {
		return fmt.Errorf("admin: product name is required")
	}
	if r.Price < 0 {
		return fmt.Errorf("admin: product price cannot be negative")
	}
	if r.CategoryID == 0 {
		return fmt.Errorf("admin: product category is required")
	}
	return nil
}

// Add creates a course and merges the server's record into the cache.
func (p *Products) Add(ctx context.Context, req *ProductRequest) (*catalog.Product, error) {
	if err := req.validate(); err != nil {
		p.notifier.Error("Product details are incomplete")
		return nil, err
	}

	created, err := p.mutate(ctx, "POST", "/products/add", nil, req, "Could not create product")
	if err != nil {
		return nil, fmt.Errorf("admin: add product: %w", err)
	}
	p.notifier.Success("Product created")
	return created, nil
}

// Update replaces a course and merges the server's record into the cache.
func (p *Products) Update(ctx context.Context, id int64, req *ProductRequest) (*catalog.Product, error) {
	if err := req.validate(); err != nil {
		p.notifier.Error("Product details are incomplete")
		return nil, err
	}

	path := fmt.Sprintf("/products/%d/update", id)
	updated, err := p.mutate(ctx, "POST", path, nil, req, "Could not update product")
	if err != nil {
		return nil, fmt.Errorf("admin: update product %d: %w", id, err)
	}
	p.notifier.Success("Product updated")
	return updated, nil
}

// Delete removes a course and drops it from the cache.
func (p *Products) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/products/%d/delete", id)
	if err := p.removeByID(ctx, "DELETE", path, id, "Could not delete product"); err != nil {
		return fmt.Errorf("admin: delete product %d: %w", id, err)
	}
	p.notifier.Success("Product deleted")
	return nil
}
