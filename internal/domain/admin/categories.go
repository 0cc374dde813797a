// internal/domain/admin/categories.go
package admin

import (
	"context"
	"fmt"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/domain/catalog"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

// Categories manages course categories from the admin console
type Categories struct {
	*Collection[catalog.Category]
}

// NewCategories creates the admin category store
func NewCategories(client *api.Client, session SessionRevoker, notifier notify.Notifier) *Categories {
	return &Categories{
		Collection: NewCollection[catalog.Category](client, session, notifier, "categories", "/categories/all"),
	}
}

// CategoryRequest represents a category create/update submission
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Add creates a category and merges the server's record into the cache.
func (c *Categories) Add(ctx context.Context, req *CategoryRequest) (*catalog.Category, error) {
	if req.Name == "" {
		c.notifier.Error("Category name is required")
		return nil, fmt.Errorf("admin: category name is required")
	}

	created, err := c.mutate(ctx, "POST", "/categories/add", nil, req, "Could not create category")
	if err != nil {
		return nil, fmt.Errorf("admin: add category: %w", err)
	}
	c.notifier.Success("Category created")
	return created, nil
}

// Update replaces a category and merges the server's record into the cache.
func (c *Categories) Update(ctx context.Context, id int64, req *CategoryRequest) (*catalog.Category, error) {
	if req.Name == "" {
		c.notifier.Error("Category name is required")
		return nil, fmt.Errorf("admin: category name is required")
	}

	path := fmt.Sprintf("/categories/%d/update", id)
	updated, err := c.mutate(ctx, "POST", path, nil, req, "Could not update category")
	if err != nil {
		return nil, fmt.Errorf("admin: update category %d: %w", id, err)
	}
	c.notifier.Success("Category updated")
	return updated, nil
}

// Delete removes a category. Deleting a category still referenced by
// courses fails server-side with a constraint violation, surfaced as a
// tailored notification.
func (c *Categories) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/categories/%d/delete", id)
	if err := c.removeByID(ctx, "DELETE", path, id, "Could not delete category"); err != nil {
		return fmt.Errorf("admin: delete category %d: %w", id, err)
	}
	c.notifier.Success("Category deleted")
	return nil
}
