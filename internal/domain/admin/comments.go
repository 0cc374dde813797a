// internal/domain/admin/comments.go
package admin

import (
	"context"
	"fmt"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/domain/catalog"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

// Comments moderates course reviews from the admin console. FetchAll
// returns every review including unapproved ones.
type Comments struct {
	*Collection[catalog.Comment]
}

// NewComments creates the comment moderation store
func NewComments(client *api.Client, session SessionRevoker, notifier notify.Notifier) *Comments {
	return &Comments{
		Collection: NewCollection[catalog.Comment](client, session, notifier, "comments", "/comments/all"),
	}
}

// Pending returns the cached reviews awaiting moderation.
func (c *Comments) Pending() []catalog.Comment {
	var pending []catalog.Comment
	for _, comment := range c.Items() {
		if !comment.Approved {
			pending = append(pending, comment)
		}
	}
	return pending
}

// Approve publishes a review and merges the server's record into the cache.
func (c *Comments) Approve(ctx context.Context, id int64) (*catalog.Comment, error) {
	path := fmt.Sprintf("/comments/approve/%d", id)
	approved, err := c.mutate(ctx, "POST", path, nil, nil, "Could not approve comment")
	if err != nil {
		return nil, fmt.Errorf("admin: approve comment %d: %w", id, err)
	}
	c.notifier.Success("Comment approved")
	return approved, nil
}

// Delete removes a review and drops it from the cache.
func (c *Comments) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/comments/delete/%d", id)
	if err := c.removeByID(ctx, "POST", path, id, "Could not delete comment"); err != nil {
		return fmt.Errorf("admin: delete comment %d: %w", id, err)
	}
	c.notifier.Success("Comment deleted")
	return nil
}
