// internal/domain/catalog/store.go

// Package catalog caches the storefront's read side: the course list, single
// course lookups and approved reviews. Every fetch replaces the cached
// collection wholesale with the server response.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/pkg/event"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

// Store caches storefront catalog reads
type Store struct {
	client   *api.Client
	notifier notify.Notifier

	courses []Product
	err     string
	changes event.Emitter[[]Product]
}

// NewStore creates a new catalog store
func NewStore(client *api.Client, notifier notify.Notifier) *Store {
	return &Store{
		client:   client,
		notifier: notifier,
	}
}

// Subscribe registers a handler invoked with the full course list after
// every replacement.
func (s *Store) Subscribe(handler func([]Product)) {
	s.changes.Subscribe(handler)
}

// Courses returns the cached course list.
func (s *Store) Courses() []Product {
	return s.courses
}

// Err returns the last fetch error message, or "".
func (s *Store) Err() string {
	return s.err
}

// FetchCourses loads the full course list, replacing the cached copy.
func (s *Store) FetchCourses(ctx context.Context) ([]Product, error) {
	var courses []Product
	if err := s.client.Do(ctx, "GET", "/products/all", nil, nil, &courses); err != nil {
		s.err = "Could not load courses"
		s.notifier.Error(s.err)
		return nil, fmt.Errorf("catalog: fetch courses: %w", err)
	}

	s.courses = courses
	s.err = ""
	s.changes.Emit(s.courses)
	return courses, nil
}

// FetchCourse loads a single course by id.
func (s *Store) FetchCourse(ctx context.Context, id int64) (*Product, error) {
	var course Product
	path := fmt.Sprintf("/products/product/%d/product", id)
	if err := s.client.Do(ctx, "GET", path, nil, nil, &course); err != nil {
		if api.IsNotFound(err) {
			s.notifier.Error("Course not found")
		} else {
			s.notifier.Error("Could not load course")
		}
		return nil, fmt.Errorf("catalog: fetch course %d: %w", id, err)
	}
	return &course, nil
}

// SortByPrice returns a copy of the cached course list ordered by price.
// The sort is stable, so equal-priced courses keep their fetched order and
// descending is the exact reverse of ascending for the same input.
func (s *Store) SortByPrice(order SortOrder) []Product {
	sorted := make([]Product, len(s.courses))
	copy(sorted, s.courses)

	switch order {
	case SortPriceDescending:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price > sorted[j].Price
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	}
	return sorted
}

// FetchApprovedComments loads the approved reviews for a course.
func (s *Store) FetchApprovedComments(ctx context.Context, productID int64) ([]Comment, error) {
	var comments []Comment
	path := fmt.Sprintf("/comments/approved/%d", productID)
	if err := s.client.Do(ctx, "GET", path, nil, nil, &comments); err != nil {
		s.notifier.Error("Could not load reviews")
		return nil, fmt.Errorf("catalog: fetch comments for product %d: %w", productID, err)
	}
	return comments, nil
}

// AddCommentRequest represents a new review submission
type AddCommentRequest struct {
	ProductID int64  `json:"product_id"`
	Content   string `json:"content"`
	Rating    int    `json:"rating"`
}

// AddComment submits a review. New reviews start unapproved and appear only
// after moderation.
func (s *Store) AddComment(ctx context.Context, req *AddCommentRequest) error {
	if req.Content == "" {
		s.notifier.Error("Review text is required")
		return fmt.Errorf("catalog: review content is required")
	}
	if req.Rating < 0 || req.Rating > 5 {
		s.notifier.Error("Rating must be between 0 and 5")
		return fmt.Errorf("catalog: rating out of range: %d", req.Rating)
	}

	if err := s.client.Do(ctx, "POST", "/comments/add", nil, req, nil); err != nil {
		s.notifier.Error("Could not submit review")
		return fmt.Errorf("catalog: add comment: %w", err)
	}

	s.notifier.Success("Review submitted for moderation")
	return nil
}

// RatingRequest represents a bare rating submission
type RatingRequest struct {
	ProductID int64 `json:"product_id"`
	Rating    int   `json:"rating"`
}

// AddRating submits a rating without review text.
func (s *Store) AddRating(ctx context.Context, productID int64, rating int) error {
	if rating < 0 || rating > 5 {
		s.notifier.Error("Rating must be between 0 and 5")
		return fmt.Errorf("catalog: rating out of range: %d", rating)
	}

	req := &RatingRequest{ProductID: productID, Rating: rating}
	if err := s.client.Do(ctx, "POST", "/comments/rating", nil, req, nil); err != nil {
		s.notifier.Error("Could not submit rating")
		return fmt.Errorf("catalog: add rating: %w", err)
	}

	s.notifier.Success("Rating submitted")
	return nil
}
