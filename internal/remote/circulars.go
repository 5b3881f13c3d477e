package remote

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"noticeboard/internal/models"
)

// CircularService exposes the circular CRUD endpoints of the content
// service. It satisfies the lifecycle package's CircularAPI interface.
type CircularService struct {
	c *Client
}

// NewCircularService creates a circular service over the given client.
func NewCircularService(c *Client) *CircularService {
	return &CircularService{c: c}
}

// List fetches all circulars regardless of status.
func (s *CircularService) List(ctx context.Context) ([]models.Circular, error) {
	var out []models.Circular
	if err := s.c.do(ctx, http.MethodGet, "/circulars", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create persists a new circular and returns the record with its assigned
// id and timestamps.
func (s *CircularService) Create(ctx context.Context, c models.Circular) (*models.Circular, error) {
	var out models.Circular
	if err := s.c.do(ctx, http.MethodPost, "/circulars", c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update persists changes to an existing circular, including status changes
// used for soft deletion and restore.
func (s *CircularService) Update(ctx context.Context, c models.Circular) (*models.Circular, error) {
	var out models.Circular
	if err := s.c.do(ctx, http.MethodPut, "/circulars/"+c.ID.String(), c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a circular from the content service permanently. There is
// no data in the response beyond the envelope.
func (s *CircularService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.c.do(ctx, http.MethodDelete, "/circulars/"+id.String(), nil, nil)
}
