package remote

import (
	"context"
	"net/http"

	"noticeboard/internal/models"
)

// PopupService exposes the popup CRUD endpoints of the content service.
// It satisfies the lifecycle package's PopupAPI interface.
type PopupService struct {
	c *Client
}

// NewPopupService creates a popup service over the given client.
func NewPopupService(c *Client) *PopupService {
	return &PopupService{c: c}
}

// List fetches all popups, including inactive and soft-deleted ones.
func (s *PopupService) List(ctx context.Context) ([]models.Popup, error) {
	var out []models.Popup
	if err := s.c.do(ctx, http.MethodGet, "/popups", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create persists a new popup and returns the record with its assigned id
// and timestamps.
func (s *PopupService) Create(ctx context.Context, p models.Popup) (*models.Popup, error) {
	var out models.Popup
	if err := s.c.do(ctx, http.MethodPost, "/popups", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update persists changes to an existing popup, including status changes.
func (s *PopupService) Update(ctx context.Context, p models.Popup) (*models.Popup, error) {
	var out models.Popup
	if err := s.c.do(ctx, http.MethodPut, "/popups/"+p.ID.String(), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
