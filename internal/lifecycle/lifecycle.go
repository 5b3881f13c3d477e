// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package lifecycle

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"noticeboard/internal/models"
)

// Sentinel errors returned by the lifecycle stores. Persistence failures
// from the upstream service are wrapped, not replaced, so callers can still
// reach the remote error with errors.As.
var (
	// ErrNotFound means the item is not in the local collection.
	ErrNotFound = errors.New("lifecycle: item not found")

	// ErrDeleted means the popup is soft-deleted and must be restored
	// before it can be edited or reactivated.
	ErrDeleted = errors.New("lifecycle: item is deleted; restore it first")

	// ErrInvalidTransition means the requested status change is not in the
	// kind's transition table.
	ErrInvalidTransition = errors.New("lifecycle: status transition not allowed")

	// ErrUnknownConflict means the conflict token is unknown or has
	// expired; the original submission must be repeated.
	ErrUnknownConflict = errors.New("lifecycle: unknown or expired conflict")

	// ErrNotInactive guards permanent deletion: only soft-deleted
	// (inactive) circulars may be removed for good.
	ErrNotInactive = errors.New("lifecycle: permanent delete requires inactive status")
)

// PopupAPI is the slice of the upstream content service the popup store
// consumes. The remote package provides the HTTP implementation; tests use
// in-memory fakes.
type PopupAPI interface {
	List(ctx context.Context) ([]models.Popup, error)
	Create(ctx context.Context, p models.Popup) (*models.Popup, error)
	Update(ctx context.Context, p models.Popup) (*models.Popup, error)
}

// CircularAPI is the slice of the upstream content service the circular
// store consumes. Delete removes the record entirely; soft deletion is a
// status update.
type CircularAPI interface {
	List(ctx context.Context) ([]models.Circular, error)
	Create(ctx context.Context, c models.Circular) (*models.Circular, error)
	Update(ctx context.Context, c models.Circular) (*models.Circular, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Invalidator receives cache invalidation hooks after every confirmed
// mutation. A nil Invalidator disables invalidation.
type Invalidator interface {
	InvalidatePopups(ctx context.Context)
	InvalidateCirculars(ctx context.Context)
}
