// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"noticeboard/internal/models"
)

// CircularResult is the outcome of a circular lifecycle operation.
// Circular is nil when missing fields rejected a transition into active;
// Violations then explains what to fix.
type CircularResult struct {
	Circular   *models.Circular `json:"circular,omitempty"`
	Violations []Violation      `json:"violations,omitempty"`
}

// CircularStore owns the in-memory circular collection. Circulars have no
// exclusivity rule; their particularities are the link/attachment mutual
// exclusion and the permanent delete that is only reachable from the
// soft-deleted (inactive) status.
type CircularStore struct {
	mu    sync.Mutex
	api   CircularAPI
	inval Invalidator
	items map[uuid.UUID]models.Circular
}

// NewCircularStore creates a circular store over the given upstream API.
// inval may be nil if no cache is configured.
func NewCircularStore(api CircularAPI, inval Invalidator) *CircularStore {
	return &CircularStore{
		api:   api,
		inval: inval,
		items: make(map[uuid.UUID]models.Circular),
	}
}

// Refresh replaces the local collection with the upstream one.
func (s *CircularStore) Refresh(ctx context.Context) error {
	circulars, err := s.api.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh circulars: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[uuid.UUID]models.Circular, len(circulars))
	for _, c := range circulars {
		s.items[c.ID] = c
	}
	return nil
}

// List returns a snapshot of all circulars, newest first.
func (s *CircularStore) List() []models.Circular {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Circular, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Active returns all circulars in active status, newest first.
func (s *CircularStore) Active() []models.Circular {
	all := s.List()
	out := make([]models.Circular, 0, len(all))
	for _, c := range all {
		if c.IsActive() {
			out = append(out, c)
		}
	}
	return out
}

// Get returns a copy of the circular with the given id.
func (s *CircularStore) Get(id uuid.UUID) (*models.Circular, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

// Create validates a new circular submission and persists it. A submission
// carrying both a link and an attachment is refused before any upstream
// call; persisted records never hold both.
func (s *CircularStore) Create(ctx context.Context, candidate models.Circular, requested models.CircularStatus) (*CircularResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v := exclusiveContentViolation(candidate); v != nil {
		return &CircularResult{Violations: []Violation{*v}}, nil
	}

	candidate.ID = uuid.Nil // id is assigned upstream
	status, violations := InferCircularStatus(candidate, requested)
	candidate.Status = status

	persisted, err := s.api.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("create circular: %w", err)
	}

	s.items[persisted.ID] = *persisted
	s.invalidate(ctx)
	return &CircularResult{Circular: persisted, Violations: violations}, nil
}

// Update validates an edited circular submission and persists it. The
// resulting status must be reachable from the current one; a permanently
// removed circular is simply absent and reports ErrNotFound.
func (s *CircularStore) Update(ctx context.Context, id uuid.UUID, candidate models.Circular, requested models.CircularStatus) (*CircularResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	if v := exclusiveContentViolation(candidate); v != nil {
		return &CircularResult{Violations: []Violation{*v}}, nil
	}

	candidate.ID = id
	candidate.CreatedAt = current.CreatedAt
	status, violations := InferCircularStatus(candidate, requested)
	if !models.CanCircularTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}
	candidate.Status = status

	persisted, err := s.api.Update(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("update circular: %w", err)
	}

	s.items[persisted.ID] = *persisted
	s.invalidate(ctx)
	return &CircularResult{Circular: persisted, Violations: violations}, nil
}

// SetStatus performs a direct status transition (publish, draft, delete,
// restore). Transitions into active re-run field validation; transitions
// into draft or inactive never require it. Same-status transitions are
// idempotent no-ops.
func (s *CircularStore) SetStatus(ctx context.Context, id uuid.UUID, to models.CircularStatus) (*CircularResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !models.CanCircularTransition(current.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}
	if current.Status == to {
		return &CircularResult{Circular: &current}, nil
	}

	if to == models.CircularStatusActive {
		if _, violations := InferCircularStatus(current, models.CircularStatusActive); len(violations) > 0 {
			return &CircularResult{Violations: violations}, nil
		}
	}

	updated := current
	updated.Status = to
	persisted, err := s.api.Update(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("set circular status: %w", err)
	}

	s.items[persisted.ID] = *persisted
	s.invalidate(ctx)
	return &CircularResult{Circular: persisted}, nil
}

// PermanentDelete removes a soft-deleted circular from the upstream service
// for good. Only inactive circulars qualify; everything else must be soft
// deleted first. The caller is expected to have confirmed the action.
func (s *CircularStore) PermanentDelete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	if current.Status != models.CircularStatusInactive {
		return fmt.Errorf("%w: status is %s", ErrNotInactive, current.Status)
	}

	if err := s.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("permanently delete circular: %w", err)
	}

	delete(s.items, id)
	s.invalidate(ctx)
	slog.Info("circular permanently deleted", "circular", id)
	return nil
}

// exclusiveContentViolation reports a submission carrying both a link and
// an attachment. The admin form never produces one, so this is a defensive
// check on the engine boundary.
func exclusiveContentViolation(c models.Circular) *Violation {
	if c.LinkURL != nil && *c.LinkURL != "" && c.AttachmentURL != nil && *c.AttachmentURL != "" {
		return &Violation{Field: "content", Message: "Link and attachment are mutually exclusive; choose one."}
	}
	return nil
}

func (s *CircularStore) invalidate(ctx context.Context) {
	if s.inval != nil {
		s.inval.InvalidateCirculars(ctx)
	}
}
