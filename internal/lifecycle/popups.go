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
	"time"

	"github.com/google/uuid"

	"noticeboard/internal/models"
)

// DefaultConflictTTL is how long a pending activation conflict stays
// resolvable before the caller must resubmit.
const DefaultConflictTTL = 5 * time.Minute

// Conflict is a pending activation decision: activating the candidate would
// deactivate the popup identified by ExistingID, and nothing is persisted
// until the caller confirms or cancels via the token.
type Conflict struct {
	Token      uuid.UUID    `json:"token"`
	ExistingID uuid.UUID    `json:"existing_id"`
	Candidate  models.Popup `json:"candidate"`

	isCreate  bool
	expiresAt time.Time
}

// PopupResult is the outcome of a popup lifecycle operation. Exactly one of
// Popup or Conflict is set on success paths; Violations accompanies Popup
// when the submission was demoted, and stands alone when a transition into
// active was rejected for missing fields.
type PopupResult struct {
	Popup      *models.Popup `json:"popup,omitempty"`
	Violations []Violation   `json:"violations,omitempty"`
	Conflict   *Conflict     `json:"conflict,omitempty"`
}

// PopupStore owns the in-memory popup collection and funnels every mutation
// through status inference and the exclusivity check. Local state only
// changes after the upstream service confirms a write; nothing is applied
// speculatively, so a failed call leaves both sides where they were.
type PopupStore struct {
	mu          sync.Mutex
	api         PopupAPI
	inval       Invalidator
	items       map[uuid.UUID]models.Popup
	pending     map[uuid.UUID]*Conflict
	conflictTTL time.Duration
}

// NewPopupStore creates a popup store over the given upstream API. inval
// may be nil if no cache is configured.
func NewPopupStore(api PopupAPI, inval Invalidator) *PopupStore {
	return &PopupStore{
		api:         api,
		inval:       inval,
		items:       make(map[uuid.UUID]models.Popup),
		pending:     make(map[uuid.UUID]*Conflict),
		conflictTTL: DefaultConflictTTL,
	}
}

// Refresh replaces the local collection with the upstream one.
func (s *PopupStore) Refresh(ctx context.Context) error {
	popups, err := s.api.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh popups: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[uuid.UUID]models.Popup, len(popups))
	for _, p := range popups {
		s.items[p.ID] = p
	}
	return nil
}

// List returns a snapshot of all popups, newest first.
func (s *PopupStore) List() []models.Popup {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Popup, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Get returns a copy of the popup with the given id.
func (s *PopupStore) Get(id uuid.UUID) (*models.Popup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Active returns the currently active popup, or nil if there is none.
func (s *PopupStore) Active() *models.Popup {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.activeOther(uuid.Nil); p != nil {
		cp := *p
		return &cp
	}
	return nil
}

// Create validates a new popup submission and persists it. When the
// inferred status is active and a different popup already holds it, nothing
// is persisted and the returned result carries a pending Conflict instead.
// Popups are born active or inactive; deleted is only reachable through an
// explicit transition, so any other requested status is clamped to inactive.
func (s *PopupStore) Create(ctx context.Context, candidate models.Popup, requested models.PopupStatus) (*PopupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if requested != models.PopupStatusActive {
		requested = models.PopupStatusInactive
	}

	candidate.ID = uuid.Nil // id is assigned upstream
	status, violations := InferPopupStatus(candidate, requested)
	candidate.Status = status

	if status == models.PopupStatusActive {
		if existing := s.activeOther(uuid.Nil); existing != nil {
			return &PopupResult{Conflict: s.addConflict(existing.ID, candidate, true)}, nil
		}
	}

	persisted, err := s.api.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("create popup: %w", err)
	}

	s.items[persisted.ID] = *persisted
	s.invalidate(ctx)
	return &PopupResult{Popup: persisted, Violations: violations}, nil
}

// Update validates an edited popup submission and persists it. Editing the
// currently active popup does not raise a conflict against itself. A
// soft-deleted popup cannot be changed through Update; it has to be
// restored first.
func (s *PopupStore) Update(ctx context.Context, id uuid.UUID, candidate models.Popup, requested models.PopupStatus) (*PopupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if current.IsDeleted() {
		return nil, ErrDeleted
	}

	candidate.ID = id
	candidate.CreatedAt = current.CreatedAt
	status, violations := InferPopupStatus(candidate, requested)
	if !models.CanPopupTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}
	candidate.Status = status

	if status == models.PopupStatusActive {
		if existing := s.activeOther(id); existing != nil {
			return &PopupResult{Conflict: s.addConflict(existing.ID, candidate, false)}, nil
		}
	}

	persisted, err := s.api.Update(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("update popup: %w", err)
	}

	s.items[persisted.ID] = *persisted
	s.invalidate(ctx)
	return &PopupResult{Popup: persisted, Violations: violations}, nil
}

// SetStatus performs a direct status transition (deactivate, delete,
// restore, activate). Transitions into active re-run field validation and
// the exclusivity check; transitions into non-active states never require
// validation. Same-status transitions are idempotent no-ops.
func (s *PopupStore) SetStatus(ctx context.Context, id uuid.UUID, to models.PopupStatus) (*PopupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !models.CanPopupTransition(current.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}
	if current.Status == to {
		return &PopupResult{Popup: &current}, nil
	}

	if to == models.PopupStatusActive {
		if _, violations := InferPopupStatus(current, models.PopupStatusActive); len(violations) > 0 {
			return &PopupResult{Violations: violations}, nil
		}
		if existing := s.activeOther(id); existing != nil {
			candidate := current
			candidate.Status = models.PopupStatusActive
			return &PopupResult{Conflict: s.addConflict(existing.ID, candidate, false)}, nil
		}
	}

	updated := current
	updated.Status = to
	persisted, err := s.api.Update(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("set popup status: %w", err)
	}

	s.items[persisted.ID] = *persisted
	s.invalidate(ctx)
	return &PopupResult{Popup: persisted}, nil
}

// Confirm resolves a pending conflict by deactivating the incumbent and
// then activating the candidate, strictly in that order. If deactivation
// fails the candidate is never persisted and the conflict stays resolvable
// until it expires. If activation fails after a successful deactivation the
// conflict is dropped; resubmitting will no longer collide.
func (s *PopupStore) Confirm(ctx context.Context, token uuid.UUID) (*PopupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.takePending(token)
	if err != nil {
		return nil, err
	}

	// Step one: deactivate the incumbent, unless it already stepped down.
	if existing, ok := s.items[c.ExistingID]; ok && existing.IsActive() {
		existing.Status = models.PopupStatusInactive
		persisted, err := s.api.Update(ctx, existing)
		if err != nil {
			return nil, fmt.Errorf("deactivate existing popup: %w", err)
		}
		s.items[persisted.ID] = *persisted
	}

	// The deactivation is confirmed, so a second active popup can only
	// appear here if a caller bypassed the store. Refuse to make it worse.
	if other := s.activeOther(c.Candidate.ID); other != nil {
		return nil, fmt.Errorf("%w: popup %s is still active", ErrInvalidTransition, other.ID)
	}

	persisted, err := s.persistCandidate(ctx, c)
	if err != nil {
		delete(s.pending, token)
		return nil, fmt.Errorf("activate popup: %w", err)
	}

	delete(s.pending, token)
	s.items[persisted.ID] = *persisted
	s.invalidate(ctx)
	slog.Info("popup conflict confirmed", "popup", persisted.ID, "deactivated", c.ExistingID)
	return &PopupResult{Popup: persisted}, nil
}

// Cancel resolves a pending conflict by keeping the incumbent active and
// persisting the candidate as inactive, so the edit is never lost to an
// undefined state.
func (s *PopupStore) Cancel(ctx context.Context, token uuid.UUID) (*PopupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.takePending(token)
	if err != nil {
		return nil, err
	}

	c.Candidate.Status = models.PopupStatusInactive
	persisted, err := s.persistCandidate(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("cancel popup activation: %w", err)
	}

	delete(s.pending, token)
	s.items[persisted.ID] = *persisted
	s.invalidate(ctx)
	slog.Info("popup conflict cancelled", "popup", persisted.ID, "kept_active", c.ExistingID)
	return &PopupResult{Popup: persisted}, nil
}

// persistCandidate writes the conflict's candidate through the right
// upstream call depending on whether the suspended operation was a create
// or an update. Caller holds the lock.
func (s *PopupStore) persistCandidate(ctx context.Context, c *Conflict) (*models.Popup, error) {
	if c.isCreate {
		return s.api.Create(ctx, c.Candidate)
	}
	return s.api.Update(ctx, c.Candidate)
}

// takePending looks up a live conflict by token without removing it.
// Caller holds the lock.
func (s *PopupStore) takePending(token uuid.UUID) (*Conflict, error) {
	s.prunePending()
	c, ok := s.pending[token]
	if !ok {
		return nil, ErrUnknownConflict
	}
	return c, nil
}

// addConflict registers a pending decision. Caller holds the lock.
func (s *PopupStore) addConflict(existingID uuid.UUID, candidate models.Popup, isCreate bool) *Conflict {
	s.prunePending()
	c := &Conflict{
		Token:      uuid.New(),
		ExistingID: existingID,
		Candidate:  candidate,
		isCreate:   isCreate,
		expiresAt:  time.Now().Add(s.conflictTTL),
	}
	s.pending[c.Token] = c
	return c
}

// prunePending drops expired conflicts. Caller holds the lock.
func (s *PopupStore) prunePending() {
	now := time.Now()
	for token, c := range s.pending {
		if now.After(c.expiresAt) {
			delete(s.pending, token)
		}
	}
}

// activeOther returns the active popup whose id differs from exclude, or
// nil. Caller holds the lock.
func (s *PopupStore) activeOther(exclude uuid.UUID) *models.Popup {
	for id, p := range s.items {
		if id != exclude && p.IsActive() {
			return &p
		}
	}
	return nil
}

func (s *PopupStore) invalidate(ctx context.Context) {
	if s.inval != nil {
		s.inval.InvalidatePopups(ctx)
	}
}
