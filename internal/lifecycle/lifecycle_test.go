// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// lifecycle_test.go provides in-memory fakes of the upstream content
// service shared by the popup and circular store tests.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"noticeboard/internal/models"
)

// errUpstream stands in for any persistence failure in tests.
var errUpstream = errors.New("upstream unavailable")

// fakePopupAPI is an in-memory PopupAPI that records calls and can be told
// to fail specific operations.
type fakePopupAPI struct {
	records map[uuid.UUID]models.Popup

	createErr    error
	updateErrFor map[uuid.UUID]error

	creates int
	updates []uuid.UUID // ids in the order Update was called
}

func newFakePopupAPI() *fakePopupAPI {
	return &fakePopupAPI{
		records:      make(map[uuid.UUID]models.Popup),
		updateErrFor: make(map[uuid.UUID]error),
	}
}

func (f *fakePopupAPI) List(_ context.Context) ([]models.Popup, error) {
	out := make([]models.Popup, 0, len(f.records))
	for _, p := range f.records {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePopupAPI) Create(_ context.Context, p models.Popup) (*models.Popup, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.creates++
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.records[p.ID] = p
	return &p, nil
}

func (f *fakePopupAPI) Update(_ context.Context, p models.Popup) (*models.Popup, error) {
	if err := f.updateErrFor[p.ID]; err != nil {
		return nil, err
	}
	if _, ok := f.records[p.ID]; !ok {
		return nil, fmt.Errorf("popup %s not found upstream", p.ID)
	}
	f.updates = append(f.updates, p.ID)
	p.UpdatedAt = time.Now()
	f.records[p.ID] = p
	return &p, nil
}

// seed inserts a record directly, bypassing the store.
func (f *fakePopupAPI) seed(p models.Popup) models.Popup {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	f.records[p.ID] = p
	return p
}

// fakeCircularAPI is an in-memory CircularAPI mirroring fakePopupAPI.
type fakeCircularAPI struct {
	records map[uuid.UUID]models.Circular

	createErr error
	deleteErr error

	deletes []uuid.UUID
}

func newFakeCircularAPI() *fakeCircularAPI {
	return &fakeCircularAPI{records: make(map[uuid.UUID]models.Circular)}
}

func (f *fakeCircularAPI) List(_ context.Context) ([]models.Circular, error) {
	out := make([]models.Circular, 0, len(f.records))
	for _, c := range f.records {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCircularAPI) Create(_ context.Context, c models.Circular) (*models.Circular, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.records[c.ID] = c
	return &c, nil
}

func (f *fakeCircularAPI) Update(_ context.Context, c models.Circular) (*models.Circular, error) {
	if _, ok := f.records[c.ID]; !ok {
		return nil, fmt.Errorf("circular %s not found upstream", c.ID)
	}
	c.UpdatedAt = time.Now()
	f.records[c.ID] = c
	return &c, nil
}

func (f *fakeCircularAPI) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.records[id]; !ok {
		return fmt.Errorf("circular %s not found upstream", id)
	}
	delete(f.records, id)
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakeCircularAPI) seed(c models.Circular) models.Circular {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	f.records[c.ID] = c
	return c
}

// newTestPopupStore builds a store over a fresh fake and syncs it.
func newTestPopupStore(t *testing.T, api *fakePopupAPI) *PopupStore {
	t.Helper()
	s := NewPopupStore(api, nil)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return s
}

// newTestCircularStore builds a store over a fresh fake and syncs it.
func newTestCircularStore(t *testing.T, api *fakeCircularAPI) *CircularStore {
	t.Helper()
	s := NewCircularStore(api, nil)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return s
}

// activeCount counts active popups in the store's collection.
func activeCount(s *PopupStore) int {
	n := 0
	for _, p := range s.List() {
		if p.IsActive() {
			n++
		}
	}
	return n
}
