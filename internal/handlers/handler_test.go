// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests: in-memory fakes of the upstream content service and helpers for
// building requests and decoding response envelopes.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"noticeboard/internal/lifecycle"
	"noticeboard/internal/models"
	"noticeboard/internal/remote"
)

// remoteFailure builds the error the HTTP client reports when the upstream
// service answers with a server error.
func remoteFailure() error {
	return &remote.RemoteError{StatusCode: http.StatusServiceUnavailable, Message: "maintenance"}
}

// fakePopupAPI is an in-memory stand-in for the upstream popup endpoints.
type fakePopupAPI struct {
	records map[uuid.UUID]models.Popup
	failAll error
}

func newFakePopupAPI() *fakePopupAPI {
	return &fakePopupAPI{records: make(map[uuid.UUID]models.Popup)}
}

func (f *fakePopupAPI) List(_ context.Context) ([]models.Popup, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := make([]models.Popup, 0, len(f.records))
	for _, p := range f.records {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePopupAPI) Create(_ context.Context, p models.Popup) (*models.Popup, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.records[p.ID] = p
	return &p, nil
}

func (f *fakePopupAPI) Update(_ context.Context, p models.Popup) (*models.Popup, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	if _, ok := f.records[p.ID]; !ok {
		return nil, fmt.Errorf("popup %s not found upstream", p.ID)
	}
	p.UpdatedAt = time.Now()
	f.records[p.ID] = p
	return &p, nil
}

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

// fakeCircularAPI mirrors fakePopupAPI for circular endpoints.
type fakeCircularAPI struct {
	records map[uuid.UUID]models.Circular
	failAll error
}

func newFakeCircularAPI() *fakeCircularAPI {
	return &fakeCircularAPI{records: make(map[uuid.UUID]models.Circular)}
}

func (f *fakeCircularAPI) List(_ context.Context) ([]models.Circular, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := make([]models.Circular, 0, len(f.records))
	for _, c := range f.records {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCircularAPI) Create(_ context.Context, c models.Circular) (*models.Circular, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.records[c.ID] = c
	return &c, nil
}

func (f *fakeCircularAPI) Update(_ context.Context, c models.Circular) (*models.Circular, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	if _, ok := f.records[c.ID]; !ok {
		return nil, fmt.Errorf("circular %s not found upstream", c.ID)
	}
	c.UpdatedAt = time.Now()
	f.records[c.ID] = c
	return &c, nil
}

func (f *fakeCircularAPI) Delete(_ context.Context, id uuid.UUID) error {
	if f.failAll != nil {
		return f.failAll
	}
	if _, ok := f.records[id]; !ok {
		return fmt.Errorf("circular %s not found upstream", id)
	}
	delete(f.records, id)
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

// testEnv holds the dependencies for handler tests.
type testEnv struct {
	PopupAPI    *fakePopupAPI
	CircularAPI *fakeCircularAPI
	Popups      *lifecycle.PopupStore
	Circulars   *lifecycle.CircularStore
	Admin       *Admin
	Public      *Public
}

// newTestEnv creates a handler test environment over empty fakes.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	popupAPI := newFakePopupAPI()
	circularAPI := newFakeCircularAPI()
	popups := lifecycle.NewPopupStore(popupAPI, nil)
	circulars := lifecycle.NewCircularStore(circularAPI, nil)

	if err := popups.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh popups: %v", err)
	}
	if err := circulars.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh circulars: %v", err)
	}

	return &testEnv{
		PopupAPI:    popupAPI,
		CircularAPI: circularAPI,
		Popups:      popups,
		Circulars:   circulars,
		Admin:       NewAdmin(popups, circulars),
		Public:      NewPublic(popups, circulars, nil),
	}
}

// refresh re-syncs both stores from the fakes after direct seeding.
func (e *testEnv) refresh(t *testing.T) {
	t.Helper()
	if err := e.Popups.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh popups: %v", err)
	}
	if err := e.Circulars.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh circulars: %v", err)
	}
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// envelope mirrors the response wrapper with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// decodeEnvelope parses a recorded response body.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, rr.Body.String())
	}
	return env
}

// decodeData parses the envelope's data field into out.
func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v (data: %s)", err, env.Data)
	}
}
