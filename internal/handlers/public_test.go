package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"noticeboard/internal/models"
)

func TestPublicActivePopup(t *testing.T) {
	t.Run("returns the active popup", func(t *testing.T) {
		env := newTestEnv(t)
		p := env.PopupAPI.seed(models.Popup{
			Kind:        models.PopupKindText,
			Title:       "Open day",
			ContentText: "Saturday 10am.",
			Status:      models.PopupStatusActive,
		})
		env.PopupAPI.seed(models.Popup{
			Kind:   models.PopupKindText,
			Title:  "Hidden",
			Status: models.PopupStatusInactive,
		})
		env.refresh(t)

		rr := httptest.NewRecorder()
		env.Public.ActivePopup(rr, httptest.NewRequest(http.MethodGet, "/api/popups/active", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		if got := rr.Header().Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type: got %q, want %q", got, "application/json")
		}

		resp := decodeEnvelope(t, rr)
		if !resp.Success {
			t.Error("success should be true")
		}
		var got models.Popup
		decodeData(t, resp, &got)
		if got.ID != p.ID {
			t.Errorf("popup: got %s, want %s", got.ID, p.ID)
		}
	})

	t.Run("no active popup yields empty data", func(t *testing.T) {
		env := newTestEnv(t)

		rr := httptest.NewRecorder()
		env.Public.ActivePopup(rr, httptest.NewRequest(http.MethodGet, "/api/popups/active", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		resp := decodeEnvelope(t, rr)
		if !resp.Success {
			t.Error("success should be true")
		}
		if len(resp.Data) != 0 && string(resp.Data) != "null" {
			t.Errorf("data: got %s, want empty", resp.Data)
		}
	})
}

func TestPublicCirculars(t *testing.T) {
	env := newTestEnv(t)
	active := env.CircularAPI.seed(models.Circular{
		Title:   "Published",
		LinkURL: strptr("https://example.org/published"),
		Status:  models.CircularStatusActive,
	})
	env.CircularAPI.seed(models.Circular{
		Title:  "Draft",
		Status: models.CircularStatusDraft,
	})
	env.refresh(t)

	rr := httptest.NewRecorder()
	env.Public.Circulars(rr, httptest.NewRequest(http.MethodGet, "/api/circulars", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}

	var got []models.Circular
	decodeData(t, decodeEnvelope(t, rr), &got)
	if len(got) != 1 || got[0].ID != active.ID {
		t.Errorf("circulars: got %v, want only the active one", got)
	}
}

func TestPublicCircularsRenderBody(t *testing.T) {
	env := newTestEnv(t)
	env.CircularAPI.seed(models.Circular{
		Title:   "Uniform update",
		Body:    "Please read the **updated** policy.",
		LinkURL: strptr("https://example.org/policy"),
		Status:  models.CircularStatusActive,
	})
	env.refresh(t)

	rr := httptest.NewRecorder()
	env.Public.Circulars(rr, httptest.NewRequest(http.MethodGet, "/api/circulars", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}

	var got []struct {
		models.Circular
		BodyHTML string `json:"body_html"`
	}
	decodeData(t, decodeEnvelope(t, rr), &got)
	if len(got) != 1 {
		t.Fatalf("circulars: got %d, want 1", len(got))
	}
	if !strings.Contains(got[0].BodyHTML, "<strong>updated</strong>") {
		t.Errorf("body_html: got %q, want rendered markdown", got[0].BodyHTML)
	}
	if got[0].Body != "Please read the **updated** policy." {
		t.Errorf("body: got %q, want the raw source preserved", got[0].Body)
	}
}
