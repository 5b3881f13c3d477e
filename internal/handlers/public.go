// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"noticeboard/internal/cache"
	"noticeboard/internal/lifecycle"
	"noticeboard/internal/markdown"
	"noticeboard/internal/models"
)

// Public serves the read-only content endpoints consumed by the site
// frontend. Responses are cached in Valkey when a cache is configured;
// the admin stores invalidate those entries on every accepted write.
type Public struct {
	popups    *lifecycle.PopupStore
	circulars *lifecycle.CircularStore
	cache     *cache.ContentCache
}

// NewPublic creates a new Public handler group. contentCache may be nil
// if Valkey is not configured; responses are then built per request.
func NewPublic(popups *lifecycle.PopupStore, circulars *lifecycle.CircularStore, contentCache *cache.ContentCache) *Public {
	return &Public{
		popups:    popups,
		circulars: circulars,
		cache:     contentCache,
	}
}

// ActivePopup returns the single active popup. When no popup is active
// the data field is omitted and the frontend shows nothing.
func (p *Public) ActivePopup(w http.ResponseWriter, r *http.Request) {
	if p.cache != nil {
		if body, ok := p.cache.GetActivePopup(r.Context()); ok {
			writeCached(w, body)
			return
		}
	}

	body, err := json.Marshal(response{Success: true, Data: p.popups.Active()})
	if err != nil {
		slog.Error("marshal active popup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if p.cache != nil {
		p.cache.SetActivePopup(r.Context(), body)
	}
	writeCached(w, body)
}

// circularView is a circular with its body rendered to HTML for display.
type circularView struct {
	models.Circular
	BodyHTML string `json:"body_html,omitempty"`
}

// Circulars returns all currently active circulars. Bodies are authored as
// Markdown; the response carries both the source and the rendered HTML.
func (p *Public) Circulars(w http.ResponseWriter, r *http.Request) {
	if p.cache != nil {
		if body, ok := p.cache.GetCirculars(r.Context()); ok {
			writeCached(w, body)
			return
		}
	}

	active := p.circulars.Active()
	views := make([]circularView, 0, len(active))
	for _, c := range active {
		view := circularView{Circular: c}
		if c.Body != "" {
			html, err := markdown.ToHTML(c.Body)
			if err != nil {
				slog.Warn("render circular body failed", "circular", c.ID, "error", err)
			} else {
				view.BodyHTML = html
			}
		}
		views = append(views, view)
	}

	body, err := json.Marshal(response{Success: true, Data: views})
	if err != nil {
		slog.Error("marshal circulars failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if p.cache != nil {
		p.cache.SetCirculars(r.Context(), body)
	}
	writeCached(w, body)
}

func writeCached(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
