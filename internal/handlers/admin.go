// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the noticeboard server.
// Handlers are grouped by concern (admin, public) and receive their
// dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"noticeboard/internal/lifecycle"
	"noticeboard/internal/models"
)

// Admin groups the management API handlers and their dependencies.
type Admin struct {
	popups    *lifecycle.PopupStore
	circulars *lifecycle.CircularStore
	validate  *validator.Validate
}

// NewAdmin creates a new Admin handler group over the given stores.
func NewAdmin(popups *lifecycle.PopupStore, circulars *lifecycle.CircularStore) *Admin {
	return &Admin{
		popups:    popups,
		circulars: circulars,
		validate:  validator.New(),
	}
}

// popupRequest is the body of popup create and update calls. The requested
// status is advisory: the store may demote it based on content completeness.
type popupRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=text image video link"`
	Title       string `json:"title" validate:"max=200"`
	ContentText string `json:"content_text" validate:"max=10000"`
	MediaURL    string `json:"media_url" validate:"omitempty,url"`
	LinkURL     string `json:"link_url" validate:"omitempty,url"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (pr popupRequest) popup(id uuid.UUID) models.Popup {
	return models.Popup{
		ID:          id,
		Kind:        models.PopupKind(pr.Kind),
		Title:       pr.Title,
		ContentText: pr.ContentText,
		MediaURL:    pr.MediaURL,
		LinkURL:     pr.LinkURL,
	}
}

func (pr popupRequest) requestedStatus() models.PopupStatus {
	if pr.Status == "" {
		return models.PopupStatusInactive
	}
	return models.PopupStatus(pr.Status)
}

// popupStatusRequest is the body of popup status change calls. Deleting and
// restoring popups go through here as well.
type popupStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive deleted"`
}

// parseID extracts and parses a UUID URL parameter.
func parseID(r *http.Request, param string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, param))
}

// decodeBody decodes the JSON request body into dst and validates it.
func (a *Admin) decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validate.Struct(dst)
}

// writePopupResult translates a store result into the right HTTP response:
// 409 when activation needs confirmation, 422 when a transition into active
// was refused for missing content, 200/201 otherwise.
func writePopupResult(w http.ResponseWriter, res *lifecycle.PopupResult, created bool) {
	switch {
	case res.Conflict != nil:
		writeJSON(w, http.StatusConflict, response{
			Success: false,
			Message: "another popup is already active",
			Data:    res,
		})
	case res.Popup == nil:
		writeJSON(w, http.StatusUnprocessableEntity, response{
			Success: false,
			Message: "popup is missing content required for activation",
			Data:    res,
		})
	default:
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeData(w, status, res)
	}
}

// PopupsList returns all popups, newest first, deleted ones included.
func (a *Admin) PopupsList(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, a.popups.List())
}

// PopupsGet returns a single popup by ID.
func (a *Admin) PopupsGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid popup id")
		return
	}

	p, err := a.popups.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// PopupsCreate creates a popup. Requesting active status may answer with a
// conflict that must be confirmed or cancelled before anything is persisted.
func (a *Admin) PopupsCreate(w http.ResponseWriter, r *http.Request) {
	var req popupRequest
	if err := a.decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := a.popups.Create(r.Context(), req.popup(uuid.Nil), req.requestedStatus())
	if err != nil {
		writeError(w, err)
		return
	}
	writePopupResult(w, res, true)
}

// PopupsUpdate replaces a popup's content and requested status.
func (a *Admin) PopupsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid popup id")
		return
	}

	var req popupRequest
	if err := a.decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := a.popups.Update(r.Context(), id, req.popup(id), req.requestedStatus())
	if err != nil {
		writeError(w, err)
		return
	}
	writePopupResult(w, res, false)
}

// PopupsSetStatus changes only the lifecycle status of a popup. Setting
// "deleted" soft-deletes, setting "inactive" on a deleted popup restores it.
func (a *Admin) PopupsSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid popup id")
		return
	}

	var req popupStatusRequest
	if err := a.decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := a.popups.SetStatus(r.Context(), id, models.PopupStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writePopupResult(w, res, false)
}

// ConflictConfirm resolves a pending activation conflict: the currently
// active popup is deactivated, then the candidate is persisted as active.
func (a *Admin) ConflictConfirm(w http.ResponseWriter, r *http.Request) {
	token, err := parseID(r, "token")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid conflict token")
		return
	}

	res, err := a.popups.Confirm(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writePopupResult(w, res, false)
}

// ConflictCancel resolves a pending activation conflict by keeping the
// current active popup and persisting the candidate as inactive.
func (a *Admin) ConflictCancel(w http.ResponseWriter, r *http.Request) {
	token, err := parseID(r, "token")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid conflict token")
		return
	}

	res, err := a.popups.Cancel(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writePopupResult(w, res, false)
}
