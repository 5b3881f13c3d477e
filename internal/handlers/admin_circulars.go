// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"noticeboard/internal/lifecycle"
	"noticeboard/internal/models"
)

// circularRequest is the body of circular create and update calls. A link
// and an attachment are mutually exclusive; setting one clears the other,
// and sending both is refused outright.
type circularRequest struct {
	Title         string  `json:"title" validate:"max=200"`
	Body          string  `json:"body" validate:"max=20000"`
	LinkURL       *string `json:"link_url" validate:"omitempty,url"`
	AttachmentURL *string `json:"attachment_url" validate:"omitempty,url"`
	Status        string  `json:"status" validate:"omitempty,oneof=active draft inactive"`
}

func (cr circularRequest) circular(id uuid.UUID) models.Circular {
	return models.Circular{
		ID:            id,
		Title:         cr.Title,
		Body:          cr.Body,
		LinkURL:       cr.LinkURL,
		AttachmentURL: cr.AttachmentURL,
	}
}

func (cr circularRequest) requestedStatus() models.CircularStatus {
	if cr.Status == "" {
		return models.CircularStatusDraft
	}
	return models.CircularStatus(cr.Status)
}

type circularStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active draft inactive"`
}

// writeCircularResult translates a store result into the HTTP response.
// A nil Circular with violations means the requested transition was refused.
func writeCircularResult(w http.ResponseWriter, res *lifecycle.CircularResult, created bool) {
	if res.Circular == nil {
		writeJSON(w, http.StatusUnprocessableEntity, response{
			Success: false,
			Message: "circular is missing content required for activation",
			Data:    res,
		})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeData(w, status, res)
}

// CircularsList returns all circulars, newest first.
func (a *Admin) CircularsList(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, a.circulars.List())
}

// CircularsGet returns a single circular by ID.
func (a *Admin) CircularsGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid circular id")
		return
	}

	c, err := a.circulars.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

// CircularsCreate creates a circular. Incomplete submissions requesting
// active status are saved as drafts with the violations reported back.
func (a *Admin) CircularsCreate(w http.ResponseWriter, r *http.Request) {
	var req circularRequest
	if err := a.decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := a.circulars.Create(r.Context(), req.circular(uuid.Nil), req.requestedStatus())
	if err != nil {
		writeError(w, err)
		return
	}
	writeCircularResult(w, res, true)
}

// CircularsUpdate replaces a circular's content and requested status.
func (a *Admin) CircularsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid circular id")
		return
	}

	var req circularRequest
	if err := a.decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := a.circulars.Update(r.Context(), id, req.circular(id), req.requestedStatus())
	if err != nil {
		writeError(w, err)
		return
	}
	writeCircularResult(w, res, false)
}

// CircularsSetStatus changes only the lifecycle status of a circular.
func (a *Admin) CircularsSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid circular id")
		return
	}

	var req circularStatusRequest
	if err := a.decodeBody(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := a.circulars.SetStatus(r.Context(), id, models.CircularStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCircularResult(w, res, false)
}

// CircularsDelete permanently removes a circular. Only inactive circulars
// can be deleted; everything else must be deactivated first.
func (a *Admin) CircularsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid circular id")
		return
	}

	if err := a.circulars.PermanentDelete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "circular deleted")
}
