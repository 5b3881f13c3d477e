// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package lifecycle implements the content-item lifecycle engine: status
// inference from field completeness, the single-active-popup exclusivity
// rule with its confirm/cancel conflict protocol, and the stores that keep
// the in-memory collections reconciled with the upstream content service.
package lifecycle

import (
	"strings"

	"noticeboard/internal/models"
)

// Violation describes a single mandatory field that is missing or invalid.
// Violations are expected control flow, not errors: a submission with
// violations is demoted to its kind's not-ready status, never rejected
// outright.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InferPopupStatus decides the status a popup submission actually gets.
// A request for active is honored only when the kind's mandatory fields are
// all present; otherwise the status is overridden to inactive and the
// missing fields are reported. Requests for non-active statuses pass
// through untouched. Pure function, no side effects.
func InferPopupStatus(p models.Popup, requested models.PopupStatus) (models.PopupStatus, []Violation) {
	if requested != models.PopupStatusActive {
		return requested, nil
	}

	var violations []Violation
	missing := func(field, message string) {
		violations = append(violations, Violation{Field: field, Message: message})
	}

	title := strings.TrimSpace(p.Title)

	switch p.Kind {
	case models.PopupKindText:
		if title == "" {
			missing("title", "Title is required.")
		}
		if strings.TrimSpace(p.ContentText) == "" {
			missing("content_text", "Body text is required.")
		}
	case models.PopupKindImage, models.PopupKindVideo:
		if title == "" {
			missing("title", "Title is required.")
		}
		if strings.TrimSpace(p.MediaURL) == "" {
			missing("media_url", "Media URL is required.")
		}
	case models.PopupKindLink:
		if strings.TrimSpace(p.LinkURL) == "" {
			missing("link_url", "Destination URL is required.")
		}
	default:
		missing("kind", "Unknown popup kind.")
	}

	if len(violations) > 0 {
		return models.PopupStatusInactive, violations
	}
	return models.PopupStatusActive, nil
}

// InferCircularStatus decides the status a circular submission actually
// gets. Active requires a title and either a link or an attachment;
// incomplete submissions are demoted to draft with the missing fields
// reported. Pure function, no side effects.
func InferCircularStatus(c models.Circular, requested models.CircularStatus) (models.CircularStatus, []Violation) {
	if requested != models.CircularStatusActive {
		return requested, nil
	}

	var violations []Violation
	if strings.TrimSpace(c.Title) == "" {
		violations = append(violations, Violation{Field: "title", Message: "Title is required."})
	}
	if !c.HasContent() {
		violations = append(violations, Violation{Field: "content", Message: "A link or an attachment is required."})
	}

	if len(violations) > 0 {
		return models.CircularStatusDraft, violations
	}
	return models.CircularStatusActive, nil
}
