// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PopupKind selects which fields a popup must carry to be displayable.
type PopupKind string

const (
	PopupKindText  PopupKind = "text"
	PopupKindImage PopupKind = "image"
	PopupKindVideo PopupKind = "video"
	PopupKindLink  PopupKind = "link"
)

// PopupStatus represents the lifecycle state of a popup. At most one popup
// is active at any time; that rule is enforced by the lifecycle store, not
// here.
type PopupStatus string

const (
	PopupStatusActive   PopupStatus = "active"
	PopupStatusInactive PopupStatus = "inactive"
	PopupStatusDeleted  PopupStatus = "deleted"
)

// Popup is a site-wide promotional overlay managed through the admin area.
// The ID and timestamps are assigned by the upstream content service.
type Popup struct {
	ID          uuid.UUID   `json:"id"`
	Kind        PopupKind   `json:"kind"`
	Title       string      `json:"title"`
	ContentText string      `json:"content_text,omitempty"`
	MediaURL    string      `json:"media_url,omitempty"`
	LinkURL     string      `json:"link_url,omitempty"`
	Status      PopupStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsActive returns true if the popup is in active status.
func (p *Popup) IsActive() bool {
	return p.Status == PopupStatusActive
}

// IsDeleted returns true if the popup has been soft-deleted.
func (p *Popup) IsDeleted() bool {
	return p.Status == PopupStatusDeleted
}

// CanPopupTransition reports whether a popup may move from one status to
// another. Same-status transitions are allowed as no-ops, which keeps
// restore and deactivate idempotent. Validation of mandatory fields for
// transitions into active is a separate concern handled by the lifecycle
// package.
func CanPopupTransition(from, to PopupStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case PopupStatusInactive:
		return to == PopupStatusActive || to == PopupStatusDeleted
	case PopupStatusActive:
		return to == PopupStatusInactive
	case PopupStatusDeleted:
		// Restore is the only way out of deleted.
		return to == PopupStatusInactive
	default:
		return false
	}
}
