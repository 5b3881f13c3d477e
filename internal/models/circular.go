// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CircularStatus represents the lifecycle state of a circular. Unlike
// popups, circulars have no terminal deleted status: inactive is the
// soft-deleted state and is reversible until a permanent delete removes
// the record from the upstream service entirely.
type CircularStatus string

const (
	CircularStatusActive   CircularStatus = "active"
	CircularStatusDraft    CircularStatus = "draft"
	CircularStatusInactive CircularStatus = "inactive"
)

// Circular is an announcement with either an external link or an uploaded
// attachment. Link and attachment are mutually exclusive: setting one
// always clears the other, and persisted records never carry both.
type Circular struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Body          string         `json:"body,omitempty"`
	LinkURL       *string        `json:"link_url,omitempty"`
	AttachmentURL *string        `json:"attachment_url,omitempty"`
	Status        CircularStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// IsActive returns true if the circular is in active status.
func (c *Circular) IsActive() bool {
	return c.Status == CircularStatusActive
}

// HasContent reports whether the circular carries a link or an attachment.
// A circular needs one of the two to be eligible for active status.
func (c *Circular) HasContent() bool {
	return (c.LinkURL != nil && *c.LinkURL != "") ||
		(c.AttachmentURL != nil && *c.AttachmentURL != "")
}

// SetLink assigns the link URL and clears any attachment.
func (c *Circular) SetLink(url string) {
	c.LinkURL = &url
	c.AttachmentURL = nil
}

// SetAttachment assigns the attachment URL and clears any link.
func (c *Circular) SetAttachment(url string) {
	c.AttachmentURL = &url
	c.LinkURL = nil
}

// ClearContent removes both the link and the attachment.
func (c *Circular) ClearContent() {
	c.LinkURL = nil
	c.AttachmentURL = nil
}

// CanCircularTransition reports whether a circular may move from one status
// to another. Any status may drop to inactive (soft delete); inactive may
// be restored to draft or active. Same-status transitions are allowed as
// no-ops. Permanent deletion is not a status and is guarded separately by
// the lifecycle store.
func CanCircularTransition(from, to CircularStatus) bool {
	if from == to {
		return true
	}
	if to == CircularStatusInactive {
		return true
	}
	switch from {
	case CircularStatusDraft:
		return to == CircularStatusActive
	case CircularStatusActive:
		return to == CircularStatusDraft
	case CircularStatusInactive:
		return to == CircularStatusActive || to == CircularStatusDraft
	default:
		return false
	}
}
