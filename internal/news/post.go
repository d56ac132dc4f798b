// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package news

import "time"

// # Definitions

// Status is the publication state of a news post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// IsValid reports whether the status is one of the known states.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Post is a news article on the site.
//
// Body holds sanitized HTML. Sanitization happens once, in the service at
// write time; readers serve the stored value untouched.
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Body        string     `json:"body"`
	Status      Status     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// # Field Names

const (
	FieldTitle   = "title"
	FieldSlug    = "slug"
	FieldSummary = "summary"
	FieldBody    = "body"
	FieldStatus  = "status"
	FieldMessage = "message"
)
