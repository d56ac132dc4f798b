// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package events

import "time"

// # Definitions

// Status is the publication state of an event.
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

// Event is a ride on the public calendar.
//
// Date is stored as a plain `YYYY-MM-DD` string; events are day-granular
// and carry no timezone.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Location    string    `json:"location"`
	DistanceKM  int       `json:"distance_km"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Field Names

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldLocation    = "location"
	FieldDistanceKM  = "distance_km"
	FieldStatus      = "status"
	FieldMessage     = "message"
)
