// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

/*
Package registration implements the rider application form: the public
submission endpoint and the back-office review workflow.

# Sensitive Data

The national ID is the only sensitive column in the system. It is encrypted
before it ever reaches the database and only decrypted on explicit,
admin-role reads. Everything else on the application is ordinary form data.
*/
package registration

import "time"

// # Categories

// Category is the course an applicant signs up for.
type Category string

const (
	// CategoryShort is the 80 km course.
	CategoryShort Category = "short"

	// CategoryLong is the 130 km course.
	CategoryLong Category = "long"
)

// IsValid reports whether c is one of the two offered courses.
func (c Category) IsValid() bool {
	return c == CategoryShort || c == CategoryLong
}

// # Review Status

// Status is the review state of an application.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid reports whether s is a known review status.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// # Domain Entities

// Application represents one rider's registration.
//
// NationalID holds whatever form is appropriate for the current context:
// the encrypted envelope inside the storage layer, and a masked value on
// every API read except the explicit admin reveal.
type Application struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	NationalID     string    `json:"national_id"`
	BirthYear      int       `json:"birth_year"`
	Category       Category  `json:"category"`
	Club           string    `json:"club,omitempty"`
	City           string    `json:"city,omitempty"`
	EmergencyName  string    `json:"emergency_name,omitempty"`
	EmergencyPhone string    `json:"emergency_phone,omitempty"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldFullName       = "full_name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldNationalID     = "national_id"
	FieldBirthYear      = "birth_year"
	FieldCategory       = "category"
	FieldEmergencyPhone = "emergency_phone"
	FieldStatus         = "status"
	FieldMessage        = "message"
)
