// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package contact

import "time"

// # Definitions

// Message is a contact-form submission from a visitor.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Names

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldBody    = "message"
)
