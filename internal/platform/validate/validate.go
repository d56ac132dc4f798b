// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer — never in handlers or
// storage. It ensures that business logic only operates on semantically valid
// data, and that a failed payload reports EVERY violated rule in one pass so
// the frontend can display all problems at once.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gfyalova/granfondo/internal/platform/apperr"
	"github.com/gfyalova/granfondo/internal/platform/sec"
)

var (
	// slugRegex matches slug format: lowercase letters, digits, hyphens.
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// usernameRegex matches admin usernames: alphanumeric and underscore only.
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	// dateRegex matches ISO calendar dates (YYYY-MM-DD).
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// phoneRegex matches Turkish mobile numbers with an optional country prefix.
	phoneRegex = regexp.MustCompile(`^(\+90|0)?5\d{9}$`)
	// fullNameRegex matches letters and spaces, including Turkish letters.
	fullNameRegex = regexp.MustCompile(`^[a-zA-ZçÇğĞıİöÖşŞüÜ\s]+$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Slug fails if the value is not a valid URL slug.
//
// # Format
//
// Slugs must consist only of lowercase letters, digits, and hyphens,
// with no leading or trailing hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	if !slugRegex.MatchString(value) {
		v.add(field, "Must be a valid URL slug (lowercase letters, digits, hyphens only)")
	}
	return v
}

// Username fails if the value is not a valid admin username
// (3-50 characters, alphanumeric and underscore only).
func (v *Validator) Username(field, value string) *Validator {
	if !usernameRegex.MatchString(value) {
		v.add(field, "Must be 3-50 characters: letters, digits, underscore only")
	}
	return v
}

// Date fails if the value is not an ISO YYYY-MM-DD calendar date.
func (v *Validator) Date(field, value string) *Validator {
	if !dateRegex.MatchString(value) {
		v.add(field, "Must be a date in YYYY-MM-DD format")
	}
	return v
}

// Phone fails if the value is not a Turkish mobile number
// (optional +90/0 prefix followed by 5XXXXXXXXX).
func (v *Validator) Phone(field, value string) *Validator {
	if !phoneRegex.MatchString(strings.ReplaceAll(value, " ", "")) {
		v.add(field, "Must be a valid Turkish mobile number")
	}
	return v
}

// FullName fails if the value contains anything other than letters and
// spaces. Turkish accented letters are allowed.
func (v *Validator) FullName(field, value string) *Validator {
	if !fullNameRegex.MatchString(value) {
		v.add(field, "Must contain only letters and spaces")
	}
	return v
}

// NationalID fails if the value is not a checksum-valid Turkish national
// identity number.
func (v *Validator) NationalID(field, value string) *Validator {
	if !sec.IsValidNationalID(value) {
		v.add(field, "Must be a valid national identity number")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("distance_km", distance < 1, "Must be a positive distance")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
