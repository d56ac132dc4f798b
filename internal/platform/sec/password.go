// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

// Package sec isolates the security-sensitive primitives of the platform:
// password hashing, session token signing, and encryption of sensitive
// column values.
//
// # Architecture
//
// Nothing in this package touches storage or transport. It is pure
// infrastructure, injected into the service layer via constructors so it
// can be replaced with fakes in tests.
package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// # Password Hashing

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// bcrypt embeds a random per-call salt, so two calls with the same input
// never produce the same output yet both verify correctly.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// The comparison inside bcrypt is constant-time, so a mismatch leaks no
// information about where the difference occurred.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// # Password Policy

// Character classes required by the admin password policy.
const (
	// MinPasswordLength is the minimum length for newly created admin passwords.
	MinPasswordLength = 12

	passwordUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordLowercase = "abcdefghijklmnopqrstuvwxyz"
	passwordDigits    = "0123456789"
	passwordSpecials  = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// CheckPasswordStrength enforces the admin password creation policy.
//
// It returns nil when the password satisfies every rule, otherwise an error
// describing the first violated rule in user-facing wording.
//
// # Note
//
// Login-time validation intentionally uses a looser length bound (8) to keep
// legacy accounts working. This policy applies only when a password is
// created or changed.
func CheckPasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	hasSpecial := false

	for _, char := range password {
		switch {
		case 'A' <= char && char <= 'Z':
			hasUpper = true
		case 'a' <= char && char <= 'z':
			hasLower = true
		case '0' <= char && char <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, char):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("password must contain at least one uppercase letter")
	case !hasLower:
		return fmt.Errorf("password must contain at least one lowercase letter")
	case !hasDigit:
		return fmt.Errorf("password must contain at least one digit")
	case !hasSpecial:
		return fmt.Errorf("password must contain at least one special character")
	}

	return nil
}

// # Password Generation

// GenerateStrongPassword produces a random password of the given length that
// is guaranteed to satisfy [CheckPasswordStrength].
//
// One character from each required class is placed first, the remainder is
// filled from the combined alphabet, and the result is shuffled so class
// positions are not predictable. All randomness comes from crypto/rand.
func GenerateStrongPassword(length int) (string, error) {
	if length < MinPasswordLength {
		length = MinPasswordLength
	}

	combined := passwordUppercase + passwordLowercase + passwordDigits + passwordSpecials

	password := make([]byte, 0, length)

	// Guarantee one character from every required class.
	for _, class := range []string{passwordUppercase, passwordLowercase, passwordDigits, passwordSpecials} {
		char, err := randomChar(class)
		if err != nil {
			return "", err
		}
		password = append(password, char)
	}

	// Fill the remainder from the combined alphabet.
	for len(password) < length {
		char, err := randomChar(combined)
		if err != nil {
			return "", err
		}
		password = append(password, char)
	}

	// Fisher-Yates shuffle to remove positional predictability.
	for i := len(password) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("sec: failed to shuffle password: %w", err)
		}
		password[i], password[j.Int64()] = password[j.Int64()], password[i]
	}

	return string(password), nil
}

// randomChar picks a uniformly random character from the given alphabet.
func randomChar(alphabet string) (byte, error) {
	index, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, fmt.Errorf("sec: failed to generate random character: %w", err)
	}
	return alphabet[index.Int64()], nil
}
