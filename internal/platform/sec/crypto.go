// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package sec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// # Field Encryption
//
// National ID numbers are encrypted before they ever reach the database and
// decrypted only on authorized admin reads. The storage format is a
// colon-delimited hex envelope: "<ivHex>:<authTagHex>:<ciphertextHex>".

const (
	// gcmNonceSize is the AES-GCM initialization vector length in bytes.
	gcmNonceSize = 12
	// gcmTagSize is the GCM authentication tag length in bytes.
	gcmTagSize = 16
	// encryptionKeySize selects AES-256.
	encryptionKeySize = 32

	// kdfSalt is the static application-level salt for key derivation.
	// The salt is not secret; it only domain-separates this key from any
	// other use of the same passphrase.
	kdfSalt = "gfyalova-field-encryption-v1"

	// scrypt work parameters, tuned for a one-time derivation at startup.
	scryptN = 16384
	scryptR = 8
	scryptP = 1

	// fallbackSecret is used ONLY when DATA_ENCRYPTION_KEY is unset.
	// This path exists for local development and is logged as a loud
	// warning at startup. A production deployment must never rely on it.
	fallbackSecret = "granfondo-insecure-dev-key"
)

// ErrDecryptionFailed is the only error surfaced to callers when an envelope
// cannot be decrypted. The underlying cipher error is logged server-side and
// never leaks: tampering and wrong-key failures must look identical.
var ErrDecryptionFailed = errors.New("sec: decryption failed")

// ErrInvalidEnvelope is returned when a value does not have the expected
// three-segment envelope structure.
var ErrInvalidEnvelope = errors.New("sec: invalid encrypted envelope format")

// envelopeRegex matches the structural shape of an encrypted envelope:
// three colon-separated, non-empty hex groups.
var envelopeRegex = regexp.MustCompile(`^[0-9a-fA-F]+:[0-9a-fA-F]+:[0-9a-fA-F]+$`)

// FieldCipher encrypts and decrypts sensitive field values with AES-256-GCM.
//
// # Key Lifecycle
//
// The key is derived once at construction via scrypt and held in memory for
// the process lifetime. It is never logged and never transmitted.
type FieldCipher struct {
	aead cipher.AEAD
	log  *slog.Logger
}

// NewFieldCipher derives the field-encryption key from the server secret and
// returns a ready-to-use cipher.
//
// When secret is empty the cipher still functions using a fixed fallback
// passphrase, but this is explicitly insecure: the condition is logged as a
// warning and must be treated as a misconfiguration in production.
func NewFieldCipher(secret string, logger *slog.Logger) (*FieldCipher, error) {
	if secret == "" {
		logger.Warn("data_encryption_key_missing",
			slog.String("detail", "falling back to built-in development key; encrypted fields are NOT secure"),
		)
		secret = fallbackSecret
	}

	key, err := scrypt.Key([]byte(secret), []byte(kdfSalt), scryptN, scryptR, scryptP, encryptionKeySize)
	if err != nil {
		return nil, fmt.Errorf("sec: key derivation failed: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to initialize cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to initialize GCM: %w", err)
	}

	return &FieldCipher{aead: aead, log: logger}, nil
}

// Encrypt seals a plaintext value into the hex envelope format.
//
// A fresh random IV is generated per call, so encrypting the same value
// twice yields two different envelopes.
func (fc *FieldCipher) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, gcmNonceSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("sec: failed to generate IV: %w", err)
	}

	// Seal appends the auth tag to the ciphertext; split it back out so the
	// envelope carries the tag as its own segment.
	sealed := fc.aead.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-gcmTagSize]
	authTag := sealed[len(sealed)-gcmTagSize:]

	return fmt.Sprintf("%s:%s:%s",
		hex.EncodeToString(iv),
		hex.EncodeToString(authTag),
		hex.EncodeToString(ciphertext),
	), nil
}

// Decrypt opens a hex envelope and returns the original plaintext.
//
// It fails closed: any tag mismatch (tampering, wrong key, truncation)
// returns [ErrDecryptionFailed] and never partial plaintext.
func (fc *FieldCipher) Decrypt(envelope string) (string, error) {
	segments := strings.Split(envelope, ":")
	if len(segments) != 3 {
		return "", ErrInvalidEnvelope
	}

	iv, ivErr := hex.DecodeString(segments[0])
	authTag, tagErr := hex.DecodeString(segments[1])
	ciphertext, ctErr := hex.DecodeString(segments[2])
	if ivErr != nil || tagErr != nil || ctErr != nil {
		return "", ErrInvalidEnvelope
	}
	if len(iv) != gcmNonceSize || len(authTag) != gcmTagSize {
		return "", ErrInvalidEnvelope
	}

	plaintext, err := fc.aead.Open(nil, iv, append(ciphertext, authTag...), nil)
	if err != nil {
		// Log the cipher detail server-side; callers only see the generic error.
		fc.log.Error("field_decryption_failed", slog.String("error", err.Error()))
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// IsEncryptedFormat reports whether a value structurally looks like an
// encrypted envelope.
//
// This is a heuristic used to avoid double-encrypting already-migrated
// values — three colon-separated hex groups — NOT a security boundary. A
// plaintext value could in principle match this shape.
func IsEncryptedFormat(value string) bool {
	return envelopeRegex.MatchString(value)
}

// # Display Masking

// maskedIDLength is the width of the fixed mask returned for short inputs.
const maskedIDLength = 11

// MaskNationalID replaces all but the last 4 characters of an ID with '*'.
//
// Inputs shorter than 4 characters return a fixed full mask so that nothing
// of the original value is echoed back.
func MaskNationalID(id string) string {
	if len(id) < 4 {
		return strings.Repeat("*", maskedIDLength)
	}
	return strings.Repeat("*", len(id)-4) + id[len(id)-4:]
}
