// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package registration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gfyalova/granfondo/internal/platform/mailer"
	"github.com/gfyalova/granfondo/internal/platform/sanitize"
	"github.com/gfyalova/granfondo/internal/platform/sec"
	"github.com/gfyalova/granfondo/internal/platform/validate"
	"github.com/gfyalova/granfondo/pkg/slice"
	"github.com/gfyalova/granfondo/pkg/uuid"
)

// confirmationBody is the HTML fragment rendered into the notification
// layout when a rider's application is received.
const confirmationBody = `<p>Başvurunuz alındı. <strong>{{category}}</strong> parkuru için kaydınız inceleme sırasındadır.</p>
<p>Sonuç e-posta ile bildirilecektir.</p>`

// FieldCipher is the encryption capability the service depends on.
type FieldCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(envelope string) (string, error)
}

// Service orchestrates the application form workflow.
type Service struct {
	applicationRepository ApplicationRepository
	cipher                FieldCipher
	notifier              mailer.Notifier
	log                   *slog.Logger
}

// NewService constructs a new registration [Service].
func NewService(
	applicationRepo ApplicationRepository,
	cipher FieldCipher,
	notifier mailer.Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		applicationRepository: applicationRepo,
		cipher:                cipher,
		notifier:              notifier,
		log:                   logger,
	}
}

// # Submission Flow

// SubmitInput is the raw application form payload.
type SubmitInput struct {
	FullName       string
	Email          string
	Phone          string
	NationalID     string
	BirthYear      int
	Category       string
	Club           string
	City           string
	EmergencyName  string
	EmergencyPhone string
}

/*
Submit validates, sanitizes, encrypts, and persists a rider application.

Description: The full payload is validated in one pass (every violated rule
is reported), free-text fields are stripped of markup, and the national ID
is sealed into its encryption envelope before the entity is handed to
storage. A confirmation email is a best-effort side effect.

Parameters:
  - context: context.Context
  - input: SubmitInput

Returns:
  - *Application: Persisted entity with the national ID masked for display
  - error: Validation or storage failures
*/
func (service *Service) Submit(context context.Context, input SubmitInput) (*Application, error) {
	currentYear := time.Now().Year()

	validator := &validate.Validator{}
	validator.Required(FieldFullName, input.FullName).
		FullName(FieldFullName, input.FullName).
		MaxLen(FieldFullName, input.FullName, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPhone, input.Phone).
		Phone(FieldPhone, input.Phone).
		Required(FieldNationalID, input.NationalID).
		NationalID(FieldNationalID, input.NationalID).
		Range(FieldBirthYear, input.BirthYear, currentYear-90, currentYear-18).
		OneOf(FieldCategory, input.Category, string(CategoryShort), string(CategoryLong))

	// Optional fields only validate when present; they default to empty.
	if input.EmergencyPhone != "" {
		validator.Phone(FieldEmergencyPhone, input.EmergencyPhone)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Exactly one plain-text sanitization pass per free-text field.
	fullName := sanitize.PlainText(input.FullName)
	club := sanitize.PlainText(input.Club)
	city := sanitize.PlainText(input.City)
	emergencyName := sanitize.PlainText(input.EmergencyName)

	envelope, err := service.sealNationalID(input.NationalID)
	if err != nil {
		return nil, err
	}

	application := &Application{
		ID:             uuid.New(),
		FullName:       fullName,
		Email:          input.Email,
		Phone:          input.Phone,
		NationalID:     envelope,
		BirthYear:      input.BirthYear,
		Category:       Category(input.Category),
		Club:           club,
		City:           city,
		EmergencyName:  emergencyName,
		EmergencyPhone: input.EmergencyPhone,
		Status:         StatusPending,
	}

	if err := service.applicationRepository.Create(context, application); err != nil {
		return nil, fmt.Errorf("registration_service_create_failed: %w", err)
	}

	// Confirmation email is best-effort; a mail outage must not reject an
	// application that is already persisted.
	html := sanitize.BuildNotification(confirmationBody, map[string]string{
		"name":     fullName,
		"category": input.Category,
		"year":     fmt.Sprintf("%d", currentYear),
	})
	if err := service.notifier.Send(context, input.Email, "GranFondo Yalova — Başvurunuz Alındı", html); err != nil {
		service.log.WarnContext(context, "application_confirmation_mail_failed",
			slog.String("application_id", application.ID),
			slog.String("error", err.Error()),
		)
	}

	// Never echo the raw ID back; the response carries the masked form.
	application.NationalID = sec.MaskNationalID(input.NationalID)

	return application, nil
}

// sealNationalID encrypts a national ID unless it already carries the
// envelope shape. Form submissions can never hit the skip: an envelope
// fails the checksum validation that precedes sealing. The guard exists
// for re-imports of migrated rows, which bypass form validation — the
// shape check is a heuristic, not a guarantee.
func (service *Service) sealNationalID(value string) (string, error) {
	if sec.IsEncryptedFormat(value) {
		return value, nil
	}

	envelope, err := service.cipher.Encrypt(value)
	if err != nil {
		return "", fmt.Errorf("registration_service_encrypt_failed: %w", err)
	}
	return envelope, nil
}

// # Review Flow

/*
List returns a page of applications with masked national IDs.

Description: Each stored envelope is opened and immediately masked; rows
whose envelope cannot be decrypted (tampering, key rotation gone wrong)
get the fixed full mask and an error log rather than failing the page.

Parameters:
  - context: context.Context
  - status: Status ("" for all)
  - limit: int
  - offset: int

Returns:
  - []*Application: Page with display-safe IDs
  - int: Total matching count
  - error: Storage failures
*/
func (service *Service) List(context context.Context, status Status, limit, offset int) ([]*Application, int, error) {
	applications, total, err := service.applicationRepository.List(context, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	masked := slice.Map(applications, func(application *Application) *Application {
		application.NationalID = service.maskStored(context, application.ID, application.NationalID)
		return application
	})

	return masked, total, nil
}

/*
Get returns one application with its national ID masked.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Application: Entity with display-safe ID
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*Application, error) {
	application, err := service.applicationRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	application.NationalID = service.maskStored(context, application.ID, application.NationalID)
	return application, nil
}

/*
RevealNationalID decrypts the full national ID of one application.

Description: Admin-role-only read, used when the organizer must verify an
identity. Decryption fails closed: a bad envelope surfaces a generic error.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - string: Decrypted national ID
  - error: apperr.NotFound, decryption, or storage failures
*/
func (service *Service) RevealNationalID(context context.Context, id string) (string, error) {
	application, err := service.applicationRepository.FindByID(context, id)
	if err != nil {
		return "", err
	}

	// Values written before the encryption migration are stored plaintext.
	if !sec.IsEncryptedFormat(application.NationalID) {
		return application.NationalID, nil
	}

	plaintext, err := service.cipher.Decrypt(application.NationalID)
	if err != nil {
		return "", err
	}

	return plaintext, nil
}

/*
UpdateStatus moves an application to a new review state.

Parameters:
  - context: context.Context
  - id: string
  - status: Status

Returns:
  - error: Validation, apperr.NotFound, or storage failures
*/
func (service *Service) UpdateStatus(context context.Context, id string, status Status) error {
	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, string(status),
		string(StatusPending), string(StatusApproved), string(StatusRejected))
	if err := validator.Err(); err != nil {
		return err
	}

	return service.applicationRepository.UpdateStatus(context, id, status)
}

// maskStored turns a stored national ID column value into its display form.
func (service *Service) maskStored(context context.Context, applicationID, stored string) string {
	if !sec.IsEncryptedFormat(stored) {
		// Pre-migration plaintext row.
		return sec.MaskNationalID(stored)
	}

	plaintext, err := service.cipher.Decrypt(stored)
	if err != nil {
		service.log.ErrorContext(context, "application_national_id_unreadable",
			slog.String("application_id", applicationID),
		)
		return sec.MaskNationalID("")
	}

	return sec.MaskNationalID(plaintext)
}
