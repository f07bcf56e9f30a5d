package blog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// GeneralField keys validation messages that do not belong to a single field.
const GeneralField = "general"

// ValidationError carries per-field messages for rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field, keeping the first message per field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil returns e when at least one message was added.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func NewValidationError(field, msg string) *ValidationError {
	ve := &ValidationError{}
	ve.Add(field, msg)
	return ve
}

// IdentityError is a single failure reported by the identity store.
type IdentityError struct {
	Code        string
	Description string
}

// Identity error codes.
const (
	CodeDuplicateUserName     = "DuplicateUserName"
	CodeDuplicateEmail        = "DuplicateEmail"
	CodeDuplicateRoleName     = "DuplicateRoleName"
	CodeInvalidEmail          = "InvalidEmail"
	CodeRoleNotFound          = "RoleNotFound"
	CodePasswordTooShort      = "PasswordTooShort"
	CodePasswordRequiresDigit = "PasswordRequiresDigit"
	CodePasswordRequiresLower = "PasswordRequiresLower"
	CodePasswordRequiresUpper = "PasswordRequiresUpper"
)

type IdentityErrors []IdentityError

func (e IdentityErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, ie := range e {
		parts = append(parts, ie.Description)
	}
	return "identity: " + strings.Join(parts, " ")
}

// Validation maps identity failures onto the fields they concern.
// Messages for the same field are joined.
func (e IdentityErrors) Validation() *ValidationError {
	ve := &ValidationError{Fields: make(map[string]string)}
	for _, ie := range e {
		field := identityField(ie.Code)
		if prev, ok := ve.Fields[field]; ok {
			ve.Fields[field] = prev + " " + ie.Description
			continue
		}
		ve.Fields[field] = ie.Description
	}
	return ve
}

func identityField(code string) string {
	switch {
	case code == CodeDuplicateUserName:
		return "username"
	case code == CodeDuplicateEmail, code == CodeInvalidEmail:
		return "email"
	case code == CodeDuplicateRoleName:
		return "name"
	case strings.HasPrefix(code, "Password"):
		return "password"
	default:
		return GeneralField
	}
}

// identityFailure converts identity store errors into validation errors and
// wraps anything else with msg.
func identityFailure(msg string, err error) error {
	var ie IdentityErrors
	if errors.As(err, &ie) {
		return ie.Validation()
	}

	var ve *ValidationError
	if errors.As(err, &ve) || errors.Is(err, ErrNotFound) {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)
}
