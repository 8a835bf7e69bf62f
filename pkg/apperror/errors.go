package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers can branch on the failure mode
// instead of matching message strings.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindEncrypted
	KindCorrupt
	KindBusy
	KindPermissionDenied
	KindRender
	KindNothingToMerge
	KindStoreClosed
	KindValidation
)

// AppError is a structured error carrying a stable code and a kind.
type AppError struct {
	Kind    Kind   `json:"-"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Err     error  `json:"-"` // Wrapped internal error (not shown to the user)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(kind Kind, code string, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(kind Kind, code string, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// KindOf extracts the Kind from err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// CodeOf extracts the stable error code from err, or "SYS_000" for foreign errors.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "SYS_000"
}

// ---- PDF sources (PDF) ----

func ErrSourceNotFound(name string) *AppError {
	return New(KindNotFound, "PDF_001", withName("source file not found", name))
}

func ErrEncrypted(name string) *AppError {
	return New(KindEncrypted, "PDF_002", withName("cannot process encrypted PDF", name))
}

func ErrCorrupt(name string, err error) *AppError {
	return Wrap(KindCorrupt, "PDF_003", withName("cannot parse PDF", name), err)
}

func withName(message, name string) string {
	if name == "" {
		return message
	}
	return fmt.Sprintf("%s: %s", message, name)
}

func ErrRender(message string) *AppError {
	return New(KindRender, "PDF_004", message)
}

func ErrNothingToMerge() *AppError {
	return New(KindNothingToMerge, "PDF_005", "nothing to merge: no source processed successfully")
}

// ---- Output writing (OUT) ----

func ErrPermissionDenied(path string, err error) *AppError {
	return Wrap(KindPermissionDenied, "OUT_001", fmt.Sprintf("permission denied writing %s", path), err)
}

// ---- Audit store (STORE) ----

func ErrStoreBusy(err error) *AppError {
	return Wrap(KindBusy, "STORE_001", "audit store busy, retries exhausted", err)
}

func ErrStoreClosed() *AppError {
	return New(KindStoreClosed, "STORE_002", "audit store is closed")
}

func ErrStoreCorrupt(err error) *AppError {
	return Wrap(KindCorrupt, "STORE_003", "audit store failed integrity check", err)
}

// ---- Validation (VAL) ----

// Validation returns a VAL_001-style validation error.
func Validation(message string) *AppError {
	return New(KindValidation, "VAL_001", message)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(KindInternal, "SYS_001", "internal error", err)
}
