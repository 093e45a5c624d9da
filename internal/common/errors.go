package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes returned to API clients.
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeFileTooLarge        = "FILE_TOO_LARGE"
	CodeUnsupportedFileType = "UNSUPPORTED_FILE_TYPE"
	CodeEmptyFile           = "EMPTY_FILE"
	CodeUnreadableDocument  = "UNREADABLE_DOCUMENT"
	CodeNoExtractableText   = "NO_EXTRACTABLE_TEXT"
	CodeModelUnavailable    = "MODEL_UNAVAILABLE"
	CodeModelAuth           = "MODEL_AUTH_ERROR"
	CodeModel               = "MODEL_ERROR"
	CodeConfig              = "CONFIG_ERROR"
	CodeInternal            = "INTERNAL"
)

// Sentinels; every AppError built by the constructors below wraps one of these.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyFile           = errors.New("empty file")
	ErrUnreadableDocument  = errors.New("unreadable document")
	ErrNoExtractableText   = errors.New("no extractable text")
	ErrModelUnavailable    = errors.New("model unavailable")
	ErrModelTimeout        = fmt.Errorf("%w: timeout", ErrModelUnavailable)
	ErrModelAuth           = errors.New("model authentication failed")
	ErrModel               = errors.New("model error")
	ErrInternal            = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

func InvalidRequestError(message string) error {
	return NewAppError(CodeInvalidRequest, message, ErrInvalidInput)
}

func FileTooLargeError(maxBytes int64) error {
	return NewAppError(CodeFileTooLarge, fmt.Sprintf("file too large (max %dMB)", maxBytes/(1024*1024)), ErrFileTooLarge)
}

func UnsupportedFileTypeError(mediaType string) error {
	msg := "Unsupported file type"
	if mediaType != "" {
		msg = fmt.Sprintf("Unsupported file type %q: only image/jpeg, image/png and application/pdf are accepted", mediaType)
	}
	return NewAppError(CodeUnsupportedFileType, msg, ErrUnsupportedFileType)
}

func EmptyFileError() error {
	return NewAppError(CodeEmptyFile, "uploaded file is empty", ErrEmptyFile)
}

func UnreadableDocumentError(cause error) error {
	return NewAppError(CodeUnreadableDocument, "could not read PDF document", errors.Join(ErrUnreadableDocument, cause))
}

func NoExtractableTextError() error {
	return NewAppError(CodeNoExtractableText, "No readable text found in PDF (possibly scanned)", ErrNoExtractableText)
}

// ModelUnavailableError covers transport failures, cancellations and deadlines.
func ModelUnavailableError(cause error, timeout bool) error {
	sentinel := ErrModelUnavailable
	msg := "model endpoint unreachable"
	if timeout {
		sentinel = ErrModelTimeout
		msg = "model endpoint timed out"
	}
	return NewAppError(CodeModelUnavailable, msg, errors.Join(sentinel, cause))
}

func ModelAuthError(status int) error {
	return NewAppError(CodeModelAuth, fmt.Sprintf("model endpoint rejected credentials (status %d)", status), ErrModelAuth)
}

func ModelError(message string, cause error) error {
	if cause == nil {
		return NewAppError(CodeModel, message, ErrModel)
	}
	return NewAppError(CodeModel, message, errors.Join(ErrModel, cause))
}

// CodeOf returns the AppError code in err's chain, or CodeInternal.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// MessageOf returns a client-safe message: the AppError message, never the cause chain.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}
