package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEmptyPrompt     = errors.New("empty prompt")
	ErrInvalidSize     = errors.New("invalid image size")
	ErrMissingImage    = errors.New("missing image")
	ErrInvalidQuality  = errors.New("invalid quality")
	ErrMissingAPIKey   = errors.New("missing api key")
	ErrNoImageReturned = errors.New("no image returned")
)

// ValidationError is a client-fixable problem with the request.
type ValidationError struct {
	Message string
	Err     error
}

func NewValidationError(message string, err error) *ValidationError {
	return &ValidationError{Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation: %s: %v", e.Message, e.Err)
	}
	return "validation: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ConfigError means the server is missing something the operator has to provide.
type ConfigError struct {
	Key string
	Err error
}

func NewConfigError(key string) *ConfigError {
	return &ConfigError{Key: key, Err: ErrMissingAPIKey}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// UpstreamError is a failed or unusable vendor call.
type UpstreamError struct {
	Provider   string
	StatusCode int
	// Message is the vendor's own message, empty when it did not send one.
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("upstream [%s]: status %d: %s", e.Provider, e.Status(), msg)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Status is the vendor's status when it failed with one, otherwise 500.
func (e *UpstreamError) Status() int {
	if e.StatusCode >= http.StatusBadRequest && e.StatusCode < 600 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// DecodeError means the source image could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
