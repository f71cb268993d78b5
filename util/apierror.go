package util

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed request. Every kind maps to one HTTP status.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindMediaType
	KindMalformedRequest
	KindReferenceNotFound
	KindAuthorization
	KindResourceNotFound
	KindRateLimited
)

var kindNames = map[ErrorKind]string{
	KindInternal:          "internal",
	KindMediaType:         "unsupported_media_type",
	KindMalformedRequest:  "malformed_request",
	KindReferenceNotFound: "reference_not_found",
	KindAuthorization:     "authorization",
	KindResourceNotFound:  "resource_not_found",
	KindRateLimited:       "rate_limited",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Status returns the HTTP status code reported for the kind.
// Authorization failures are reported as 400, not 403.
func (k ErrorKind) Status() int {
	switch k {
	case KindMediaType:
		return http.StatusUnsupportedMediaType
	case KindMalformedRequest, KindReferenceNotFound, KindAuthorization:
		return http.StatusBadRequest
	case KindResourceNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the error returned by request validation and lookups.
type APIError struct {
	Kind  ErrorKind
	Title string
	Err   error
}

// NewAPIError builds an APIError. err may be nil.
func NewAPIError(kind ErrorKind, title string, err error) *APIError {
	return &APIError{Kind: kind, Title: title, Err: err}
}

func (e *APIError) Error() string {
	if e.Err == nil {
		return e.Title
	}
	return fmt.Sprintf("%s: %v", e.Title, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Detail is the human readable explanation sent to the client. Internal
// errors never expose their cause.
func (e *APIError) Detail() string {
	if e.Kind == KindInternal || e.Err == nil {
		return e.Title
	}
	return e.Err.Error()
}

// KindOf returns the kind of err, KindInternal when err is not an APIError.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternal
}
