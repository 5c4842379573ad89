package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GenericMessage is shown for backend, network and unexpected failures.
const GenericMessage = "Could not reach the study service. Please try again."

// Error is a non-2xx response from the backend, passed through unchanged.
type Error struct {
	StatusCode int
	Message    string
	Body       json.RawMessage
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// UnavailableError means the backend could not be reached or did not
// answer within the deadline.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend unavailable: %v", e.Err)
	}
	return "backend unavailable"
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// InvalidResponseError means a 2xx response did not match the expected shape.
type InvalidResponseError struct {
	Operation string
	Content   json.RawMessage
	Err       error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid %s response: %v", e.Operation, e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// ErrorKind is the user-facing category of a failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindAuth
	KindBackend
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// Classify maps an error onto validation, auth, backend or unknown.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusBadRequest, http.StatusRequestEntityTooLarge,
			http.StatusUnsupportedMediaType, http.StatusUnprocessableEntity:
			return KindValidation
		case http.StatusUnauthorized, http.StatusForbidden:
			return KindAuth
		default:
			return KindBackend
		}
	}
	var unavail *UnavailableError
	var invalid *InvalidResponseError
	if errors.As(err, &unavail) || errors.As(err, &invalid) ||
		errors.Is(err, context.DeadlineExceeded) {
		return KindBackend
	}
	return KindUnknown
}

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	return Classify(err) == KindAuth
}

// UserMessage returns the text to show for err: the backend's own message
// for validation errors, the generic message otherwise.
func UserMessage(err error) string {
	if Classify(err) == KindValidation {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return GenericMessage
}

// newError builds an *Error from a response, reading FastAPI style
// {"detail": "..."} or {"detail": [{"msg": "..."}]} and {"message": "..."}.
func newError(status int, body []byte) *Error {
	e := &Error{StatusCode: status, Body: json.RawMessage(body)}

	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := detailMessage(payload.Detail); msg != "" {
			e.Message = msg
		} else if payload.Message != "" {
			e.Message = payload.Message
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		var msgs []string
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
