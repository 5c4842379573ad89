package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindUnknown},
		{"bad request", &Error{StatusCode: http.StatusBadRequest}, KindValidation},
		{"too large", &Error{StatusCode: http.StatusRequestEntityTooLarge}, KindValidation},
		{"unsupported type", &Error{StatusCode: http.StatusUnsupportedMediaType}, KindValidation},
		{"unprocessable", &Error{StatusCode: http.StatusUnprocessableEntity}, KindValidation},
		{"unauthorized", &Error{StatusCode: http.StatusUnauthorized}, KindAuth},
		{"forbidden", &Error{StatusCode: http.StatusForbidden}, KindAuth},
		{"not found", &Error{StatusCode: http.StatusNotFound}, KindBackend},
		{"server error", &Error{StatusCode: http.StatusInternalServerError}, KindBackend},
		{"wrapped auth", fmt.Errorf("login: %w", &Error{StatusCode: 401}), KindAuth},
		{"unavailable", &UnavailableError{Err: errors.New("dial tcp")}, KindBackend},
		{"invalid response", &InvalidResponseError{Operation: OpGetProfile}, KindBackend},
		{"deadline", context.DeadlineExceeded, KindBackend},
		{"other", errors.New("boom"), KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "File too large", UserMessage(&Error{StatusCode: 413, Message: "File too large"}))
	assert.Equal(t, GenericMessage, UserMessage(&Error{StatusCode: 500, Message: "Traceback"}))
	assert.Equal(t, GenericMessage, UserMessage(&Error{StatusCode: 401, Message: "expired"}))
	assert.Equal(t, GenericMessage, UserMessage(errors.New("boom")))
}

func TestNewErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail string", `{"detail":"Only PDF files"}`, "Only PDF files"},
		{"detail list", `{"detail":[{"msg":"field required"},{"msg":"too short"}]}`, "field required; too short"},
		{"message", `{"message":"nope"}`, "nope"},
		{"empty body", ``, "Bad Request"},
		{"not json", `oops`, "Bad Request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newError(http.StatusBadRequest, []byte(tt.body))
			assert.Equal(t, tt.want, e.Message)
			assert.Equal(t, http.StatusBadRequest, e.StatusCode)
		})
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "auth", KindAuth.String())
	assert.Equal(t, "backend", KindBackend.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
