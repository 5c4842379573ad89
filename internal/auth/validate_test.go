package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, Validate(LoginInput{Username: "ana", Password: "x"}))

	err := Validate(LoginInput{Username: "   ", Password: ""})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "Username cannot be blank", verr.For("Username"))
	assert.Contains(t, verr.For("Password"), "required")
}

func TestValidateRegister(t *testing.T) {
	valid := RegisterInput{
		Username:        "ana",
		Email:           "ana@x.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
	require.NoError(t, Validate(valid))

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
		field  string
		want   string
	}{
		{"short username", func(in *RegisterInput) { in.Username = "an" }, "Username", "at least 3"},
		{"long username", func(in *RegisterInput) {
			in.Username = "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz"
		}, "Username", "maximum of 50"},
		{"bad email", func(in *RegisterInput) { in.Email = "ana-at-x" }, "Email", "valid email"},
		{"short password", func(in *RegisterInput) {
			in.Password = "123"
			in.ConfirmPassword = "123"
		}, "Password", "at least 6"},
		{"mismatch", func(in *RegisterInput) { in.ConfirmPassword = "other" }, "ConfirmPassword", "equal to"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := Validate(in)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.For(tt.field), tt.want)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "A", Message: "a is bad"},
		{Field: "B", Message: "b is bad"},
	}}
	assert.Equal(t, "a is bad; b is bad", err.Error())
	assert.Empty(t, err.For("C"))
}
