package auth

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/state"
)

// InvalidCredentials is shown when the service rejects a login.
const InvalidCredentials = "Invalid username or password."

// Session runs login, registration and logout against the gateway and
// keeps the token store and the state store in step.
type Session struct {
	store   *state.Store
	tokens  TokenStore
	gateway api.Gateway
}

// NewSession creates a Session.
func NewSession(st *state.Store, tokens TokenStore, gw api.Gateway) *Session {
	return &Session{store: st, tokens: tokens, gateway: gw}
}

// Login validates the form, exchanges the credentials for a token,
// persists it and marks the session authenticated. The profile is then
// fetched; failing to fetch it does not fail the login.
func (s *Session) Login(ctx context.Context, in LoginInput) (*domain.UserProfile, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := Validate(in); err != nil {
		return nil, err
	}

	res, err := s.gateway.LoginUser(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, res.Token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	s.store.Dispatch(state.LoginSuccess{Token: res.Token})

	profile, err := s.gateway.GetProfile(ctx)
	if err != nil {
		log.Printf("auth: profile after login: %v", err)
		return nil, nil
	}
	s.store.Dispatch(state.SetUser{User: profile})
	return profile, nil
}

// Register validates the form and creates the account. It does not sign
// the user in.
func (s *Session) Register(ctx context.Context, in RegisterInput) (*domain.UserProfile, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := Validate(in); err != nil {
		return nil, err
	}
	return s.gateway.RegisterUser(ctx, in.Username, in.Email, in.Password)
}

// Logout erases the persisted token and resets the state store. The store
// is reset even if erasing the token fails.
func (s *Session) Logout(ctx context.Context) error {
	err := s.tokens.Clear(ctx)
	s.store.Dispatch(state.Logout{})
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
