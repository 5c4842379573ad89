// Package guard decides whether the current session may see protected
// pages, revalidating a persisted token against the backend when needed.
package guard

import (
	"context"
	"log"

	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/state"
)

// Status is the guard's verdict.
type Status int

const (
	Checking Status = iota
	Authorized
	Unauthorized
)

func (s Status) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// TokenStore is the persisted credential, read and cleared by the guard.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// ProfileFetcher probes token validity.
type ProfileFetcher interface {
	GetProfile(ctx context.Context) (*domain.UserProfile, error)
}

// Guard evaluates access to protected routes.
type Guard struct {
	store    *state.Store
	tokens   TokenStore
	profiles ProfileFetcher
}

// New creates a Guard.
func New(st *state.Store, tokens TokenStore, profiles ProfileFetcher) *Guard {
	return &Guard{store: st, tokens: tokens, profiles: profiles}
}

// Initial returns the status known without any I/O: Authorized when the
// session is already authenticated, otherwise Checking.
func (g *Guard) Initial() Status {
	if g.store.State().IsAuthenticated {
		return Authorized
	}
	return Checking
}

// Check resolves the status. It never returns an error: any failure to
// validate the persisted token discards it and yields Unauthorized.
func (g *Guard) Check(ctx context.Context) Status {
	if g.store.State().IsAuthenticated {
		return Authorized
	}

	token, err := g.tokens.Load(ctx)
	if err != nil {
		log.Printf("guard: load token: %v", err)
		return Unauthorized
	}
	if token == "" {
		return Unauthorized
	}

	profile, err := g.profiles.GetProfile(ctx)
	if err != nil || profile == nil {
		log.Printf("guard: revalidate token: %v", err)
		if clearErr := g.tokens.Clear(ctx); clearErr != nil {
			log.Printf("guard: clear token: %v", clearErr)
		}
		return Unauthorized
	}

	g.store.DispatchAll(
		state.LoginSuccess{Token: token},
		state.SetUser{User: profile},
	)
	return Authorized
}
