package store

import (
	"context"
	"time"

	"github.com/abhisek/estudos/internal/domain"
)

// CredentialRepo persists the single bearer token. It satisfies
// auth.TokenStore.
type CredentialRepo interface {
	// Load returns the stored token, or "" when none is stored.
	Load(ctx context.Context) (string, error)

	// Save replaces the stored token.
	Save(ctx context.Context, token string) error

	// Clear erases the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// PlanRepo caches study plans per owner across restarts.
type PlanRepo interface {
	// Save inserts or replaces the owner's plan with the same id and marks
	// it as the newest.
	Save(ctx context.Context, owner string, plan domain.StudyPlan) error

	// List returns the owner's plans, oldest first.
	List(ctx context.Context, owner string) ([]domain.StudyPlan, error)

	// Clear deletes every plan of the owner.
	Clear(ctx context.Context, owner string) error
}

// RequestEventData captures one gateway call.
type RequestEventData struct {
	Operation    string
	RequestID    string
	StatusCode   int
	LatencyMs    int64
	Success      bool
	ErrorKind    string
	ErrorMessage string
}

// RequestEvent is a stored RequestEventData.
type RequestEvent struct {
	RequestEventData
	Sequence  int64
	Timestamp time.Time
}

// RequestLogRepo is the append-only gateway request log.
type RequestLogRepo interface {
	// AppendRequest records a gateway call.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// Recent returns up to limit events, newest first. limit <= 0 means all.
	Recent(ctx context.Context, limit int) ([]RequestEvent, error)
}
