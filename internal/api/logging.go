package api

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/store"
)

// LoggingGateway is a decorator that records every backend call in the
// request log.
type LoggingGateway struct {
	inner Gateway
	repo  store.RequestLogRepo
}

// WithLogging wraps a Gateway with request logging.
func WithLogging(g Gateway, repo store.RequestLogRepo) Gateway {
	return &LoggingGateway{inner: g, repo: repo}
}

func (l *LoggingGateway) UploadMaterials(ctx context.Context, files []Material) (*UploadResult, error) {
	ctx, finish := l.begin(ctx, OpUploadMaterials)
	res, err := l.inner.UploadMaterials(ctx, files)
	finish(err)
	return res, err
}

func (l *LoggingGateway) SubmitAnswers(ctx context.Context, sessionID string, responses []QuizResponse) (*SubmitResult, error) {
	ctx, finish := l.begin(ctx, OpSubmitAnswers)
	res, err := l.inner.SubmitAnswers(ctx, sessionID, responses)
	finish(err)
	return res, err
}

func (l *LoggingGateway) RegisterUser(ctx context.Context, username, email, password string) (*domain.UserProfile, error) {
	ctx, finish := l.begin(ctx, OpRegisterUser)
	res, err := l.inner.RegisterUser(ctx, username, email, password)
	finish(err)
	return res, err
}

func (l *LoggingGateway) LoginUser(ctx context.Context, username, password string) (*LoginResult, error) {
	ctx, finish := l.begin(ctx, OpLoginUser)
	res, err := l.inner.LoginUser(ctx, username, password)
	finish(err)
	return res, err
}

func (l *LoggingGateway) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	ctx, finish := l.begin(ctx, OpGetProfile)
	res, err := l.inner.GetProfile(ctx)
	finish(err)
	return res, err
}

func (l *LoggingGateway) begin(ctx context.Context, op string) (context.Context, func(error)) {
	reqID := RequestIDFrom(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
		ctx = WithRequestID(ctx, reqID)
	}
	start := time.Now()

	return ctx, func(err error) {
		data := store.RequestEventData{
			Operation: op,
			RequestID: reqID,
			LatencyMs: time.Since(start).Milliseconds(),
			Success:   err == nil,
		}
		if err != nil {
			data.ErrorKind = Classify(err).String()
			data.ErrorMessage = err.Error()
			var apiErr *Error
			if errors.As(err, &apiErr) {
				data.StatusCode = apiErr.StatusCode
			}
		}

		// Log the event but never fail the call because of it.
		if logErr := l.repo.AppendRequest(context.WithoutCancel(ctx), data); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log %s request: %v\n", op, logErr)
		}
	}
}
