package api

import (
	"context"
	"io"
	"sync"

	"github.com/abhisek/estudos/internal/domain"
)

// Call records one invocation of a MockGateway method.
type Call struct {
	Operation string
	SessionID string
	Responses []QuizResponse
	Files     []string
	Username  string
	Email     string
}

// MockGateway is a deterministic Gateway for tests and offline mode. Each
// operation returns its configured result or error and every call is
// recorded.
type MockGateway struct {
	mu sync.Mutex

	Upload      *UploadResult
	UploadErr   error
	Submit      *SubmitResult
	SubmitErr   error
	Profile     *domain.UserProfile
	ProfileErr  error
	Login       *LoginResult
	LoginErr    error
	RegisterErr error

	Calls []Call
}

var _ Gateway = (*MockGateway)(nil)

func (m *MockGateway) record(c Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, c)
}

func (m *MockGateway) UploadMaterials(_ context.Context, files []Material) (*UploadResult, error) {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
		if f.Reader != nil {
			_, _ = io.Copy(io.Discard, f.Reader)
		}
	}
	m.record(Call{Operation: OpUploadMaterials, Files: names})
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	if m.Upload == nil {
		return nil, &UnavailableError{}
	}
	res := *m.Upload
	return &res, nil
}

func (m *MockGateway) SubmitAnswers(_ context.Context, sessionID string, responses []QuizResponse) (*SubmitResult, error) {
	m.record(Call{Operation: OpSubmitAnswers, SessionID: sessionID, Responses: responses})
	if m.SubmitErr != nil {
		return nil, m.SubmitErr
	}
	if m.Submit == nil {
		return nil, &UnavailableError{}
	}
	res := *m.Submit
	return &res, nil
}

func (m *MockGateway) RegisterUser(_ context.Context, username, email, _ string) (*domain.UserProfile, error) {
	m.record(Call{Operation: OpRegisterUser, Username: username, Email: email})
	if m.RegisterErr != nil {
		return nil, m.RegisterErr
	}
	return &domain.UserProfile{Username: username, Email: email}, nil
}

func (m *MockGateway) LoginUser(_ context.Context, username, _ string) (*LoginResult, error) {
	m.record(Call{Operation: OpLoginUser, Username: username})
	if m.LoginErr != nil {
		return nil, m.LoginErr
	}
	if m.Login == nil {
		return nil, &UnavailableError{}
	}
	res := *m.Login
	return &res, nil
}

func (m *MockGateway) GetProfile(_ context.Context) (*domain.UserProfile, error) {
	m.record(Call{Operation: OpGetProfile})
	if m.ProfileErr != nil {
		return nil, m.ProfileErr
	}
	if m.Profile == nil {
		return nil, &UnavailableError{}
	}
	p := *m.Profile
	return &p, nil
}

// CallCount returns how many times op was called.
func (m *MockGateway) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Operation == op {
			n++
		}
	}
	return n
}

// LastCall returns the most recent call to op.
func (m *MockGateway) LastCall(op string) (Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Calls) - 1; i >= 0; i-- {
		if m.Calls[i].Operation == op {
			return m.Calls[i], true
		}
	}
	return Call{}, false
}
