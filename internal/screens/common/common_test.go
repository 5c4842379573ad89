package common

import (
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/state"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestBeginEnd(t *testing.T) {
	st := state.NewStore()
	st.Dispatch(state.SetError{Message: "old"})

	Begin(st)
	assert.True(t, st.State().Loading)
	assert.Empty(t, st.State().Error)

	End(st)
	assert.False(t, st.State().Loading)
}

func TestFailBackendError(t *testing.T) {
	st := state.NewStore()
	Begin(st)

	msg, cmd := Fail(st, nil, &api.UnavailableError{Err: errors.New("refused")})
	assert.Nil(t, cmd)
	assert.Equal(t, api.GenericMessage, msg)
	assert.Equal(t, api.GenericMessage, st.State().Error)
	assert.False(t, st.State().Loading)
}

func TestFailValidationUsesBackendMessage(t *testing.T) {
	st := state.NewStore()
	msg, _ := Fail(st, nil, &api.Error{StatusCode: 415, Message: "Only PDF and PPTX"})
	assert.Equal(t, "Only PDF and PPTX", msg)
}

func TestFailAuthLogsOutAndRedirects(t *testing.T) {
	st := state.NewStore()
	tokens := auth.NewMemoryTokens("tok")
	sess := auth.NewSession(st, tokens, &api.MockGateway{})
	st.Dispatch(state.LoginSuccess{Token: "tok"})
	Begin(st)

	msg, cmd := Fail(st, sess, &api.Error{StatusCode: 401})
	assert.Empty(t, msg)
	require.NotNil(t, cmd)
	assert.Equal(t, router.NavigateMsg{Path: router.PathLogin, Mode: router.ModeReset}, cmd())

	assert.False(t, st.State().IsAuthenticated)
	assert.False(t, st.State().Loading)
	assert.Empty(t, st.State().Error, "auth errors are never shown raw")
	saved, _ := tokens.Load(t.Context())
	assert.Empty(t, saved)
}

func TestSettleFromOutsideThePage(t *testing.T) {
	st := state.NewStore()
	Begin(st)

	done := make(chan struct{})
	var msg string
	var unauthorized bool
	go func() {
		defer close(done)
		msg, unauthorized = Settle(st, nil, &api.Error{StatusCode: 503})
	}()
	<-done

	assert.False(t, unauthorized)
	assert.Equal(t, api.GenericMessage, msg)
	assert.False(t, st.State().Loading)
	assert.Equal(t, api.GenericMessage, st.State().Error)
}

func TestSettleAuthFailure(t *testing.T) {
	st := state.NewStore()
	sess := auth.NewSession(st, auth.NewMemoryTokens("tok"), &api.MockGateway{})
	st.Dispatch(state.LoginSuccess{Token: "tok"})
	Begin(st)

	msg, unauthorized := Settle(st, sess, &api.Error{StatusCode: 403})
	assert.True(t, unauthorized)
	assert.Empty(t, msg)
	assert.False(t, st.State().IsAuthenticated)
	assert.False(t, st.State().Loading)
}
