// Package common holds helpers shared by the page screens: loading
// bookkeeping and the error taxonomy applied to gateway failures.
package common

import (
	"context"
	"log"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/state"
)

// Begin marks the store as loading and clears any previous error.
func Begin(st *state.Store) {
	st.DispatchAll(state.SetLoading{Loading: true}, state.ClearError{})
}

// End clears the loading flag.
func End(st *state.Store) {
	st.Dispatch(state.SetLoading{Loading: false})
}

// Settle applies the error taxonomy to a failed operation on the store
// side only and always leaves the store not loading. It is safe to call
// from a command, so the store settles even when the page that started
// the operation is no longer on screen.
//
// Authentication failures end the session and report unauthorized with
// an empty message. Everything else sets the store's error and returns
// the message to show inline.
func Settle(st *state.Store, sess *auth.Session, err error) (msg string, unauthorized bool) {
	End(st)
	if api.IsUnauthorized(err) {
		if sess != nil {
			if logoutErr := sess.Logout(context.Background()); logoutErr != nil {
				log.Printf("logout after auth failure: %v", logoutErr)
			}
		}
		return "", true
	}
	msg = api.UserMessage(err)
	log.Printf("operation failed (%s): %v", api.Classify(err), err)
	st.Dispatch(state.SetError{Message: msg})
	return msg, false
}

// Fail is Settle plus the navigation that follows it: authentication
// failures return a command that resets navigation to the login page.
func Fail(st *state.Store, sess *auth.Session, err error) (string, tea.Cmd) {
	msg, unauthorized := Settle(st, sess, err)
	if unauthorized {
		return "", ToLogin()
	}
	return msg, nil
}

// ToLogin resets navigation to the login page.
func ToLogin() tea.Cmd {
	return router.Navigate(router.PathLogin, router.ModeReset)
}
