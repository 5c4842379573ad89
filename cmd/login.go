package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/state"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")

		p := newPrompter(cmd)
		username, err := p.value(username, "Username")
		if err != nil {
			return err
		}
		password, err := p.secret("Password")
		if err != nil {
			return err
		}

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		sess := auth.NewSession(state.NewStore(), e.store.CredentialRepo(), e.gateway)
		profile, err := sess.Login(cmd.Context(), auth.LoginInput{Username: username, Password: password})
		if err != nil {
			return describeAuthError(err)
		}

		name := username
		if profile != nil {
			name = profile.Username
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", name)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "Username (prompted when empty)")
}

// describeAuthError turns login and registration failures into the
// messages the app shows for them.
func describeAuthError(err error) error {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr
	case api.Classify(err) == api.KindAuth:
		return errors.New(auth.InvalidCredentials)
	case api.Classify(err) == api.KindValidation:
		return errors.New(api.UserMessage(err))
	}
	return fmt.Errorf("%s (%w)", api.GenericMessage, err)
}
