package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/state"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")

		p := newPrompter(cmd)
		var in auth.RegisterInput
		var err error
		if in.Username, err = p.value(username, "Username"); err != nil {
			return err
		}
		if in.Email, err = p.value(email, "Email"); err != nil {
			return err
		}
		if in.Password, err = p.secret("Password"); err != nil {
			return err
		}
		if in.ConfirmPassword, err = p.secret("Confirm password"); err != nil {
			return err
		}

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		sess := auth.NewSession(state.NewStore(), e.store.CredentialRepo(), e.gateway)
		if _, err := sess.Register(cmd.Context(), in); err != nil {
			return describeAuthError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Account created. Run `estudos login` to sign in.")
		return nil
	},
}

func init() {
	registerCmd.Flags().StringP("username", "u", "", "Username (prompted when empty)")
	registerCmd.Flags().String("email", "", "Email address (prompted when empty)")
}
