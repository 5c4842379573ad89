package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/state"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		sess := auth.NewSession(state.NewStore(), e.store.CredentialRepo(), e.gateway)
		if err := sess.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}
