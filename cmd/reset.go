package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/state"
)

// planClearer drops a user's cached study plans.
type planClearer interface {
	Clear(ctx context.Context, owner string) error
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the session and the signed-in user's cached study plans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		sess := auth.NewSession(state.NewStore(), e.store.CredentialRepo(), e.gateway)
		return resetUser(cmd.Context(), cmd.OutOrStdout(), e.gateway, e.store.PlanRepo(), sess)
	},
}

// resetUser clears the cached plans of the user the stored token belongs
// to, then signs out. An invalid token only skips the plan cleanup.
func resetUser(ctx context.Context, out io.Writer, gw api.Gateway, plans planClearer, sess *auth.Session) error {
	if profile, err := gw.GetProfile(ctx); err == nil {
		if err := plans.Clear(ctx, profile.Username); err != nil {
			return fmt.Errorf("clear cached plans: %w", err)
		}
		fmt.Fprintf(out, "Cleared cached study plans for %s.\n", profile.Username)
	}
	if err := sess.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Signed out.")
	return nil
}
