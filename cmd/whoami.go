package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/auth"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		token, err := e.store.CredentialRepo().Load(ctx)
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if token == "" {
			fmt.Fprintln(out, "Not signed in.")
			return nil
		}

		profile, err := e.gateway.GetProfile(ctx)
		switch {
		case api.IsUnauthorized(err):
			fmt.Fprintln(out, "The stored session is no longer valid. Run `estudos login`.")
			return nil
		case err != nil:
			return fmt.Errorf("%s (%w)", api.GenericMessage, err)
		}

		fmt.Fprintf(out, "User:    %s\n", profile.Username)
		fmt.Fprintf(out, "Email:   %s\n", profile.Email)
		if sub := auth.TokenSubject(token); sub != "" && sub != profile.Username {
			fmt.Fprintf(out, "Subject: %s\n", sub)
		}
		fmt.Fprintf(out, "Expires: %s\n", auth.DescribeExpiry(token, time.Now()))
		return nil
	},
}
