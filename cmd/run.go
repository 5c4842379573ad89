package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/estudos/internal/app"
	"github.com/abhisek/estudos/internal/state"
)

func init() {
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
	rootCmd.Flags().String("open", "/", "Page to open first, e.g. /upload or /dashboard")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	start, _ := cmd.Flags().GetString("open")

	return app.Run(app.Options{
		Store:     state.NewStore(),
		Gateway:   e.gateway,
		Tokens:    e.store.CredentialRepo(),
		Plans:     e.store.PlanRepo(),
		StartPath: start,
		Splash:    !noSplash,
	})
}
