package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/config"
	"github.com/abhisek/estudos/internal/store"
)

// v carries flag, environment and .env values for every command.
var v = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   "estudos",
	Short: "Terminal client for the estudos study platform",
	Long: "estudos turns your PDF and PPTX course material into study plans and quizzes.\n" +
		"Run it without arguments to open the interactive app.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "Study service root, e.g. https://estudos.example.com (overrides ESTUDOS_API_URL)")
	flags.String("db", "", "Path to SQLite database file (overrides ESTUDOS_DB)")
	flags.Bool("offline", false, "Use canned demo responses instead of the study service")
	flags.Bool("debug", false, "Write a debug log (see ESTUDOS_LOG_FILE)")

	bindFlag(config.KeyAPIURL, "api-url")
	bindFlag(config.KeyDB, "db")
	bindFlag(config.KeyOffline, "offline")
	bindFlag(config.KeyDebug, "debug")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

func bindFlag(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind --%s: %v", flag, err))
	}
}

// env holds what a command needs to talk to the service.
type env struct {
	cfg     config.Config
	store   *store.Store
	gateway api.Gateway
	closers []func() error
}

// openEnv loads configuration, sets up logging, opens the local database
// and builds the gateway. Callers must Close the result.
func openEnv() (*env, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	if err := e.setupLogging(); err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, st.Close)

	var gw api.Gateway
	if cfg.Offline {
		gw = api.NewDemoGateway()
	} else {
		client, err := api.NewClient(api.Options{
			BaseURL:        cfg.BaseURL(),
			Credentials:    st.CredentialRepo(),
			RequestTimeout: cfg.RequestTimeout,
			UploadTimeout:  cfg.UploadTimeout,
		})
		if err != nil {
			e.Close()
			return nil, err
		}
		gw = client
	}
	e.gateway = api.WithLogging(gw, st.RequestLogRepo())
	return e, nil
}

// setupLogging sends the standard logger to the debug file, or discards
// it. The TUI owns the terminal, so nothing may log to stderr.
func (e *env) setupLogging() error {
	if !e.cfg.Debug {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(e.cfg.LogFile, "estudos")
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	e.closers = append(e.closers, f.Close)
	return nil
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
	e.closers = nil
}

// resolveDBPath returns the database path using --db / ESTUDOS_DB
// (highest priority), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
