package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List recent requests to the study service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failed, _ := cmd.Flags().GetBool("failed")

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.RequestLogRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query request log: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No requests recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-16s  %-6s  %-7s  %-2s  %s\n",
			"Seq", "Timestamp", "Operation", "Status", "Ms", "OK", "Error")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for _, ev := range events {
			if failed && ev.Success {
				continue
			}
			ok := "✓"
			if !ev.Success {
				ok = "✗"
			}
			status := "-"
			if ev.StatusCode != 0 {
				status = fmt.Sprint(ev.StatusCode)
			}
			msg := ev.ErrorMessage
			if ev.ErrorKind != "" {
				msg = ev.ErrorKind + ": " + msg
			}
			if len(msg) > 40 {
				msg = msg[:37] + "..."
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-16s  %-6s  %-7d  %-2s  %s\n",
				ev.Sequence,
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Operation,
				status,
				ev.LatencyMs,
				ok,
				msg,
			)
		}
		return nil
	},
}

func init() {
	logCmd.Flags().IntP("limit", "n", 20, "Number of requests to show (0 for all)")
	logCmd.Flags().Bool("failed", false, "Only show failed requests")
}
