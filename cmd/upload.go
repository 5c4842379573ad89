package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/materials"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload PDF or PPTX material and print the generated study plan",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("output")
		if format != "yaml" && format != "json" {
			return fmt.Errorf("unknown output format %q (want yaml or json)", format)
		}

		files, err := materials.Stat(args)
		if err != nil {
			return err
		}
		sel := materials.Filter(files)
		if w := sel.Warning(); w != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), w)
			for _, r := range sel.Rejected {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", r.File.Name, r.Reason)
			}
		}
		if len(sel.Accepted) == 0 {
			return errors.New("nothing to upload")
		}

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		fmt.Fprintf(cmd.ErrOrStderr(), "Uploading %d file(s), %s...\n",
			len(sel.Accepted), materials.HumanSize(materials.TotalSize(sel.Accepted)))
		plan, err := materials.Upload(ctx, e.gateway, sel.Accepted)
		if err != nil {
			if api.IsUnauthorized(err) {
				return errors.New("not signed in, run `estudos login` first")
			}
			return errors.New(api.UserMessage(err))
		}

		// Cache the plan so the dashboard lists it next time.
		if profile, err := e.gateway.GetProfile(ctx); err == nil {
			if err := e.store.PlanRepo().Save(ctx, profile.Username, plan); err != nil {
				log.Printf("upload: cache plan: %v", err)
			}
		}

		return writePlan(cmd.OutOrStdout(), plan, format)
	},
}

func init() {
	uploadCmd.Flags().StringP("output", "o", "yaml", "Output format: yaml or json")
}

func writePlan(w io.Writer, plan domain.StudyPlan, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return err
	}
	return enc.Close()
}
