package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sentinel-ds/internal/bootstrap"
	"sentinel-ds/internal/model"
)

func lawsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "laws",
		Short: "Managed laws fetched from the law information API",
	}
	cmd.AddCommand(lawsListCmd())
	cmd.AddCommand(lawsUpdateCmd())
	cmd.AddCommand(lawsRunsCmd())
	return cmd
}

func lawsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the managed law catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				laws := app.Ingest.Catalog()
				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, laws)
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tCATEGORY\tTYPE")
				for _, law := range laws {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", law.Name, law.Category, law.Type)
				}
				return tw.Flush()
			})
		},
	}
}

func lawsUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [names...]",
		Short: "Fetch managed laws and replace their stored articles",
		Long: `Fetch managed laws from the law information API and replace the stored
copies. Without names every catalog entry is refreshed. Each law is
committed on its own; a failed law does not undo the others.

Example:
  sentinelctl laws update
  sentinelctl laws update 자본시장과 금융투자업에 관한 법률`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				report, err := app.Ingest.Refresh(ctx, args, model.TriggerCLI)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput {
					if err := printJSON(out, report); err != nil {
						return err
					}
				} else {
					for _, o := range report.Outcomes {
						status := "ok"
						if !o.Success {
							status = "FAIL(" + string(o.Kind) + ")"
						}
						fmt.Fprintf(out, "%-10s %s\n", status, o.Message)
					}
					fmt.Fprintf(out, "\nrun %s: %d attempted, %d succeeded, %d failed\n",
						report.RunID, report.Attempted, report.Succeeded, report.Failed)
				}
				if report.Failed > 0 {
					return fmt.Errorf("%d of %d laws failed", report.Failed, report.Attempted)
				}
				return nil
			})
		},
	}
}

func lawsRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent ingest runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				runs, err := app.Ingest.ListRuns(ctx, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, runs)
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "RUN\tTRIGGER\tSTARTED\tOK\tFAILED")
				for _, r := range runs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
						r.RunID, r.Trigger, r.StartedAt.Format("2006-01-02 15:04:05"), r.Succeeded, r.Failed)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().Int("limit", 20, "number of runs to show")
	return cmd
}
