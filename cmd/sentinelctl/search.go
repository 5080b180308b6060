package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sentinel-ds/internal/app"
	"sentinel-ds/internal/bootstrap"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Find articles containing a keyword",
		Long: `Find articles whose text contains KEYWORD, ordered by document name and
article order.

Example:
  sentinelctl search 위험관리
  sentinelctl search 위험관리 --category 법령 --category 사규`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, _ := cmd.Flags().GetStringSlice("category")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			return withApp(cmd, func(ctx context.Context, a *bootstrap.App) error {
				result, err := a.Search.Search(ctx, app.SearchInput{
					Keyword:    strings.Join(args, " "),
					Categories: categories,
					Limit:      limit,
					Offset:     offset,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, result)
				}
				fmt.Fprintf(out, "%d results for %q\n\n", result.Count, result.Keyword)
				for _, item := range result.Items {
					fmt.Fprintf(out, "[%s] %s %s\n  %s\n\n", item.Category, item.DocumentName, item.ArticleNumber, item.Snippet)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSlice("category", nil, "restrict to categories (repeatable or comma-separated)")
	cmd.Flags().Int("limit", 0, "maximum results (default 100)")
	cmd.Flags().Int("offset", 0, "skip this many results")
	return cmd
}
