package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sentinel-ds/internal/app"
	"sentinel-ds/internal/bootstrap"
)

func docsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Stored documents",
	}
	cmd.AddCommand(docsUploadCmd())
	cmd.AddCommand(docsListCmd())
	cmd.AddCommand(docsShowCmd())
	cmd.AddCommand(docsDeleteCmd())
	return cmd
}

func docsUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Ingest an internal rule from a PDF file",
		Long: `Segment a PDF into articles and store it, replacing any previous version
with the same name and category. Only 모범규준 and 사규 may be uploaded.

Example:
  sentinelctl docs upload --name 리스크관리규정 --category 사규 risk.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			category, _ := cmd.Flags().GetString("category")

			path := args[0]
			if strings.ToLower(filepath.Ext(path)) != ".pdf" {
				return fmt.Errorf("only PDF files are supported: %s", path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s failed: %w", path, err)
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			return withApp(cmd, func(ctx context.Context, a *bootstrap.App) error {
				result, err := a.Ingest.IngestFile(ctx, app.FileInput{
					Name:     name,
					Category: category,
					Filename: filepath.Base(path),
					Data:     data,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, result)
				}
				date := result.EnactedDate
				if date == "" {
					date = "unknown"
				}
				fmt.Fprintf(out, "stored %s [%s] as #%d: %d articles (effective %s)\n",
					result.Document.Name, result.Document.Category, result.Document.ID, result.ArticleCount, date)
				return nil
			})
		},
	}
	cmd.Flags().String("name", "", "document name (default: file name)")
	cmd.Flags().String("category", "", "document category (모범규준 or 사규)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func docsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored documents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			return withApp(cmd, func(ctx context.Context, a *bootstrap.App) error {
				docs, err := a.Documents.List(ctx, category)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, docs)
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tARTICLES\tEFFECTIVE\tUPDATED")
				for _, d := range docs {
					date := "-"
					if d.EnactedDate != nil {
						date = *d.EnactedDate
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
						d.ID, d.Name, d.Category, d.ArticleCount, date, d.UpdatedAt.Format("2006-01-02 15:04"))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().String("category", "", "only list this category")
	return cmd
}

func docsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print a document and its articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *bootstrap.App) error {
				detail, err := a.Documents.Get(ctx, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, detail)
				}
				fmt.Fprintf(out, "%s [%s] #%d\n\n", detail.Document.Name, detail.Document.Category, detail.Document.ID)
				for _, art := range detail.Articles {
					fmt.Fprintln(out, art.Text)
					fmt.Fprintln(out)
				}
				return nil
			})
		},
	}
}

func docsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a document and its articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *bootstrap.App) error {
				if err := a.Documents.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted #%d\n", id)
				return nil
			})
		},
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid document id %q", raw)
	}
	return uint(id), nil
}
