package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sentinel-ds/internal/app"
	"sentinel-ds/internal/config"
	"sentinel-ds/internal/lawtext"
	"sentinel-ds/internal/pkg/pdfextract"
)

func parseCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Segment a PDF without storing it",
		Long: `Extract and segment a PDF and print the recognized articles and the
detected effective date. Nothing is written to storage. With --raw the
extracted page text is printed as is, before segmentation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config failed: %w", err)
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s failed: %w", args[0], err)
			}
			if raw {
				ctx, cancel := context.WithTimeout(cmd.Context(), cfg.IngestTimeout())
				defer cancel()
				text, err := pdfextract.ExtractText(ctx, bytes.NewReader(data))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}

			ingest := app.NewIngestService(app.IngestDeps{
				Extractor: pdfextract.New(),
				Segmenter: &lawtext.Segmenter{
					Markers:       lawtext.DefaultMarkers,
					MinBodyLength: cfg.Ingest.MinArticleLength,
				},
				Timeout: cfg.IngestTimeout(),
			})
			preview, err := ingest.PreviewFile(cmd.Context(), data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, preview)
			}
			date := preview.EnactedDate
			if date == "" {
				date = "not found"
			}
			fmt.Fprintf(out, "pages: %d  articles: %d  effective: %s\n\n", preview.Pages, len(preview.Articles), date)
			for _, a := range preview.Articles {
				fmt.Fprintf(out, "--- %s (page %d) %s\n%s\n\n", a.Number, a.Page, a.Title, a.Text)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the extracted text without segmenting it")
	return cmd
}
