package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sentinel-ds/internal/bootstrap"
)

var version = "0.1.0"

var jsonOutput bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "sentinelctl",
		Short: "Operate the regulation document store",
		Long: `sentinelctl ingests regulation documents and queries the article store.

Managed laws are refreshed from the national law information API; internal
rules are uploaded as PDF files. Configuration is read from CONFIG_FILE
(default configs/config.toml) and the environment, like the server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	rootCmd.AddCommand(lawsCmd())
	rootCmd.AddCommand(docsCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(parseCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withApp opens storage and the optional backends without starting the
// refresh worker, runs fn and releases everything.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := cmd.Context()
	app, err := bootstrap.New(ctx, bootstrap.Options{})
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			app.Log.WithError(err).Warn("close resources failed")
		}
	}()
	return fn(ctx, app)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
