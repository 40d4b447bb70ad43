package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/inkdown/internal/extract"
	"github.com/zjrosen/inkdown/internal/normalize"
	"github.com/zjrosen/inkdown/internal/tracing"
)

var (
	inspectJSON  bool
	inspectTrace bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the decoration ranges extracted from a markdown file",
	Long: `inspect parses the file and prints every decoration range the engine would
produce: the interval, the kind, and the heading level or link URL where one
applies. Offsets are into the normalized (LF-only) text.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "emit JSON instead of a table")
	inspectCmd.Flags().BoolVar(&inspectTrace, "trace", false, "export extraction spans to stdout")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the CLI argument
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:  inspectTrace || cfg.Tracing.Enabled,
		Exporter: cfg.Tracing.Exporter,
	})
	if err != nil {
		return fmt.Errorf("configuring tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	_, span := provider.Tracer().Start(context.Background(), "inspect")
	span.SetAttributes(attribute.String("file", path))

	normalized, hadCR := normalize.Normalize(string(data))
	ranges := extract.Ranges(normalized)

	span.SetAttributes(
		attribute.Bool("normalized.cr", hadCR),
		attribute.Int("decoration.count", len(ranges)),
	)
	span.End()

	if inspectJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ranges)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "START\tEND\tKIND\tLEVEL\tURL")
	for _, r := range ranges {
		level := ""
		if r.Level > 0 {
			level = fmt.Sprintf("%d", r.Level)
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", r.Start, r.End, r.Kind, level, r.URL)
	}
	return w.Flush()
}
