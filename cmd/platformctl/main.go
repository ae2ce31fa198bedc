// Command platformctl checks platform files offline and previews searches
// against them without running the API.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"ad-platforms/internal/ingest"
	"ad-platforms/internal/metrics"
	"ad-platforms/internal/platform"
)

var errNothingLoaded = errors.New("no platforms loaded")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "platformctl",
		Short:        "Inspect advertising platform files",
		SilenceUsage: true,
	}
	root.AddCommand(newCheckCmd(), newSearchCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Parse a platform file and report skipped lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := parseFile(args[0])
			if err != nil {
				return err
			}
			return printCheck(cmd.OutOrStdout(), res)
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search FILE LOCATION",
		Short: "Print the platforms a search for LOCATION would return",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := parseFile(args[0])
			if err != nil {
				return err
			}

			svc := platform.NewService(
				slog.New(slog.NewTextHandler(io.Discard, nil)),
				metrics.New(prometheus.NewRegistry()),
				platform.Options{},
			)
			svc.Load(res.Platforms)

			for _, name := range svc.Search(args[1]) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func parseFile(path string) (ingest.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return ingest.Result{}, err
	}
	defer f.Close()
	return ingest.ParseReader(f)
}

func printCheck(w io.Writer, res ingest.Result) error {
	if res.Empty {
		fmt.Fprintln(w, "file is empty")
		return errNothingLoaded
	}
	for _, p := range res.Platforms {
		fmt.Fprintf(w, "ok    %s %v\n", p.Name, p.Locations)
	}
	for _, d := range res.Skipped {
		fmt.Fprintf(w, "skip  line %d: %s\n", d.Line, d.Reason)
	}
	fmt.Fprintf(w, "%d lines, %d platforms, %d skipped\n", res.Lines, len(res.Platforms), len(res.Skipped))

	if len(res.Platforms) == 0 {
		return errNothingLoaded
	}
	return nil
}
