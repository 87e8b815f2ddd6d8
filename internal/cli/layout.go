package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timegridlabs/timegrid/pkg/pipeline"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	grid        gridFlags
	output      string   // output file path (or base path for multiple formats)
	formats     []string // output formats: "json", "svg"
	timeWidth   float64  // hour gutter width for SVG output
	hideNowLine bool     // suppress the current-time marker in SVG output
	noCache     bool     // bypass the layout cache entirely
	refresh     bool     // reload the schedule even if cached
}

// newLayoutCmd creates the layout command for computing and writing timetables.
// It reads a TOML, YAML, or ICS schedule, computes pixel geometry for every
// entry in the visible range, and writes one output file per requested format.
//
// Default settings:
//   - range: today (single-day view)
//   - hours: 0 to 24, at 60px per hour
//   - format: svg
func newLayoutCmd() *cobra.Command {
	var formatsStr string
	opts := layoutOpts{}

	cmd := &cobra.Command{
		Use:   "layout [schedule]",
		Short: "Compute a timetable layout and write JSON or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runLayout(cmd.Context(), args[0], &opts)
		},
	}

	opts.grid.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().Float64Var(&opts.timeWidth, "time-width", pipeline.DefaultTimeWidth, "hour gutter width in pixels (svg)")
	cmd.Flags().BoolVar(&opts.hideNowLine, "hide-now-line", false, "suppress the current-time marker (svg)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the layout cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "reload the schedule even if cached")

	return cmd
}

// runLayout executes the full pipeline for the given schedule file and writes
// every requested format next to it (or under --output).
func runLayout(ctx context.Context, schedule string, opts *layoutOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Laying out %s", schedule)

	runner, err := newRunner(opts.noCache, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	pOpts := pipeline.Options{
		Schedule:    schedule,
		Refresh:     opts.refresh,
		Formats:     opts.formats,
		TimeWidth:   opts.timeWidth,
		HideNowLine: opts.hideNowLine,
	}
	opts.grid.apply(&pOpts)
	if err := pOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Placed %d cards across %d days", result.Stats.CardCount, result.Stats.DayCount))

	written, err := writeArtifacts(result, schedule, opts)
	if err != nil {
		return err
	}

	printSuccess("Generated %d file(s)", len(written))
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.EntryCount, result.Stats.DayCount, result.Stats.CardCount, result.CacheInfo.LayoutHit)
	if containsFormat(opts.formats, pipeline.FormatSVG) {
		printNextStep("Browse it interactively", "timegrid view "+schedule)
	}
	return nil
}

// writeArtifacts writes each rendered artifact to disk and returns the paths.
// A single format with an explicit --output goes exactly there; otherwise
// paths are derived from the base path plus the format extension.
func writeArtifacts(result *pipeline.Result, schedule string, opts *layoutOpts) ([]string, error) {
	single := len(opts.formats) == 1 && opts.output != ""

	var written []string
	for _, format := range opts.formats {
		data, ok := result.Artifacts[format]
		if !ok {
			printWarning("No %s artifact produced", format)
			continue
		}

		path := opts.output
		if !single {
			path = basePath(opts.output, schedule) + "." + format
		}

		out, err := openOutput(path)
		if err != nil {
			return nil, err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return nil, err
		}
		if err := out.Close(); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

// containsFormat reports whether formats includes the given format.
func containsFormat(formats []string, format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}
