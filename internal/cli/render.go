package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gridsmith/gridview/pkg/component"
	"github.com/gridsmith/gridview/pkg/config"
	"github.com/gridsmith/gridview/pkg/errors"
	"github.com/gridsmith/gridview/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output base path, format extension is appended
	formats []string // output formats: "svg", "png", "dot", "json"
}

// newRenderCmd creates the render command for generating topology artifacts.
//
// Components are read from a JSON file when given, otherwise from the
// configured store. Each requested format is written to <output>.<format>.
// Artifacts are cached by topology state, so re-rendering an unchanged
// inventory is a cache hit.
func newRenderCmd(cfgPath *string) *cobra.Command {
	var formatsStr string
	opts := renderOpts{output: "topology"}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the topology to SVG, PNG, DOT, or JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return runRender(cmd.Context(), *cfgPath, file, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output base path (format extension is appended)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

func runRender(ctx context.Context, cfgPath, file string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	components, err := loadComponents(ctx, cfg, file, logger)
	if err != nil {
		return err
	}
	if len(components) == 0 {
		printWarning("No components in inventory; rendering an empty canvas")
	}

	c, err := openCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if closer, ok := c.(io.Closer); ok {
		defer closer.Close()
	}

	prog := newProgress(logger)
	runner := pipeline.NewRunner(c, logger)
	result, err := runner.Execute(ctx, components, pipeline.Options{
		Formats: opts.formats,
		TTL:     cfg.Cache.TTL(),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	cached := true
	for _, format := range opts.formats {
		if !result.CacheInfo.Hits[format] {
			cached = false
		}
		path := opts.output + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, cached)

	return nil
}

// loadComponents reads the inventory from a JSON file, or from the
// configured store when no file is given.
func loadComponents(ctx context.Context, cfg *config.Config, file string, logger *log.Logger) ([]component.Component, error) {
	if file == "" {
		st, err := openStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		defer st.Close(ctx)
		return st.List(ctx)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	var components []component.Component
	if err := json.Unmarshal(data, &components); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", file)
	}
	for i := range components {
		if err := components[i].Validate(); err != nil {
			return nil, err
		}
	}
	return components, nil
}
