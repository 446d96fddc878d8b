package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gridsmith/gridview/pkg/cache"
	"github.com/gridsmith/gridview/pkg/component"
	"github.com/gridsmith/gridview/pkg/observability"
	"github.com/gridsmith/gridview/pkg/render"
	"github.com/gridsmith/gridview/pkg/topology"
)

// Runner executes the reconcile → render pipeline with artifact caching.
//
// The Runner is stateless except for the cache and logger: every Execute
// builds a fresh topology view, so runs never inherit positions from each
// other. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute reconciles the snapshot and renders the requested formats.
func (r *Runner) Execute(ctx context.Context, components []component.Component, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	// Stage 1: Reconcile
	start := time.Now()
	observability.Topology().OnReconcileStart(ctx, len(components))
	view := topology.NewView(nil)
	view.SetComponents(components)
	st := view.State()

	stateJSON, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode view state: %w", err)
	}

	result := &Result{
		State:     st,
		StateHash: cache.Hash(stateJSON),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheInfo: CacheInfo{Hits: make(map[string]bool, len(opts.Formats))},
	}
	result.Stats.NodeCount = len(st.Nodes)
	result.Stats.EdgeCount = len(st.Edges)
	result.Stats.ReconcileTime = time.Since(start)
	observability.Topology().OnReconcileComplete(ctx, result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.ReconcileTime)
	logger.Debug("reconciled snapshot", "nodes", result.Stats.NodeCount, "edges", result.Stats.EdgeCount)

	// Stage 2: Render
	start = time.Now()
	observability.Topology().OnRenderStart(ctx, opts.Formats)
	for _, format := range opts.Formats {
		key := cache.Key("artifact", format, result.StateHash)
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "artifact")
			result.Artifacts[format] = data
			result.CacheInfo.Hits[format] = true
			logger.Debug("artifact cache hit", "format", format)
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")

		data, err := r.renderFormat(ctx, st, stateJSON, format)
		if err != nil {
			observability.Topology().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			logger.Warn("artifact cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	result.Stats.RenderTime = time.Since(start)
	observability.Topology().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	return result, nil
}

func (r *Runner) renderFormat(ctx context.Context, st topology.ViewState, stateJSON []byte, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return stateJSON, nil
	case FormatDOT:
		return []byte(render.ToDOT(st)), nil
	case FormatSVG:
		return render.SVG(ctx, render.ToDOT(st))
	case FormatPNG:
		return render.PNG(ctx, render.ToDOT(st))
	}
	// Unreachable after ValidateAndSetDefaults.
	return nil, fmt.Errorf("unknown format %q", format)
}
