package build

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/bennywwg/autoreflect/internal/clangdump"
	"github.com/bennywwg/autoreflect/internal/gen"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Driver is the Build Driver (spec.md §4.7): it fans per-unit work out
// across a bounded worker pool, merges results into one global set under a
// single mutex, and assembles the final aggregate output.
type Driver struct {
	Dump   *clangdump.Driver
	Logger *log.Logger
}

func (d *Driver) dumpDriver() *clangdump.Driver {
	if d.Dump != nil {
		return d.Dump
	}
	return &clangdump.Driver{}
}

func (d *Driver) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

// Result is everything the Build Driver produces: the merged global set,
// per-unit error lists, and merge conflicts.
type Result struct {
	Global         *gen.Set
	UnitErrors     map[string][]string
	ConflictErrors []string
}

// Run executes spec.md §4.7/§4.8/§5 over cfg.FilesToParse, then rewrites
// the main-impl aggregate if anything was stale.
func (d *Driver) Run(ctx context.Context, cfg Config) (*Result, error) {
	result := &Result{
		Global:     gen.NewSet(),
		UnitErrors: make(map[string][]string),
	}

	var (
		mu        sync.Mutex
		anyStale  atomic.Bool
		resultsMu sync.Mutex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, unitPath := range cfg.FilesToParse {
		unitPath := unitPath
		g.Go(func() error {
			set, unitErrs, stale := d.processUnit(gctx, cfg, unitPath)
			if stale {
				anyStale.Store(true)
			}
			if set == nil {
				return nil // skipped: this unit was the main-impl output itself
			}

			if !cfg.Silent {
				d.logger().Info("processed unit", "unit", unitPath, "stale", stale, "types", len(set.Generators))
			}

			mu.Lock()
			conflicts := merge(result.Global, set)
			mu.Unlock()

			resultsMu.Lock()
			if len(unitErrs) > 0 {
				result.UnitErrors[unitPath] = unitErrs
			}
			for _, c := range conflicts {
				d.logger().Warn("merge conflict", "type", c, "unit", unitPath)
				result.ConflictErrors = append(result.ConflictErrors, c)
			}
			resultsMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	if anyStale.Load() {
		if err := assembleMainImpl(cfg.MainImplPath+GenSuffix, result.Global); err != nil {
			return result, err
		}
	}

	return result, nil
}
