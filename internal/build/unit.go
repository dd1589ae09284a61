package build

import (
	"context"
	"os"

	"github.com/bennywwg/autoreflect/internal/astdump"
	"github.com/bennywwg/autoreflect/internal/clangdump"
	"github.com/bennywwg/autoreflect/internal/gen"
	"github.com/bennywwg/autoreflect/internal/gencache"
	"github.com/bennywwg/autoreflect/internal/reflectwalk"
)

// processUnit runs spec.md §4.7 steps 1-5 for a single translation unit.
// stale reports whether the global "any-stale" flag should be raised.
func (d *Driver) processUnit(ctx context.Context, cfg Config, unitPath string) (set *gen.Set, unitErrs []string, stale bool) {
	out := outputPath(unitPath)
	if out == cfg.MainImplPath+GenSuffix {
		return nil, nil, false // skip: this unit IS the expected main-impl output
	}

	headers := d.headerList(ctx, cfg, unitPath)
	stale = isStale(unitPath, out, headers)

	if stale {
		if err := os.WriteFile(out, []byte(StubContents), 0o644); err != nil {
			d.logger().Error("stub write failed", "unit", unitPath, "err", err)
			unitErrs = append(unitErrs, err.Error())
		}
	}

	if !stale {
		if cached, ok := gencache.Load(unitPath); ok {
			return cached, nil, false
		}
	}

	set, unitErrs2 := d.generate(ctx, cfg, unitPath)
	unitErrs = append(unitErrs, unitErrs2...)
	if err := gencache.Save(unitPath, set); err != nil {
		d.logger().Warn("cache save failed", "unit", unitPath, "err", err)
	}

	if stale {
		if err := d.writeUnitOutput(out, set); err != nil {
			d.logger().Error("unit output write failed", "unit", unitPath, "err", err)
			unitErrs = append(unitErrs, err.Error())
		}
	}

	return set, unitErrs, stale
}

// headerList fetches and filesystem-filters unitPath's transitive header
// set via the Dump Driver's HeaderList mode.
func (d *Driver) headerList(ctx context.Context, cfg Config, unitPath string) []string {
	var lines []string
	err := d.dumpDriver().Run(ctx, unitPath, cfg.IncludeDirs, clangdump.HeaderList, func(l string) {
		lines = append(lines, l)
	})
	if err != nil {
		d.logger().Warn("header list fetch failed", "unit", unitPath, "err", err)
		return nil
	}
	return d.dumpDriver().ParseHeaderList(lines)
}

// generate runs the AST Builder, Scope Walker, and Generator for unitPath:
// spec.md §4.7 step 4(b).
func (d *Driver) generate(ctx context.Context, cfg Config, unitPath string) (*gen.Set, []string) {
	b := astdump.NewBuilder()
	err := d.dumpDriver().Run(ctx, unitPath, cfg.IncludeDirs, clangdump.AstDump, func(l string) {
		b.AddLine(l)
	})
	if err != nil {
		return gen.NewSet(), []string{err.Error()}
	}
	tree, ok := b.Finish()
	if !ok {
		return gen.NewSet(), nil
	}
	return reflectwalk.Walk(tree)
}

// writeUnitOutput implements spec.md §4.7 step 5: #pragma once, the
// runtime include, then each generator in the set (ForwardDecl mode if
// non-template, Regular mode otherwise), then the fixed
// template-implementations snippet.
func (d *Driver) writeUnitOutput(outPath string, set *gen.Set) error {
	var body string
	body += "#pragma once\n"
	body += RuntimeDeclInclude
	for _, name := range set.SortedGeneratorNames() {
		g := set.Generators[name]
		var (
			text string
			err  error
		)
		if _, isNonTemplate := set.NonTemplateTypes[name]; isNonTemplate {
			text, err = gen.Render(g, gen.ForwardDecl)
		} else {
			text, err = gen.Render(g, gen.Regular)
		}
		if err != nil {
			return err
		}
		body += text
	}
	body += TemplateImplementationsSnippet
	return os.WriteFile(outPath, []byte(body), 0o644)
}
