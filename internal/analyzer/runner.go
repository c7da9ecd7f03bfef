package analyzer

import (
	"context"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"pyvet/internal/cache"
	"pyvet/internal/diag"
	"pyvet/internal/rules"
)

// Options configure a scan across many files.
type Options struct {
	// Jobs caps concurrent file analyses. Zero or less means one worker
	// per CPU.
	Jobs int
	// Rules is the rule set to apply. Nil means the built-in registry.
	Rules []rules.Rule
	// Cache reuses findings for unchanged file contents. Nil disables
	// reuse.
	Cache *cache.Cache
}

// Summary is the outcome of a scan.
type Summary struct {
	Diagnostics []diag.Diagnostic
	Files       int
	Skipped     int
	CacheHits   int
}

// Run analyzes paths concurrently and returns the findings ordered by the
// input path order. Unreadable files are logged and skipped; only context
// cancellation aborts the scan.
func Run(ctx context.Context, paths []string, opts Options) (*Summary, error) {
	ruleset := opts.Rules
	if ruleset == nil {
		ruleset = rules.Registry()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if len(paths) > 0 && jobs > len(paths) {
		jobs = len(paths)
	}

	type result struct {
		diags   []diag.Diagnostic
		skipped bool
		hit     bool
	}
	// Workers write disjoint slots, so the slice needs no lock and the
	// output order never depends on scheduling.
	results := make([]result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("skipping unreadable file", "path", path, "err", err)
				results[i].skipped = true
				return nil
			}

			var key string
			if opts.Cache != nil {
				key = opts.Cache.Key(src)
				if diags, ok := opts.Cache.Get(key, path); ok {
					results[i] = result{diags: diags, hit: true}
					return nil
				}
			}

			diags, err := AnalyzeSource(ctx, path, src, ruleset)
			if err != nil {
				return err
			}
			if opts.Cache != nil {
				opts.Cache.Put(key, diags)
			}
			results[i].diags = diags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := &Summary{}
	for _, res := range results {
		if res.skipped {
			sum.Skipped++
			continue
		}
		sum.Files++
		if res.hit {
			sum.CacheHits++
		}
		sum.Diagnostics = append(sum.Diagnostics, res.diags...)
	}
	return sum, nil
}
