package migrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopx-dev/templatize/internal/diff"
	"github.com/shopx-dev/templatize/internal/fileutil"
	"github.com/shopx-dev/templatize/internal/page"
	"github.com/shopx-dev/templatize/internal/render"
	"github.com/shopx-dev/templatize/internal/state"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configure a Runner.
type Options struct {
	// Root is the templates directory; file paths are relative to it.
	Root      string
	Extractor page.Extractor
	Render    render.Options
	Backup    bool
	Jobs      int
	DryRun    bool
	// Diff attaches a preview of the rewrite to dry-run results.
	Diff bool
	// Force lets Restore overwrite pages edited after conversion.
	Force  bool
	Logger *zap.Logger
	// OnResult, when set, is called once per finished page. Calls are serialized.
	OnResult func(Result)
}

// Runner converts pages in place and keeps the state manifest current.
type Runner struct {
	opts  Options
	log   *zap.Logger
	state *state.State
	mu    sync.Mutex
}

func NewRunner(opts Options, st *state.State) *Runner {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if st == nil {
		st = state.NewState()
	}
	return &Runner{opts: opts, log: opts.Logger, state: st}
}

// State returns the manifest the runner records into.
func (r *Runner) State() *state.State {
	return r.state
}

// Run converts files concurrently. Results are returned in input order;
// per-file problems are reported in the results, not as the returned error.
func (r *Runner) Run(ctx context.Context, files []string) ([]Result, error) {
	if r.opts.Extractor == nil {
		return nil, fmt.Errorf("no extractor configured")
	}

	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Jobs)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.convert(file)
			r.report(results[i])
			return nil
		})
	}
	waitErr := g.Wait()

	// Pages rewritten before a cancellation still need their state entry, or
	// restore cannot find their backups.
	if !r.opts.DryRun && Counts(results)[OutcomeUpdated] > 0 {
		if err := r.state.Save(state.Dir(r.opts.Root)); err != nil {
			return results, errors.Join(waitErr, fmt.Errorf("failed to persist state: %w", err))
		}
	}
	if waitErr != nil {
		return completed(results), waitErr
	}
	return results, nil
}

// completed drops the slots of pages that never ran, keeping input order.
func completed(results []Result) []Result {
	out := make([]Result, 0, len(results))
	for _, res := range results {
		if res.Outcome != "" {
			out = append(out, res)
		}
	}
	return out
}

func (r *Runner) convert(file string) Result {
	result := Result{Path: file}
	absPath := filepath.Join(r.opts.Root, filepath.FromSlash(file))

	content, err := os.ReadFile(absPath)
	if err != nil {
		return r.errorResult(result, fmt.Errorf("failed to read %s: %w", file, err))
	}

	if render.IsTemplated(content) {
		result.Outcome = OutcomeSkipped
		result.Reason = "already a template"
		r.log.Debug("skipping templated page", zap.String("path", file))
		return result
	}

	p, err := r.opts.Extractor.Extract(content)
	if err != nil {
		if errors.Is(err, page.ErrNoMain) {
			result.Outcome = OutcomeFailed
			result.Reason = page.ErrNoMain.Error()
			r.log.Warn("page has no main element", zap.String("path", file))
			return result
		}
		return r.errorResult(result, fmt.Errorf("failed to extract %s: %w", file, err))
	}
	result.Title = p.Title
	result.Stylesheet = p.Stylesheet
	result.Script = p.Script

	output := render.Fragment(p, r.opts.Render)

	if r.opts.DryRun {
		result.Outcome = OutcomeUpdated
		if r.opts.Diff {
			result.Diff, _ = diff.Unified(file, string(content), output, 3, diff.MaxDiffLines)
		}
		return result
	}

	if r.opts.Backup {
		backupRel := filepath.ToSlash(filepath.Join(state.BackupDir, file))
		backupPath := filepath.Join(state.Dir(r.opts.Root), filepath.FromSlash(backupRel))
		if err := fileutil.CopyFile(absPath, backupPath); err != nil {
			return r.errorResult(result, fmt.Errorf("failed to back up %s: %w", file, err))
		}
		result.Backup = backupRel
	}

	if _, err := fileutil.WriteIfChangedTracked(absPath, []byte(output)); err != nil {
		return r.errorResult(result, fmt.Errorf("failed to write %s: %w", file, err))
	}

	r.mu.Lock()
	r.state.Record(file, state.FileState{
		SourceHash: fileutil.HashBytes(content),
		OutputHash: fileutil.HashBytes([]byte(output)),
		Backup:     result.Backup,
		Extractor:  r.opts.Extractor.Name(),
	})
	r.mu.Unlock()

	result.Outcome = OutcomeUpdated
	r.log.Debug("converted page",
		zap.String("path", file),
		zap.String("extractor", r.opts.Extractor.Name()),
		zap.Bool("stylesheet", p.Stylesheet != ""),
		zap.Bool("script", p.Script != ""),
	)
	return result
}

func (r *Runner) report(result Result) {
	if r.opts.OnResult == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.OnResult(result)
}

func (r *Runner) errorResult(result Result, err error) Result {
	result.Outcome = OutcomeError
	result.Reason = err.Error()
	result.Err = err
	r.log.Error("conversion error", zap.String("path", result.Path), zap.Error(err))
	return result
}
