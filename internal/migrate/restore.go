package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopx-dev/templatize/internal/fileutil"
	"github.com/shopx-dev/templatize/internal/state"
	"go.uber.org/zap"
)

// Restore puts backed-up originals back in place. With no files it restores
// every page recorded in state. Restores run sequentially.
func (r *Runner) Restore(ctx context.Context, files []string) ([]Result, error) {
	if len(files) == 0 {
		files = r.state.Paths()
	}

	results := make([]Result, 0, len(files))
	restored := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := r.restoreOne(file)
		r.report(res)
		if res.Outcome == OutcomeRestored {
			restored++
		}
		results = append(results, res)
	}

	if restored > 0 && !r.opts.DryRun {
		if err := r.state.Save(state.Dir(r.opts.Root)); err != nil {
			return results, fmt.Errorf("failed to persist state: %w", err)
		}
	}
	return results, nil
}

func (r *Runner) restoreOne(file string) Result {
	result := Result{Path: file}
	fs, ok := r.state.Get(file)
	if !ok {
		result.Outcome = OutcomeSkipped
		result.Reason = "not converted"
		return result
	}
	if fs.Backup == "" {
		result.Outcome = OutcomeFailed
		result.Reason = "no backup recorded"
		return result
	}
	result.Backup = fs.Backup

	absPath := filepath.Join(r.opts.Root, filepath.FromSlash(file))
	backupPath := filepath.Join(state.Dir(r.opts.Root), filepath.FromSlash(fs.Backup))

	if _, err := os.Stat(backupPath); err != nil {
		result.Outcome = OutcomeFailed
		result.Reason = "backup missing"
		return result
	}

	if current, err := fileutil.HashFile(absPath); err == nil {
		if r.state.Status(file, current) == state.StatusModified && !r.opts.Force {
			result.Outcome = OutcomeFailed
			result.Reason = "modified since conversion (use --force)"
			return result
		}
	} else if !os.IsNotExist(err) {
		return r.errorResult(result, fmt.Errorf("failed to read %s: %w", file, err))
	}

	if r.opts.DryRun {
		result.Outcome = OutcomeRestored
		return result
	}

	if err := fileutil.CopyFile(backupPath, absPath); err != nil {
		return r.errorResult(result, fmt.Errorf("failed to restore %s: %w", file, err))
	}
	if err := os.Remove(backupPath); err != nil {
		r.log.Warn("failed to remove backup", zap.String("backup", backupPath), zap.Error(err))
	}
	r.state.Forget(file)

	result.Outcome = OutcomeRestored
	r.log.Debug("restored page", zap.String("path", file))
	return result
}
