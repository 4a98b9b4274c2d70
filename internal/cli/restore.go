package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/shopx-dev/templatize/internal/migrate"
	"github.com/spf13/cobra"
)

func RunRestore(cmd *cobra.Command, args []string) error {
	start := time.Now()
	dir, err := OptionalStringFlag(cmd, "dir")
	if err != nil {
		return err
	}
	var rootArgs []string
	if dir != "" {
		rootArgs = []string{dir}
	}
	rootPath, err := resolveRoot(rootArgs)
	if err != nil {
		return err
	}
	force, err := OptionalBoolFlag(cmd, "force", false)
	if err != nil {
		return err
	}
	dryRun, err := OptionalBoolFlag(cmd, "dry-run", false)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	st, corrupt, err := loadState(rootPath)
	if err != nil {
		return err
	}
	if corrupt {
		return fmt.Errorf("cannot restore: state file is corrupt")
	}

	pages := make([]string, 0, len(args))
	for _, arg := range args {
		pages = append(pages, filepath.ToSlash(filepath.Clean(arg)))
	}

	runner := migrate.NewRunner(migrate.Options{
		Root:   rootPath,
		Force:  force,
		DryRun: dryRun,
		Logger: logger,
	}, st)
	results, err := runner.Restore(commandContext(cmd), pages)
	if err != nil {
		return err
	}

	summary := NewRunSummary("restore", rootPath, results)
	summary.DryRun = dryRun
	summary.DurationMS = time.Since(start).Milliseconds()
	if err := PrintRunSummary(summary, asJSON); err != nil {
		return err
	}
	if migrate.HasErrors(results) {
		return fmt.Errorf("%d page(s) could not be restored", summary.Errors)
	}
	return nil
}
