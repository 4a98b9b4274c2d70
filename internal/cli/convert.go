package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/shopx-dev/templatize/internal/fileutil"
	"github.com/shopx-dev/templatize/internal/migrate"
	"github.com/shopx-dev/templatize/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func RunConvert(cmd *cobra.Command, args []string) error {
	start := time.Now()
	rootPath, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := LoadRunConfig(cmd, rootPath)
	if err != nil {
		return err
	}
	extractor, err := ParseExtractor(cfg.Extractor)
	if err != nil {
		return err
	}
	dryRun, err := OptionalBoolFlag(cmd, "dry-run", false)
	if err != nil {
		return err
	}
	showDiff, err := OptionalBoolFlag(cmd, "diff", false)
	if err != nil {
		return err
	}
	if showDiff && !dryRun {
		return fmt.Errorf("--diff requires --dry-run")
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	matcher, err := buildMatcher(rootPath, cfg.Exclude)
	if err != nil {
		return err
	}
	files, err := fileutil.ScanTemplates(rootPath, matcher, cfg.Recursive)
	if err != nil {
		return fmt.Errorf("failed to scan pages: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("no pages found", zap.String("root", rootPath), zap.Bool("recursive", cfg.Recursive))
	}

	st, _, err := loadState(rootPath)
	if err != nil {
		return err
	}

	progress := newProgressReporter("convert", len(files), asJSON)
	runner := migrate.NewRunner(migrate.Options{
		Root:      rootPath,
		Extractor: extractor,
		Render: render.Options{
			BaseTemplate: cfg.BaseTemplate,
			DefaultTitle: cfg.DefaultTitle,
		},
		Backup:   cfg.Backup,
		Jobs:     cfg.Jobs,
		DryRun:   dryRun,
		Diff:     showDiff,
		Logger:   logger,
		OnResult: progress.Observe,
	}, st)

	results, err := runner.Run(commandContext(cmd), files)
	progress.Done()
	if err != nil {
		if len(results) == 0 {
			return err
		}
		logger.Warn("convert interrupted", zap.Int("finished", len(results)), zap.Int("total", len(files)))
	}

	summary := NewRunSummary("convert", rootPath, results)
	summary.Extractor = extractor.Name()
	summary.DryRun = dryRun
	summary.DurationMS = time.Since(start).Milliseconds()
	if printErr := PrintRunSummary(summary, asJSON); printErr != nil {
		return printErr
	}
	if err != nil {
		return err
	}
	if migrate.HasErrors(results) {
		return fmt.Errorf("%d page(s) could not be converted", summary.Errors)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
