package cli

import (
	"fmt"

	"github.com/shopx-dev/templatize/internal/extract"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewRootCommand(version string) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "templatize",
		Short: "Convert standalone storefront pages into template fragments",
		Long: `Templatize rewrites static HTML pages into child templates of a shared
layout. For each page it keeps the <title>, one local stylesheet, one local
script and the contents of <main>, and wraps them in
{% extends %} / {% block %} markers.

Originals are backed up to .templatize/backup/ and can be put back with
templatize restore.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	convertCmd := &cobra.Command{
		Use:   "convert [dir]",
		Short: "Rewrite pages in dir (default: current directory) into template fragments",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunConvert,
	}
	addRunFlags(convertCmd)
	convertCmd.Flags().Bool("no-backup", false, "Do not keep copies of the original pages")
	convertCmd.Flags().Int("jobs", 0, "Number of pages converted in parallel (default from config: 4)")
	convertCmd.Flags().Bool("dry-run", false, "Report what would change without writing")
	convertCmd.Flags().Bool("diff", false, "With --dry-run, print a diff of each rewrite")
	convertCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	statusCmd := &cobra.Command{
		Use:   "status [dir]",
		Short: "Show which pages are pending, converted or edited since conversion",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunStatus,
	}
	addRunFlags(statusCmd)
	statusCmd.Flags().Bool("json", false, "Print machine-readable status output")

	doctorCmd := &cobra.Command{
		Use:   "doctor [dir]",
		Short: "Check pages for malformed markup and the setup for missing pieces",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunDoctor,
	}
	doctorCmd.Flags().Bool("recursive", false, "Include pages in subdirectories")
	doctorCmd.Flags().Bool("json", false, "Print machine-readable doctor output")

	restoreCmd := &cobra.Command{
		Use:   "restore [page...]",
		Short: "Put back original pages from .templatize/backup/ (default: all converted pages)",
		RunE:  RunRestore,
	}
	restoreCmd.Flags().String("dir", ".", "Templates directory")
	restoreCmd.Flags().Bool("force", false, "Restore pages edited after conversion")
	restoreCmd.Flags().Bool("dry-run", false, "Report what would be restored without writing")
	restoreCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("templatize %s\n", version)
		},
	}

	rootCmd.AddCommand(
		convertCmd,
		statusCmd,
		doctorCmd,
		restoreCmd,
		versionCmd,
	)

	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("extractor", "", "Extraction strategy: "+extractorNames()+" (default from config: "+extract.DefaultExtractor+")")
	cmd.Flags().String("base", "", "Template the fragments extend (default from config: base.html)")
	cmd.Flags().String("default-title", "", "Title used for pages without <title>")
	cmd.Flags().Bool("recursive", false, "Include pages in subdirectories")
}

// logger is replaced by PersistentPreRunE; commands invoked directly (tests)
// log nowhere.
var logger = zap.NewNop()
