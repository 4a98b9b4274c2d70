package cli

import (
	"fmt"
	"strings"

	"github.com/shopx-dev/templatize/internal/config"
	"github.com/shopx-dev/templatize/internal/extract"
	"github.com/shopx-dev/templatize/internal/page"
	"github.com/spf13/cobra"
)

func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

func OptionalBoolFlag(cmd *cobra.Command, name string, fallback bool) (bool, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return fallback, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return fallback, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

func OptionalIntFlag(cmd *cobra.Command, name string, fallback int) (int, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return fallback, nil
	}
	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		return fallback, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

// LoadRunConfig reads the config file in rootPath and applies any flags the
// user set on cmd.
func LoadRunConfig(cmd *cobra.Command, rootPath string) (*config.Config, error) {
	cfg, err := config.Load(rootPath)
	if err != nil {
		return nil, err
	}

	if value, err := OptionalStringFlag(cmd, "extractor"); err != nil {
		return nil, err
	} else if value != "" {
		cfg.Extractor = value
	}
	if value, err := OptionalStringFlag(cmd, "base"); err != nil {
		return nil, err
	} else if value != "" {
		cfg.BaseTemplate = value
	}
	if value, err := OptionalStringFlag(cmd, "default-title"); err != nil {
		return nil, err
	} else if value != "" {
		cfg.DefaultTitle = value
	}
	if flagChanged(cmd, "recursive") {
		if cfg.Recursive, err = OptionalBoolFlag(cmd, "recursive", cfg.Recursive); err != nil {
			return nil, err
		}
	}
	if noBackup, err := OptionalBoolFlag(cmd, "no-backup", false); err != nil {
		return nil, err
	} else if noBackup {
		cfg.Backup = false
	}
	if flagChanged(cmd, "jobs") {
		if cfg.Jobs, err = OptionalIntFlag(cmd, "jobs", cfg.Jobs); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ParseExtractor(name string) (page.Extractor, error) {
	return extract.NewDefaultRegistry().Get(name)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

func extractorNames() string {
	return strings.Join(extract.NewDefaultRegistry().Names(), "|")
}
