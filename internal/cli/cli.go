// Package cli implements the cardfan command-line interface.
//
// Commands:
//   - layout: print the transforms a fan computes for N cards
//   - simulate: run a headless fan on a virtual clock and report lifecycle stats
//   - tui: drive a fan interactively in the terminal
//   - demo: open a window with a playable card fan
//   - serve: expose layout over HTTP
//   - config: write and inspect the configuration file
//   - cache: manage the layout cache
//
// All commands accept --verbose (-v) for debug logging and --config to
// select a configuration file.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardfan/internal/config"
	"github.com/matzehuels/cardfan/pkg/buildinfo"
	"github.com/matzehuels/cardfan/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "cardfan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Cardfan lays out and animates fans of cards",
		Long:         `Cardfan arranges an ordered collection of cards along a line or an arc and animates them as cards are added, removed, reordered and dragged.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/cardfan/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("Loaded config", "path", c.configPath, "spacing", cfg.Fan.Spacing, "min_radius", cfg.Fan.MinRadius)
	return cfg, nil
}

// newCache opens the layout cache, falling back to no caching when the
// directory is unavailable.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("Layout cache unavailable", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/cardfan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
