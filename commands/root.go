package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mouseminder/mouseminder/internal/config"
	"github.com/mouseminder/mouseminder/internal/core/hotkey"
	"github.com/mouseminder/mouseminder/internal/core/minder"
	"github.com/mouseminder/mouseminder/internal/util"
)

var (
	// Hotkey and timing
	hotkeySpec    string
	pollInterval  time.Duration
	idleThreshold time.Duration

	// Files
	configPath string
	logFile    string

	// Mode
	debug    bool
	headless bool

	rootCmd = &cobra.Command{
		Use:   "mouseminder [flags]",
		Short: "Snap the cursor back to its last resting spot",
		Long: `mouseminder watches the mouse in the background. Whenever the cursor
holds still for the idle threshold, that position is saved; pressing the
global hotkey warps the cursor back to it.

Examples:
  mouseminder                                  # Run with default settings
  mouseminder --hotkey ctrl+alt+m              # Use a different restore hotkey
  mouseminder --idle-threshold 3s              # Require 3 seconds of stillness
  mouseminder --headless --debug               # No status screen, log to stderr

While running: the hotkey restores from any application. On the status
screen, p pauses tracking, r restores, c clears the saved position and
q quits. Editing the config file rebinds the hotkey without a restart.`,
		RunE: runMinder,
	}
)

const (
	defaultLogFile    = "~/.mouseminder/logs/app.log"
	defaultConfigFile = "~/.mouseminder/config.json"
)

func init() {
	rootCmd.Flags().StringVar(&hotkeySpec, "hotkey", "",
		"Global restore hotkey (e.g. ctrl+shift+r, cmd+shift+r)")
	rootCmd.Flags().DurationVar(&pollInterval, "poll-interval", 0,
		"Mouse polling cadence (default 50ms)")
	rootCmd.Flags().DurationVar(&idleThreshold, "idle-threshold", 0,
		"Stillness required before a position is saved (default 2s)")

	rootCmd.Flags().StringVar(&configPath, "config", defaultConfigFile,
		"Preference file path")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.Flags().BoolVar(&headless, "headless", false,
		"Run without the terminal status screen")
}

func runMinder(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logPath := expandPath(logFile)
	if err := ensureDir(filepath.Dir(logPath)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, logPath, debug)

	cfgPath := expandPath(configPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Flags override the preference file.
	if cmd.Flags().Changed("hotkey") {
		cfg.Hotkey = hotkeySpec
	}
	if cmd.Flags().Changed("poll-interval") {
		cfg.PollIntervalMS = int(pollInterval / time.Millisecond)
	}
	if cmd.Flags().Changed("idle-threshold") {
		cfg.IdleThresholdMS = int(idleThreshold / time.Millisecond)
	}

	binding, err := hotkey.Parse(cfg.Hotkey)
	if err != nil {
		return err
	}

	// Write the file back so the rebind watcher always has a file to watch
	// and external settings editors see the effective values.
	if err := config.Save(cfgPath, cfg); err != nil {
		util.LogWarnf("Could not persist preferences: %v", err)
	}

	manager := minder.New(&minder.Config{
		Binding:       binding,
		PollInterval:  cfg.PollInterval(),
		IdleThreshold: cfg.IdleThreshold(),
		Headless:      headless,
		ConfigPath:    cfgPath,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	return manager.Run(ctx)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
