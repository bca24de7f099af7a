package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/devlogdev/devlog/pkg/api"
	"github.com/devlogdev/devlog/pkg/config"
	"github.com/devlogdev/devlog/pkg/entry"
	"github.com/devlogdev/devlog/pkg/git"
	devloghttp "github.com/devlogdev/devlog/pkg/http"
	"github.com/devlogdev/devlog/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "devlog",
	Short: "Record your development activity to a devlog",
	Long: `Devlog records what you are working on to a remote devlog service.

Run it with no arguments to log the last commit of the current repository,
or use 'devlog log' for free-form notes. 'devlog install' adds a git
post-commit hook so every commit is logged automatically.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize logger for all commands (except --help which doesn't run this)
		logger.Init()
		// Apply log level from config
		if cfg, err := config.Load(); err == nil {
			cfg.ApplyLogLevel()
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Close logger after all commands
		logger.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return logLastCommit()
	},
}

// logLastCommit records the most recent commit of the repository in the
// current working directory. This is the default action when devlog is
// run without arguments, and what the post-commit hook invokes.
func logLastCommit() error {
	logger.Info("Logging last commit")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.EnsureConfigured(); err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	message, err := git.LastCommitMessage(cwd)
	if err != nil {
		logger.Error("Failed to read last commit message: %v", err)
		return err
	}

	// The hash is decoration. When git can't produce one the entry goes
	// out without a prefix rather than failing.
	hash := ""
	if cfg.IsCommitHashEnabled() {
		hash = git.LastCommitHash(cwd)
	}

	text := entry.Format(message, hash, cfg.IsCommitHashEnabled())
	date, err := entry.ResolveDate("", cfg.IsDateEnabled(), time.Now())
	if err != nil {
		return err
	}

	return submitEntry(cfg, text, date)
}

// submitEntry posts one formatted entry to the devlog service and prints
// the outcome. Shared by the default action and the log command.
func submitEntry(cfg *config.Config, text, date string) error {
	client, err := api.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create api client: %w", err)
	}

	logger.Info("Appending entry (%d bytes, date=%q)", len(text), date)
	resp, err := client.Append(text, date)
	if err != nil {
		logger.Error("Append failed: %v", err)
		if errors.Is(err, devloghttp.ErrUnauthorized) {
			return fmt.Errorf("%w\n\nRun 'devlog config' to update your API key", err)
		}
		return err
	}

	if resp.Message != "" {
		fmt.Printf("✓ %s\n", resp.Message)
	} else {
		fmt.Println("✓ Logged to devlog")
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
