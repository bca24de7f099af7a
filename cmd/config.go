package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/devlogdev/devlog/pkg/config"
	"github.com/devlogdev/devlog/pkg/logger"
	"github.com/devlogdev/devlog/pkg/prompt"
	"github.com/devlogdev/devlog/pkg/utils"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure the API key and logging options",
	Long: `Interactively configures devlog.

Asks for the API key, the API base URL, and whether entries should carry
the commit hash and the current date. Press Enter at any prompt to keep
the current value.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigure(os.Stdin, os.Stdout)
	},
}

// runConfigure walks the user through every config field and saves the
// result. Reads answers from in so tests can pipe them.
func runConfigure(in io.Reader, out io.Writer) error {
	logger.Info("Running config command")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	p := prompt.New(in, out)

	fmt.Fprintln(out, "=== Devlog: Configuration ===")
	fmt.Fprintln(out)

	keyLabel := "API key"
	if cfg.APIKey != "" {
		keyLabel = fmt.Sprintf("API key [%s]", utils.TruncateSecret(cfg.APIKey, 8, 0))
	}
	cfg.APIKey = p.Secret(keyLabel, cfg.APIKey)
	if err := config.ValidateAPIKey(cfg.APIKey); err != nil {
		return fmt.Errorf("invalid API key: %w", err)
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("an API key is required. Get one from your devlog server and rerun 'devlog config'")
	}

	// An empty answer keeps BaseURL as-is, so an unset URL stays unset
	// and keeps tracking the default.
	cfg.BaseURL = p.Line(fmt.Sprintf("API base URL [%s]", cfg.ResolveBaseURL()), cfg.BaseURL)
	if err := config.ValidateBaseURL(cfg.BaseURL); err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}

	// Preference prompts always default to yes; only an explicit n disables.
	includeHash := p.YesNo("Include the commit hash in entries?", true)
	cfg.IncludeCommitHash = &includeHash

	includeDate := p.YesNo("Attach the current date to entries?", true)
	cfg.IncludeDate = &includeDate

	if err := cfg.Save(); err != nil {
		logger.Error("Failed to save config: %v", err)
		return fmt.Errorf("failed to save config: %w", err)
	}

	path, err := config.Path()
	if err != nil {
		return err
	}

	logger.Info("Config saved to %s", path)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "✓ Configuration saved to %s\n", path)
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(os.Stdout)
	},
}

// runConfigShow prints the effective configuration, with the API key in
// its truncated display form.
func runConfigShow(out io.Writer) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "File: %s\n", path)
	if cfg.APIKey != "" {
		fmt.Fprintf(out, "API key: %s\n", utils.TruncateSecret(cfg.APIKey, 8, 0))
	} else {
		fmt.Fprintln(out, "API key: ✗ Not configured")
	}
	fmt.Fprintf(out, "Base URL: %s\n", cfg.ResolveBaseURL())
	fmt.Fprintf(out, "Include commit hash: %v\n", cfg.IsCommitHashEnabled())
	fmt.Fprintf(out, "Include date: %v\n", cfg.IsDateEnabled())

	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}
