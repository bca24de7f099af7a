package cmd

import (
	"fmt"
	"os"

	"github.com/devlogdev/devlog/pkg/config"
	"github.com/devlogdev/devlog/pkg/git"
	"github.com/devlogdev/devlog/pkg/hook"
	devloghttp "github.com/devlogdev/devlog/pkg/http"
	"github.com/devlogdev/devlog/pkg/logger"
	"github.com/devlogdev/devlog/pkg/utils"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show devlog status",
	Long:  `Displays configuration, hook installation, and API key status.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Running status command")

		fmt.Println("=== Devlog: Status ===")
		fmt.Println()

		path, err := config.Path()
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			logger.Error("Failed to load config: %v", err)
			return err
		}

		fmt.Println("Configuration:")
		fmt.Printf("  File: %s\n", path)
		if cfg.APIKey != "" {
			fmt.Printf("  API key: %s\n", utils.TruncateSecret(cfg.APIKey, 8, 0))
		} else {
			fmt.Println("  API key: ✗ Not configured")
		}
		fmt.Printf("  Base URL: %s\n", cfg.ResolveBaseURL())
		fmt.Printf("  Include commit hash: %v\n", cfg.IsCommitHashEnabled())
		fmt.Printf("  Include date: %v\n", cfg.IsDateEnabled())

		fmt.Println()

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		if git.IsRepository(cwd) {
			if hook.Installed(cwd) {
				fmt.Println("Hook: ✓ Installed in this repository")
			} else {
				fmt.Println("Hook: ✗ Not installed (run 'devlog install')")
			}
		} else {
			fmt.Println("Hook: not inside a git repository")
		}

		fmt.Println()

		if cfg.APIKey == "" {
			fmt.Println("Run 'devlog config' to get started.")
			return nil
		}

		// Reachability problems are reported inline; status itself
		// always exits zero.
		fmt.Print("Validating API key... ")
		if err := verifyAPIKey(cfg); err != nil {
			logger.Error("API key validation failed: %v", err)
			fmt.Println("✗ Invalid")
			fmt.Printf("  Error: %v\n", err)
			fmt.Println("  Run 'devlog config' to update it")
		} else {
			logger.Info("API key is valid")
			fmt.Println("✓ Valid")
		}

		return nil
	},
}

// verifyAPIKey checks if the API key is valid by calling the service
func verifyAPIKey(cfg *config.Config) error {
	client, err := devloghttp.NewClient(cfg, utils.DefaultHTTPTimeout)
	if err != nil {
		return fmt.Errorf("failed to create http client: %w", err)
	}

	var result map[string]interface{}
	if err := client.Get("/api/auth/verify", &result); err != nil {
		return err
	}

	if valid, ok := result["valid"].(bool); !ok || !valid {
		return fmt.Errorf("api key is not valid")
	}

	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
