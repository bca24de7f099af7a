package cmd

import (
	"fmt"
	"os"

	"github.com/devlogdev/devlog/pkg/hook"
	"github.com/devlogdev/devlog/pkg/logger"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the git post-commit hook",
	Long: `Removes the devlog post-commit hook from the current repository.

If a .backup of a previous hook exists it is restored in place of the
removed hook. Hooks written by other tools are never removed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Running uninstall command")

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		result, err := hook.Uninstall(cwd)
		if err != nil {
			logger.Error("Hook uninstall failed: %v", err)
			return err
		}

		logger.Info("Hook removed from %s (backup restored: %v)", result.Path, result.RestoredBackup)
		fmt.Printf("✓ Hook removed from %s\n", result.Path)
		if result.RestoredBackup {
			fmt.Println("The previous hook was restored from its .backup copy.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
