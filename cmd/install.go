package cmd

import (
	"fmt"
	"os"

	"github.com/devlogdev/devlog/pkg/hook"
	"github.com/devlogdev/devlog/pkg/logger"
	"github.com/spf13/cobra"
)

var installForce bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the git post-commit hook",
	Long: `Installs a post-commit hook in the current repository that records
every commit to your devlog.

A hook written by another tool is never touched unless --force is given,
in which case the old hook is kept next to the new one with a .backup
suffix.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	logger.Info("Running install command")

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	result, err := hook.Install(cwd, installForce)
	if err != nil {
		logger.Error("Hook install failed: %v", err)
		return err
	}

	if result.AlreadyInstalled {
		logger.Info("Hook already installed at %s", result.Path)
		fmt.Printf("Devlog hook already installed at %s\n", result.Path)
		fmt.Println("Rerun with --force to overwrite it.")
		return nil
	}

	if result.BackupPath != "" {
		logger.Info("Existing hook backed up to %s", result.BackupPath)
		fmt.Printf("Existing hook saved to %s\n", result.BackupPath)
	}

	logger.Info("Hook installed at %s", result.Path)
	fmt.Printf("✓ Hook installed at %s\n", result.Path)
	fmt.Println()
	fmt.Println("Every commit in this repository is now recorded to your devlog.")
	fmt.Println("Run 'devlog uninstall' to remove the hook.")
	return nil
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().BoolVar(&installForce, "force", false, "replace an existing hook (a .backup copy is kept)")
}
