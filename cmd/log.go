package cmd

import (
	"time"

	"github.com/devlogdev/devlog/pkg/config"
	"github.com/devlogdev/devlog/pkg/entry"
	"github.com/devlogdev/devlog/pkg/logger"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log \"<message>\" [date]",
	Short: "Record a free-form note",
	Long: `Records a note to your devlog without touching git.

The note is sent exactly as written, with no commit hash prefix. The
optional date must be YYYY-MM-DD and overrides today's date.

Examples:
  devlog log "Reviewed the migration plan"
  devlog log "Debugged flaky CI with Sam" 2025-01-01`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		explicitDate := ""
		if len(args) == 2 {
			explicitDate = args[1]
		}
		return logNote(args[0], explicitDate)
	},
}

// logNote records a free-form note with an optional explicit date.
func logNote(message, explicitDate string) error {
	logger.Info("Logging free-form note")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.EnsureConfigured(); err != nil {
		return err
	}

	date, err := entry.ResolveDate(explicitDate, cfg.IsDateEnabled(), time.Now())
	if err != nil {
		return err
	}

	return submitEntry(cfg, message, date)
}

func init() {
	rootCmd.AddCommand(logCmd)
}
