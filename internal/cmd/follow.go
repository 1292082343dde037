package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atikulmunna/prettylog/internal/tailer"
	"github.com/atikulmunna/prettylog/internal/watcher"
)

var followCmd = &cobra.Command{
	Use:   "follow [paths...]",
	Short: "Follow log files and pretty-print lines as they are written",
	Long: `Follow one or more log files (or glob patterns): print what they
already contain, then every line appended afterwards. Rotated files are
picked up again when they reappear. Stops on SIGINT/SIGTERM.

Examples:
  prettylog follow /var/log/app.json
  prettylog follow "/var/log/**/*.json" --level-field severity`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFollow,
}

func init() {
	rootCmd.AddCommand(followCmd)
}

func runFollow(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	logger := s.logger(cmd.ErrOrStderr())

	w, err := watcher.New(args, logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if len(w.Paths()) == 0 {
		return fmt.Errorf("no files could be watched: %v", args)
	}

	logger.Info("following files", "count", len(w.Paths()))
	for _, p := range w.Paths() {
		logger.Debug("following", "path", p)
	}

	return run(cmd, s, tailer.New(w, logger), logger)
}
