package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/prettylog/internal/tailer"
	"github.com/atikulmunna/prettylog/internal/watcher"
)

// version is set at build time with -ldflags "-X .../internal/cmd.version=...".
var version = "dev"

var cfgFile string

// rootCmd is the base command: it filters stdin (or the given files).
var rootCmd = &cobra.Command{
	Use:   "prettylog [files...]",
	Short: "Pretty-print newline-delimited JSON logs",
	Long: `prettylog reads JSON log lines and prints each one as a single
colorized line: time, level badge, message, then the remaining fields.
Lines that are not JSON pass through unchanged, so it is safe anywhere
in a pipeline.

Examples:
  my-service | prettylog
  prettylog --time-field ts --message-field msg app.log
  prettylog "/var/log/**/*.json"`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.prettylog.yaml)")
	pf.StringP("time-field", "t", defaultTimeField, "comma-separated keys that hold the time")
	pf.StringP("level-field", "l", defaultLevelField, "comma-separated keys that hold the level")
	pf.StringP("message-field", "m", defaultMessageField, "comma-separated keys that hold the message")
	pf.String("color", "auto", "color output: auto, always, never")
	pf.Bool("summary", false, "print line and level counts to stderr on exit")
	pf.BoolP("verbose", "v", false, "enable debug diagnostics")

	for _, name := range []string{"time-field", "level-field", "message-field", "color", "summary", "verbose"} {
		cobra.CheckErr(viper.BindPFlag(name, pf.Lookup(name)))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".prettylog")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PRETTYLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Only an explicit --config has to exist and parse.
	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		cobra.CheckErr(fmt.Errorf("read config: %w", err))
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	logger := s.logger(cmd.ErrOrStderr())

	var src tailer.Source
	if len(args) == 0 {
		src = tailer.NewReaderSource(cmd.InOrStdin(), logger)
	} else {
		paths, err := watcher.Expand(args)
		if err != nil {
			return err
		}
		src = tailer.NewFileSource(paths, logger)
	}

	return run(cmd, s, src, logger)
}
