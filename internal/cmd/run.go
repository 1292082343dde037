package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/atikulmunna/prettylog/internal/aggregator"
	"github.com/atikulmunna/prettylog/internal/output"
	"github.com/atikulmunna/prettylog/internal/pipeline"
	"github.com/atikulmunna/prettylog/internal/signals"
	"github.com/atikulmunna/prettylog/internal/tailer"
)

// notifier is swapped out by tests.
var notifier signals.Notifier = signals.OS()

func run(cmd *cobra.Command, s settings, src tailer.Source, logger *log.Logger) error {
	counter := aggregator.New()
	renderer := output.NewTextRenderer(
		cmd.OutOrStdout(),
		s.fields,
		output.NewStyles(s.profile),
		output.WithCounter(counter),
	)

	c := pipeline.New(pipeline.Config{
		Source:   src,
		Renderer: renderer,
		Notifier: notifier,
		Logger:   logger,
	})

	_, err := c.Run(cmd.Context())
	if s.summary {
		printSummary(logger, counter.Snapshot())
	}
	return err
}

func printSummary(logger *log.Logger, st aggregator.Stats) {
	logger.Info("summary",
		"lines", st.TotalLines,
		"formatted", st.Formatted,
		"raw", st.Raw,
		"non_object", st.NonObject,
		"elapsed", st.Uptime,
	)
	for _, level := range st.Levels() {
		logger.Info("level", "label", level, "count", st.LevelCounts[level])
	}
}
