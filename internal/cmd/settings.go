package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/viper"

	"github.com/atikulmunna/prettylog/internal/logging"
	"github.com/atikulmunna/prettylog/internal/output"
	"github.com/atikulmunna/prettylog/internal/parser"
)

const (
	defaultTimeField    = "time,timestamp"
	defaultLevelField   = "level,lvl"
	defaultMessageField = "message,msg"
)

// settings is the resolved configuration (flag > env > file > default).
type settings struct {
	fields  output.Fields
	profile termenv.Profile
	summary bool
	verbose bool
}

func loadSettings() (settings, error) {
	var s settings
	var err error

	specs := []struct {
		key string
		dst *parser.FieldSpec
	}{
		{"time-field", &s.fields.Time},
		{"level-field", &s.fields.Level},
		{"message-field", &s.fields.Message},
	}
	for _, spec := range specs {
		if *spec.dst, err = parser.ParseFieldSpec(viper.GetString(spec.key)); err != nil {
			return settings{}, fmt.Errorf("--%s: %w", spec.key, err)
		}
	}

	if s.profile, err = colorProfile(viper.GetString("color"), os.Stdout); err != nil {
		return settings{}, err
	}
	s.summary = viper.GetBool("summary")
	s.verbose = viper.GetBool("verbose")
	return s, nil
}

// colorProfile maps the --color mode to a termenv profile. auto inspects w
// and the environment (NO_COLOR, TERM, CLICOLOR_FORCE).
func colorProfile(mode string, w io.Writer) (termenv.Profile, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "auto", "":
		return lipgloss.NewRenderer(w).ColorProfile(), nil
	case "always":
		return termenv.ANSI, nil
	case "never":
		return termenv.Ascii, nil
	}
	return termenv.Ascii, fmt.Errorf("--color: unknown mode %q (want auto, always or never)", mode)
}

func (s settings) logger(w io.Writer) *log.Logger {
	return logging.New(w, s.verbose)
}
