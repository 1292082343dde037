package output

import (
	"fmt"
	"strings"

	"github.com/atikulmunna/prettylog/internal/model"
	"github.com/atikulmunna/prettylog/internal/parser"
)

// EmptyLevel is the badge shown when no level field is present.
const EmptyLevel = "EMPTY"

const levelWidth = 5

// numericLevels follows the pino/bunyan convention.
var numericLevels = map[int64]string{
	10: "trace",
	20: "debug",
	30: "info",
	40: "warn",
	50: "error",
	60: "fatal",
}

// NormalizeLevel returns the canonical upper-case label for an extracted
// level field. ok is false when the field is absent.
func NormalizeLevel(ex parser.Extraction) (label string, ok bool) {
	if !ex.Found {
		return "", false
	}

	switch v := ex.Value; v.Kind {
	case model.Number:
		label = numericLevel(v)
	case model.String:
		label = v.Str
	default:
		label = fmt.Sprintf("invalid (%s)", v)
	}
	return strings.ToUpper(label), true
}

func numericLevel(v model.Value) string {
	if n, err := v.Number.Int64(); err == nil {
		if name, ok := numericLevels[n]; ok {
			return name
		}
	}
	return fmt.Sprintf("UNKNOWN (%s)", v.Number)
}

// renderLevel styles a present label. Labels in the style table are
// right-aligned to the badge width; the rest are shown as-is.
func (s *Styles) renderLevel(label string) string {
	st, known := s.Level(label)
	if known {
		label = fmt.Sprintf("%*s", levelWidth, label)
	}
	return st.Render(label)
}

func (s *Styles) renderMissingLevel() string {
	return s.Render(RoleLevelEmpty, EmptyLevel)
}
