package output

import (
	"math"
	"strconv"
	"time"

	"github.com/araddon/dateparse"

	"github.com/atikulmunna/prettylog/internal/model"
	"github.com/atikulmunna/prettylog/internal/parser"
)

const (
	// Epoch values up to this magnitude are seconds (10 digits).
	maxEpochSeconds = 1e11
	// Epoch values below this are milliseconds (13 digits). Anything
	// larger is left unparsed; nanosecond epochs are not recognized.
	maxEpochMillis = 1e14

	emptyTime = "EMPTY TIME"

	dateTimeLayout = "2006-01-02 15:04:05.000"
	timeLayout     = "15:04:05.000"
)

// NormalizeTime returns the display text for an extracted time field.
// The date is included only when it differs from now's date in loc.
func NormalizeTime(ex parser.Extraction, now time.Time, loc *time.Location) string {
	if !ex.Found {
		return emptyTime
	}

	t, ok := parseTime(ex.Value, loc)
	if !ok {
		return fallbackText(ex.Value)
	}

	t = t.In(loc)
	if !sameDay(t, now.In(loc)) {
		return t.Format(dateTimeLayout)
	}
	return t.Format(timeLayout)
}

func parseTime(v model.Value, loc *time.Location) (time.Time, bool) {
	switch v.Kind {
	case model.Number:
		n, ok := epochInt(v)
		if !ok {
			return time.Time{}, false
		}
		return fromEpoch(n, loc)
	case model.String:
		t, err := dateparse.ParseIn(v.Str, loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// epochInt reads a JSON number as an integer, truncating fractions.
func epochInt(v model.Value) (int64, bool) {
	if n, err := v.Number.Int64(); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v.Number.String(), 64)
	if err != nil || math.IsNaN(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func fromEpoch(n int64, loc *time.Location) (time.Time, bool) {
	switch {
	case n <= maxEpochSeconds:
		return time.Unix(n, 0).In(loc), true
	case n < maxEpochMillis:
		return time.UnixMilli(n).In(loc), true
	}
	return time.Time{}, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// fallbackText is the textual form used when a value cannot be interpreted:
// strings bare, everything else as JSON.
func fallbackText(v model.Value) string {
	if v.Kind == model.String {
		return v.Str
	}
	return v.String()
}
