package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"

	"github.com/atikulmunna/prettylog/internal/aggregator"
	"github.com/atikulmunna/prettylog/internal/parser"
)

// 1700000000 is 2023-11-14 22:13:20 UTC.
var today = time.Date(2023, 11, 14, 23, 0, 0, 0, time.UTC)

func plainRenderer(w *bytes.Buffer, now time.Time, opts ...Option) *TextRenderer {
	opts = append([]Option{
		WithClock(func() time.Time { return now }),
		WithLocation(time.UTC),
	}, opts...)
	return NewTextRenderer(w, DefaultFields(), NewStyles(termenv.Ascii), opts...)
}

func TestFormatScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"typical record",
			`{"time":1700000000,"level":30,"message":"hello","user":"bob"}`,
			`22:13:20.000  INFO hello user="bob"`,
		},
		{
			"not json passes through",
			`not json`,
			`not json`,
		},
		{
			"broken json passes through",
			`{"level":"info",`,
			`{"level":"info",`,
		},
		{
			"non-object placeholder",
			`[1,2,3]`,
			NonObjectLine,
		},
		{
			"unknown numeric level and missing fields",
			`{"level":99}`,
			`EMPTY TIME UNKNOWN (99) null `,
		},
		{
			"alternate keys",
			`{"timestamp":1700000000123,"lvl":"warn","msg":"slow","ms":812}`,
			`22:13:20.123  WARN slow ms=812`,
		},
		{
			"nested values keep order",
			`{"msg":"m","obj":{"b":[true,null,"x"],"a":1},"n":1.50}`,
			`EMPTY TIME EMPTY m obj={b:[true, null, "x"], a:1} n=1.50`,
		},
		{
			"invalid level type",
			`{"level":true,"message":42}`,
			`EMPTY TIME INVALID (TRUE) 42 `,
		},
		{
			"non-scalar message",
			`{"message":{"a":1}}`,
			`EMPTY TIME EMPTY {"a":1} `,
		},
		{
			"null message field is present",
			`{"message":null,"level":"error"}`,
			`EMPTY TIME ERROR null `,
		},
		{
			"custom level is not padded",
			`{"level":"ok"}`,
			`EMPTY TIME OK null `,
		},
		{
			"present level spelled empty",
			`{"level":"empty"}`,
			`EMPTY TIME EMPTY null `,
		},
		{
			"message and keys keep tabs and line breaks",
			`{"msg":"panic: boom\n\tgoroutine 1\r\nx","a\tb":1}`,
			"EMPTY TIME EMPTY panic: boom\n\tgoroutine 1\r\nx a\tb=1",
		},
	}

	var buf bytes.Buffer
	r := plainRenderer(&buf, today)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Format(tt.in); got != tt.want {
				t.Errorf("expected\n%q\ngot\n%q", tt.want, got)
			}
		})
	}
}

func TestFormatExcludesMatchedKeys(t *testing.T) {
	var buf bytes.Buffer
	r := plainRenderer(&buf, today)

	got := r.Format(`{"time":1700000000,"timestamp":1,"level":"info","lvl":"x","message":"m","msg":"y"}`)

	for _, dup := range []string{"time=", "level=", "message="} {
		if strings.Contains(got, dup) {
			t.Errorf("matched key %q must not appear in fields: %q", dup, got)
		}
	}
	// Only the matched candidate is excluded; the others are ordinary fields.
	for _, kept := range []string{"timestamp=1", `lvl="x"`, `msg="y"`} {
		if !strings.Contains(got, kept) {
			t.Errorf("expected %q in %q", kept, got)
		}
	}
}

func TestRenderWritesLinesInOrder(t *testing.T) {
	var buf bytes.Buffer
	r := plainRenderer(&buf, today)

	in := []string{
		`{"level":"info","msg":"one"}`,
		`plain`,
		`{"level":"info","msg":"three"}`,
	}
	for _, l := range in {
		if err := r.Render(l); err != nil {
			t.Fatal(err)
		}
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(in) {
		t.Fatalf("expected %d lines, got %d: %q", len(in), len(lines), buf.String())
	}
	for i, want := range []string{"one", "plain", "three"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d: expected %q in %q", i, want, lines[i])
		}
	}
}

func TestRenderCountsOutcomes(t *testing.T) {
	var buf bytes.Buffer
	c := aggregator.New()
	r := plainRenderer(&buf, today, WithCounter(c))

	for _, l := range []string{`{"level":30}`, `{"level":"INFO"}`, `{}`, `{"level":"empty"}`, `nope`, `"str"`} {
		if err := r.Render(l); err != nil {
			t.Fatal(err)
		}
	}

	s := c.Snapshot()
	if s.Formatted != 4 || s.Raw != 1 || s.NonObject != 1 {
		t.Errorf("unexpected counts %+v", s)
	}
	if s.LevelCounts["INFO"] != 2 || s.LevelCounts[aggregator.NoLevel] != 1 || s.LevelCounts[EmptyLevel] != 1 {
		t.Errorf("unexpected level counts %v", s.LevelCounts)
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		now  time.Time
		want string
	}{
		{"seconds today", `{"time":1700000000}`, today, "22:13:20.000"},
		{"seconds another day", `{"time":1700000000}`, today.AddDate(0, 0, 1), "2023-11-14 22:13:20.000"},
		{"milliseconds", `{"time":1700000000456}`, today, "22:13:20.456"},
		{"fractional seconds truncate", `{"time":1700000000.9}`, today, "22:13:20.000"},
		{"seconds threshold is inclusive", `{"time":100000000000}`, today, "5138-11-16 09:46:40.000"},
		{"too large stays raw", `{"time":1700000000000000}`, today, "1700000000000000"},
		{"rfc3339 string", `{"time":"2023-11-14T22:13:20.250Z"}`, today, "22:13:20.250"},
		{"unparseable string", `{"time":"soon"}`, today, "soon"},
		{"other kinds as json", `{"time":[1]}`, today, "[1]"},
		{"absent", `{}`, today, emptyTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := parser.Parse(tt.raw)
			if err != nil {
				t.Fatal(err)
			}
			ex := parser.Extract(obj, DefaultFields().Time)
			if got := NormalizeTime(ex, tt.now, time.UTC); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalizeTimeUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	obj, err := parser.Parse(`{"time":1700000000}`)
	if err != nil {
		t.Fatal(err)
	}
	ex := parser.Extract(obj, DefaultFields().Time)

	// 22:13 UTC is 00:13 the next day at UTC+2.
	now := time.Date(2023, 11, 15, 12, 0, 0, 0, loc)
	if got := NormalizeTime(ex, now, loc); got != "00:13:20.000" {
		t.Errorf("expected local rendering, got %q", got)
	}
}

func TestNumericAndStringLevelsMatch(t *testing.T) {
	styles := NewStyles(termenv.ANSI)

	pairs := map[string][]string{
		"TRACE": {`{"level":10}`, `{"level":"trace"}`},
		"DEBUG": {`{"level":20}`, `{"level":"Debug"}`},
		"INFO":  {`{"level":30}`, `{"level":"info"}`, `{"level":"INFO"}`},
		"WARN":  {`{"level":40}`, `{"level":"wArN"}`},
		"ERROR": {`{"level":50}`, `{"level":"error"}`},
		"FATAL": {`{"level":60}`, `{"level":"fatal"}`},
	}

	for want, inputs := range pairs {
		var badges []string
		for _, raw := range inputs {
			obj, err := parser.Parse(raw)
			if err != nil {
				t.Fatal(err)
			}
			label, ok := NormalizeLevel(parser.Extract(obj, DefaultFields().Level))
			if !ok || label != want {
				t.Errorf("%s: expected %s, got %s", raw, want, label)
			}
			badges = append(badges, styles.renderLevel(label))
		}
		for _, b := range badges[1:] {
			if b != badges[0] {
				t.Errorf("%s: badges differ: %q vs %q", want, badges[0], b)
			}
		}
	}
}

func TestColorProfiles(t *testing.T) {
	line := `{"time":1700000000,"level":30,"message":"hello","user":"bob"}`

	var plainBuf, colorBuf bytes.Buffer
	plain := plainRenderer(&plainBuf, today).Format(line)

	colored := NewTextRenderer(&colorBuf, DefaultFields(), NewStyles(termenv.ANSI),
		WithClock(func() time.Time { return today }),
		WithLocation(time.UTC),
	).Format(line)

	if strings.Contains(plain, "\x1b[") {
		t.Errorf("ascii profile must not emit escapes: %q", plain)
	}
	if !strings.Contains(colored, "\x1b[") {
		t.Errorf("ansi profile must emit escapes: %q", colored)
	}
	if !strings.Contains(colored, `"bob"`) || !strings.Contains(colored, "hello") {
		t.Errorf("colored line lost content: %q", colored)
	}
}

func TestLevelBadgeStyles(t *testing.T) {
	s := NewStyles(termenv.ANSI)
	def := s.Render(RoleLevelDefault, "NOPE")

	// DEBUG shares its colors with the default badge.
	for _, l := range []string{"PANIC", "FATAL", "ERROR", "WARN", "INFO", "TRACE"} {
		st, known := s.Level(l)
		if !known {
			t.Errorf("%s missing from the style table", l)
		}
		if st.Render("NOPE") == def {
			t.Errorf("%s uses the default style", l)
		}
	}
	if _, known := s.Level("NOPE"); known {
		t.Error("unlisted label must fall back to the default badge")
	}
	if s.renderLevel("NOPE") != def {
		t.Errorf("unlisted label must render unpadded in the default badge, got %q", s.renderLevel("NOPE"))
	}
	if s.renderMissingLevel() == s.renderLevel(EmptyLevel) {
		t.Error("a present EMPTY label must not use the missing-field badge")
	}
}

func TestStylePreservesText(t *testing.T) {
	s := NewStyles(termenv.ANSI)
	text := "panic: boom\n\tgoroutine 1\r\nx  "

	got := s.Render(RoleMessage, text)
	if !strings.Contains(got, text) {
		t.Errorf("styled text was altered: %q", got)
	}
	if !strings.HasPrefix(got, "\x1b[") || !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("expected escapes around the text, got %q", got)
	}
	if got := NewStyles(termenv.Ascii).Render(RoleMessage, text); got != text {
		t.Errorf("ascii profile must return text unchanged, got %q", got)
	}
}
