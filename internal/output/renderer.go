package output

import (
	"fmt"
	"io"
	"time"

	"github.com/atikulmunna/prettylog/internal/aggregator"
	"github.com/atikulmunna/prettylog/internal/model"
	"github.com/atikulmunna/prettylog/internal/parser"
)

// NonObjectLine replaces lines that are valid JSON but not objects.
const NonObjectLine = "None"

// Fields holds the candidate keys for the three extracted fields.
type Fields struct {
	Time    parser.FieldSpec
	Level   parser.FieldSpec
	Message parser.FieldSpec
}

// DefaultFields returns the stock field specs.
func DefaultFields() Fields {
	return Fields{
		Time:    parser.FieldSpec{"time", "timestamp"},
		Level:   parser.FieldSpec{"level", "lvl"},
		Message: parser.FieldSpec{"message", "msg"},
	}
}

// Renderer turns raw input lines into output lines.
type Renderer interface {
	Render(raw string) error
}

// TextRenderer writes one colorized line per input line.
type TextRenderer struct {
	w       io.Writer
	fields  Fields
	styles  *Styles
	now     func() time.Time
	loc     *time.Location
	counter *aggregator.Counter
}

// Option configures a TextRenderer.
type Option func(*TextRenderer)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(r *TextRenderer) { r.now = now }
}

// WithLocation overrides the display time zone (default time.Local).
func WithLocation(loc *time.Location) Option {
	return func(r *TextRenderer) { r.loc = loc }
}

// WithCounter records every rendered line in c.
func WithCounter(c *aggregator.Counter) Option {
	return func(r *TextRenderer) { r.counter = c }
}

// NewTextRenderer returns a Renderer writing to w.
func NewTextRenderer(w io.Writer, fields Fields, styles *Styles, opts ...Option) *TextRenderer {
	r := &TextRenderer{
		w:      w,
		fields: fields,
		styles: styles,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *TextRenderer) Render(raw string) error {
	_, err := fmt.Fprintln(r.w, r.Format(raw))
	return err
}

// Format returns the output line for raw, without a trailing newline.
func (r *TextRenderer) Format(raw string) string {
	v, err := parser.Parse(raw)
	if err != nil {
		r.record(aggregator.Raw, "")
		return raw
	}
	if v.Kind != model.Object {
		r.record(aggregator.NonObject, "")
		return NonObjectLine
	}

	timeEx := parser.Extract(v, r.fields.Time)
	levelEx := parser.Extract(v, r.fields.Level)
	msgEx := parser.Extract(v, r.fields.Message)

	level, ok := NormalizeLevel(levelEx)
	badge := r.styles.renderMissingLevel()
	if ok {
		badge = r.styles.renderLevel(level)
	} else {
		level = aggregator.NoLevel
	}
	r.record(aggregator.Formatted, level)

	exclude := map[string]bool{}
	for _, ex := range []parser.Extraction{timeEx, levelEx, msgEx} {
		if ex.Found {
			exclude[ex.Key] = true
		}
	}

	return fmt.Sprintf("%s %s %s %s",
		r.styles.Render(RoleTime, NormalizeTime(timeEx, r.now(), r.loc)),
		badge,
		r.renderMessage(msgEx),
		r.styles.renderFields(v, exclude),
	)
}

func (r *TextRenderer) renderMessage(ex parser.Extraction) string {
	if !ex.Found {
		return r.styles.Render(RoleMessageInvalid, "null")
	}
	switch ex.Value.Kind {
	case model.String:
		return r.styles.Render(RoleMessage, ex.Value.Str)
	case model.Number:
		return r.styles.Render(RoleMessage, ex.Value.Number.String())
	}
	return r.styles.Render(RoleMessageInvalid, ex.Value.String())
}

func (r *TextRenderer) record(o aggregator.Outcome, level string) {
	if r.counter != nil {
		r.counter.Record(o, level)
	}
}
