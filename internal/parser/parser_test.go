package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atikulmunna/prettylog/internal/model"
)

func TestParseObjectKeepsOrder(t *testing.T) {
	v, err := Parse(`{"time":1700000000,"level":"info","nested":{"b":[1,true,null],"a":"x"}}`)
	if err != nil {
		t.Fatal(err)
	}

	want := model.ObjectValue(
		model.Member{Key: "time", Value: model.NumberValue("1700000000")},
		model.Member{Key: "level", Value: model.StringValue("info")},
		model.Member{Key: "nested", Value: model.ObjectValue(
			model.Member{Key: "b", Value: model.ArrayValue(
				model.NumberValue("1"), model.BoolValue(true), model.NullValue(),
			)},
			model.Member{Key: "a", Value: model.StringValue("x")},
		)},
	)
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("parsed value mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScalarsAndArrays(t *testing.T) {
	tests := []struct {
		raw  string
		kind model.Kind
	}{
		{`[1,2,3]`, model.Array},
		{`"text"`, model.String},
		{`  42  `, model.Number},
		{`null`, model.Null},
		{`false`, model.Bool},
		{`{}`, model.Object},
	}
	for _, tt := range tests {
		v, err := Parse(tt.raw)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.raw, err)
			continue
		}
		if v.Kind != tt.kind {
			t.Errorf("%s: expected %v, got %v", tt.raw, tt.kind, v.Kind)
		}
	}
}

func TestParseFailures(t *testing.T) {
	for _, raw := range []string{
		"not json",
		"",
		"   ",
		`{"a":1`,
		`{"a":1} trailing`,
		`{"a":1} {"b":2}`,
		`{1:2}`,
	} {
		if _, err := Parse(raw); err == nil {
			t.Errorf("%q: expected parse error", raw)
		}
	}
}

func TestParseDepthLimit(t *testing.T) {
	deep := strings.Repeat("[", MaxDepth+1) + strings.Repeat("]", MaxDepth+1)
	if _, err := Parse(deep); !errors.Is(err, ErrTooDeep) {
		t.Errorf("expected ErrTooDeep, got %v", err)
	}

	ok := strings.Repeat("[", MaxDepth) + strings.Repeat("]", MaxDepth)
	if _, err := Parse(ok); err != nil {
		t.Errorf("expected %d levels to parse, got %v", MaxDepth, err)
	}
}

func TestParseFieldSpec(t *testing.T) {
	spec, err := ParseFieldSpec(" time, timestamp ,,ts")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(FieldSpec{"time", "timestamp", "ts"}, spec); diff != "" {
		t.Errorf("spec mismatch (-want +got):\n%s", diff)
	}
	if spec.String() != "time,timestamp,ts" {
		t.Errorf("unexpected String() %q", spec.String())
	}

	if _, err := ParseFieldSpec(" , "); !errors.Is(err, ErrEmptyFieldSpec) {
		t.Errorf("expected ErrEmptyFieldSpec, got %v", err)
	}
}

func TestExtract(t *testing.T) {
	obj, err := Parse(`{"msg":"second","lvl":null,"message":"first"}`)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		spec  FieldSpec
		key   string
		found bool
	}{
		{"first candidate wins", FieldSpec{"message", "msg"}, "message", true},
		{"falls through to later candidate", FieldSpec{"text", "msg"}, "msg", true},
		{"null value still matches", FieldSpec{"level", "lvl"}, "lvl", true},
		{"nothing matches", FieldSpec{"time", "timestamp"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(obj, tt.spec)
			if got.Key != tt.key || got.Found != tt.found {
				t.Errorf("expected key %q found=%v, got %q found=%v", tt.key, tt.found, got.Key, got.Found)
			}
			again := Extract(obj, tt.spec)
			if diff := cmp.Diff(got, again); diff != "" {
				t.Errorf("extraction not repeatable (-first +second):\n%s", diff)
			}
		})
	}

	if got := Extract(obj, FieldSpec{"message"}); got.Value.Str != "first" {
		t.Errorf("expected value 'first', got %q", got.Value.Str)
	}
}
