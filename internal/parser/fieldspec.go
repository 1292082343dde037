package parser

import (
	"errors"
	"strings"

	"github.com/atikulmunna/prettylog/internal/model"
)

// ErrEmptyFieldSpec is returned for a spec with no usable candidate keys.
var ErrEmptyFieldSpec = errors.New("field spec has no keys")

// FieldSpec is an ordered list of candidate keys for one logical field.
type FieldSpec []string

// ParseFieldSpec splits a comma-separated key list. Blank entries are dropped.
func ParseFieldSpec(s string) (FieldSpec, error) {
	var spec FieldSpec
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			spec = append(spec, k)
		}
	}
	if len(spec) == 0 {
		return nil, ErrEmptyFieldSpec
	}
	return spec, nil
}

func (s FieldSpec) String() string {
	return strings.Join(s, ",")
}

// Extraction is the outcome of looking up a FieldSpec in an object.
// Key is empty when nothing matched.
type Extraction struct {
	Value model.Value
	Key   string
	Found bool
}

// Extract returns the first candidate key present in obj, even when its
// value is null.
func Extract(obj model.Value, spec FieldSpec) Extraction {
	for _, k := range spec {
		if v, ok := obj.Get(k); ok {
			return Extraction{Value: v, Key: k, Found: true}
		}
	}
	return Extraction{}
}
