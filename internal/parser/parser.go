package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atikulmunna/prettylog/internal/model"
)

// MaxDepth bounds array/object nesting. Deeper lines are treated as unparseable.
const MaxDepth = 512

var (
	ErrTooDeep      = errors.New("json nesting too deep")
	ErrTrailingData = errors.New("trailing data after json value")
)

// Parse decodes exactly one JSON value from raw, keeping object keys in
// the order they were written.
func Parse(raw string) (model.Value, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		return model.Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = ErrTrailingData
		}
		return model.Value{}, err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, depth int) (model.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return model.Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return model.NullValue(), nil
	case bool:
		return model.BoolValue(t), nil
	case json.Number:
		return model.NumberValue(t), nil
	case string:
		return model.StringValue(t), nil
	case json.Delim:
		if depth >= MaxDepth {
			return model.Value{}, ErrTooDeep
		}
		switch t {
		case '[':
			return decodeArray(dec, depth+1)
		case '{':
			return decodeObject(dec, depth+1)
		}
	}
	return model.Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeArray(dec *json.Decoder, depth int) (model.Value, error) {
	items := []model.Value{}
	for dec.More() {
		v, err := decodeValue(dec, depth)
		if err != nil {
			return model.Value{}, err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil { // ']'
		return model.Value{}, err
	}
	return model.ArrayValue(items...), nil
}

func decodeObject(dec *json.Decoder, depth int) (model.Value, error) {
	members := []model.Member{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return model.Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return model.Value{}, fmt.Errorf("object key must be a string, got %v", tok)
		}
		v, err := decodeValue(dec, depth)
		if err != nil {
			return model.Value{}, err
		}
		members = append(members, model.Member{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil { // '}'
		return model.Value{}, err
	}
	return model.ObjectValue(members...), nil
}
