package row

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Raw is a decoded document before fixing. Numbers decode as json.Number.
type Raw map[string]any

// Decode parses one JSON line into a Raw document.
func Decode(line []byte) (Raw, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, &UnfixableError{Reason: "invalid JSON", Err: err}
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, unfixable("", "trailing data after JSON document")
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, unfixable("", "expected JSON object, got %s", describe(value))
	}
	return Raw(obj), nil
}

// construct re-encodes a fixed document and decodes it strictly into dst.
func construct(raw Raw, dst any) error {
	encoded, err := json.Marshal(map[string]any(raw))
	if err != nil {
		return &UnfixableError{Reason: "cannot encode document", Err: err}
	}
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &UnfixableError{Reason: "document does not match schema", Err: err}
	}
	return nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, int, int64, float64:
		return "number"
	case []any, []string:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Identify returns the original id of the document on line: id_, or the
// Mongo _id when id_ is absent. ok is false when the line is not a JSON
// object or carries no usable id.
func Identify(line []byte) (id string, ok bool) {
	raw, err := Decode(line)
	if err != nil {
		return "", false
	}
	for _, key := range []string{"id_", "_id"} {
		value, present := raw[key]
		if !present || value == nil {
			continue
		}
		if id, err := coerceString(value, key); err == nil && id != "" {
			return id, true
		}
	}
	return "", false
}
