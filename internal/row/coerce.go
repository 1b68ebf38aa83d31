package row

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindFloat
	kindBool
	// kindFlag is a bool that is never null; missing values become false.
	kindFlag
	kindStringList
	kindObject
	kindObjectList
)

type field struct {
	name     string
	kind     fieldKind
	required bool
	// nonEmpty rejects "" for required strings.
	nonEmpty bool
	// wrap names the key that receives a bare string given for an object.
	wrap   string
	fields []field
}

func fixObject(obj map[string]any, fields []field, prefix string) error {
	for _, f := range fields {
		value, present := obj[f.name]
		fixed, err := coerce(f, value, present, prefix+f.name)
		if err != nil {
			return err
		}
		obj[f.name] = fixed
	}
	return nil
}

func coerce(f field, value any, present bool, path string) (any, error) {
	if !present || value == nil {
		if f.required {
			return nil, unfixable(path, "required field is missing")
		}
		return emptyValue(f.kind), nil
	}
	switch f.kind {
	case kindString:
		s, err := coerceString(value, path)
		if err != nil {
			return nil, err
		}
		if s == "" {
			if f.nonEmpty {
				return nil, unfixable(path, "required field is empty")
			}
			if !f.required {
				return nil, nil
			}
		}
		return s, nil
	case kindInt:
		return coerceInt(value, f.required, path)
	case kindFloat:
		return coerceFloat(value, f.required, path)
	case kindBool, kindFlag:
		b, err := coerceBool(value, path)
		if err != nil {
			return nil, err
		}
		if b == nil && f.kind == kindFlag {
			return false, nil
		}
		if b == nil {
			return nil, nil
		}
		return *b, nil
	case kindStringList:
		return coerceStringList(value, path)
	case kindObject:
		return coerceObject(f, value, path)
	case kindObjectList:
		return coerceObjectList(f, value, path)
	}
	return value, nil
}

func emptyValue(kind fieldKind) any {
	switch kind {
	case kindFlag:
		return false
	case kindStringList, kindObjectList:
		return []any{}
	default:
		return nil
	}
}

func coerceString(value any, path string) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case map[string]any:
		// Extended JSON wrappers such as {"$oid": "..."} or {"$date": "..."}.
		if len(v) == 1 {
			for _, key := range []string{"$oid", "$date", "$numberLong", "$numberDecimal"} {
				if inner, ok := v[key]; ok && inner != nil {
					return coerceString(inner, path)
				}
			}
		}
	}
	return "", unfixable(path, "expected string, got %s", describe(value))
}

func coerceInt(value any, required bool, path string) (any, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		if integral(v) {
			return int64(v), nil
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		if f, err := v.Float64(); err == nil && integral(f) {
			return int64(f), nil
		}
	case string:
		s := strings.TrimSpace(v)
		if s == "" && !required {
			return nil, nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && integral(f) {
			return int64(f), nil
		}
	}
	return nil, unfixable(path, "expected integer, got %s %v", describe(value), value)
}

func coerceFloat(value any, required bool, path string) (any, error) {
	switch v := value.(type) {
	case float64:
		if finite(v) {
			return v, nil
		}
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case json.Number:
		if f, err := v.Float64(); err == nil && finite(f) {
			return f, nil
		}
	case string:
		s := strings.TrimSpace(v)
		if s == "" && !required {
			return nil, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && finite(f) {
			return f, nil
		}
	}
	return nil, unfixable(path, "expected number, got %s %v", describe(value), value)
}

// coerceBool returns nil for an empty string.
func coerceBool(value any, path string) (*bool, error) {
	yes, no := true, false
	switch v := value.(type) {
	case bool:
		return &v, nil
	case json.Number:
		switch v.String() {
		case "1":
			return &yes, nil
		case "0":
			return &no, nil
		}
	case int:
		switch v {
		case 1:
			return &yes, nil
		case 0:
			return &no, nil
		}
	case int64:
		switch v {
		case 1:
			return &yes, nil
		case 0:
			return &no, nil
		}
	case float64:
		switch v {
		case 1:
			return &yes, nil
		case 0:
			return &no, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1":
			return &yes, nil
		case "false", "no", "0":
			return &no, nil
		case "":
			return nil, nil
		}
	}
	return nil, unfixable(path, "expected boolean, got %s %v", describe(value), value)
}

func coerceStringList(value any, path string) (any, error) {
	switch v := value.(type) {
	case []any:
		out := make([]any, 0, len(v))
		for i, elem := range v {
			if elem == nil {
				continue
			}
			s, err := coerceString(elem, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		out := make([]any, 0, len(v))
		for _, s := range v {
			out = append(out, s)
		}
		return out, nil
	case string:
		if v == "" {
			return []any{}, nil
		}
		return []any{v}, nil
	case json.Number, int, int64, float64:
		s, err := coerceString(v, path)
		if err != nil {
			return nil, err
		}
		return []any{s}, nil
	}
	return nil, unfixable(path, "expected list of strings, got %s", describe(value))
}

func coerceObject(f field, value any, path string) (any, error) {
	obj, err := asObject(f, value, path)
	if err != nil {
		return nil, err
	}
	if err := fixObject(obj, f.fields, path+"."); err != nil {
		return nil, err
	}
	return obj, nil
}

func coerceObjectList(f field, value any, path string) (any, error) {
	var elems []any
	switch v := value.(type) {
	case []any:
		elems = v
	case map[string]any, string:
		elems = []any{v}
	default:
		return nil, unfixable(path, "expected list of objects, got %s", describe(value))
	}
	out := make([]any, 0, len(elems))
	for i, elem := range elems {
		if elem == nil {
			continue
		}
		elemPath := path + "[" + strconv.Itoa(i) + "]"
		obj, err := asObject(f, elem, elemPath)
		if err != nil {
			return nil, err
		}
		if err := fixObject(obj, f.fields, elemPath+"."); err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

func asObject(f field, value any, path string) (map[string]any, error) {
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case Raw:
		return map[string]any(v), nil
	case string:
		if f.wrap != "" {
			return map[string]any{f.wrap: v}, nil
		}
	}
	return nil, unfixable(path, "expected object, got %s", describe(value))
}

func integral(f float64) bool {
	return finite(f) && f == math.Trunc(f) && math.Abs(f) < 1<<53
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// renameID moves the Mongo _id key to id_ when only the former is present.
func renameID(raw Raw) {
	if _, ok := raw["id_"]; ok {
		return
	}
	if v, ok := raw["_id"]; ok {
		raw["id_"] = v
		delete(raw, "_id")
	}
}

// migrateStatus folds the legacy status string into the pending flag.
func migrateStatus(raw Raw) {
	status, ok := raw["status"].(string)
	if !ok {
		return
	}
	if strings.EqualFold(strings.TrimSpace(status), "pending") {
		raw["pending"] = true
	}
	delete(raw, "status")
}
