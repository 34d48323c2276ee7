package core

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// IsSet reports whether v counts as specified: nil, false, "", zero
// numbers and empty lists or mappings are all unset.
func IsSet(v interface{}) bool {
	switch t := CopyValue(v).(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case float64:
		return t != 0
	case []interface{}:
		return len(t) > 0
	case *Mapping:
		return t.Len() > 0
	default:
		return true
	}
}

// AsList returns v as a list if it is a slice or array of any element type
func AsList(v interface{}) ([]interface{}, bool) {
	if t, ok := v.([]interface{}); ok {
		return t, true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		list, ok := CopyValue(v).([]interface{})
		return list, ok
	default:
		return nil, false
	}
}

// AsMapping returns v as a Mapping if it is one or a string-keyed Go map
func AsMapping(v interface{}) (*Mapping, bool) {
	if t, ok := v.(*Mapping); ok {
		return t, t != nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m, ok := CopyValue(v).(*Mapping)
	return m, ok && m != nil
}

// CopyValue deep copies v into the value forms a Mapping stores: nil, bool,
// string, int, float64, []interface{} and *Mapping. Typed Go slices and
// string-keyed maps are converted; maps get their keys in sorted order.
// Values of any other kind are returned as is.
func CopyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil, bool, string, int, float64:
		return v
	case *Mapping:
		return t.Clone()
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = CopyValue(e)
		}
		return out
	case map[string]interface{}:
		return MappingFromMap(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return CopyValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]interface{}, rv.Len())
		for i := range out {
			out[i] = CopyValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		if rv.IsNil() {
			return nil
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		out := NewMapping()
		for _, k := range keys {
			out.Set(k.String(), CopyValue(rv.MapIndex(k).Interface()))
		}
		return out
	default:
		return v
	}
}

// IsScalar reports whether v is nil, a boolean, a number or a string
func IsScalar(v interface{}) bool {
	switch CopyValue(v).(type) {
	case nil, bool, string, int, float64:
		return true
	default:
		return false
	}
}

// ToFloat converts numbers and numeric strings to float64
func ToFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to a number", t)
		}
		return f, nil
	default:
		switch c := CopyValue(v).(type) {
		case int:
			return float64(c), nil
		case float64:
			return c, nil
		}
		return 0, fmt.Errorf("cannot convert %v (%T) to a number", v, v)
	}
}

// ToText renders a scalar the way it was most likely written
func ToText(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
