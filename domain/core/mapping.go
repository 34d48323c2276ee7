package core

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/tidwall/pretty"
)

// Item is a single key/value pair of a Mapping
type Item struct {
	Key   string
	Value interface{}
}

// Mapping is a string-keyed map that remembers insertion order.
//
// Values are expected in canonical form: nil, bool, string, int, float64,
// []interface{} or *Mapping. Anything else is carried through untouched.
// A Mapping is not safe for concurrent mutation.
type Mapping struct {
	keys   []string
	values map[string]interface{}
}

// NewMapping creates an empty mapping
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]interface{})}
}

// MappingFromMap converts a plain Go map into a Mapping. Go maps carry no
// order, so keys are inserted sorted. Nested values are converted with
// CopyValue, so typed maps and slices at any depth become Mappings and lists.
func MappingFromMap(m map[string]interface{}) *Mapping {
	out := NewMapping()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Set(k, CopyValue(m[k]))
	}
	return out
}

// Len returns the number of keys
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Has reports whether key is present
func (m *Mapping) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Get returns the value for key
func (m *Mapping) Get(key string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// GetOr returns the value for key, or def when the key is absent
func (m *Mapping) GetOr(key string, def interface{}) interface{} {
	if v, ok := m.Get(key); ok {
		return v
	}
	return def
}

// Set stores value under key. New keys go to the end.
func (m *Mapping) Set(key string, value interface{}) {
	if m.values == nil {
		m.values = make(map[string]interface{})
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key and returns its previous value
func (m *Mapping) Delete(key string) (interface{}, bool) {
	v, ok := m.values[key]
	if !ok {
		return nil, false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Rename moves the value of from to to, keeping its position.
// It returns false if from is absent or to already exists.
func (m *Mapping) Rename(from, to string) bool {
	if from == to {
		return m.Has(from)
	}
	v, ok := m.values[from]
	if !ok || m.Has(to) {
		return false
	}
	for i, k := range m.keys {
		if k == from {
			m.keys[i] = to
			break
		}
	}
	delete(m.values, from)
	m.values[to] = v
	return true
}

// Keys returns the keys in insertion order
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in insertion order
func (m *Mapping) Values() []interface{} {
	if m == nil {
		return nil
	}
	out := make([]interface{}, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.values[k]
	}
	return out
}

// Items returns the key/value pairs in insertion order
func (m *Mapping) Items() []Item {
	if m == nil {
		return nil
	}
	out := make([]Item, len(m.keys))
	for i, k := range m.keys {
		out[i] = Item{Key: k, Value: m.values[k]}
	}
	return out
}

// Clone returns a fully independent copy, nested lists and mappings included
func (m *Mapping) Clone() *Mapping {
	if m == nil {
		return nil
	}
	out := NewMapping()
	for _, k := range m.keys {
		out.Set(k, CopyValue(m.values[k]))
	}
	return out
}

// ShallowClone duplicates the top level only; nested values are shared
func (m *Mapping) ShallowClone() *Mapping {
	if m == nil {
		return nil
	}
	out := NewMapping()
	for _, k := range m.keys {
		out.Set(k, m.values[k])
	}
	return out
}

// ToMap returns a shallow plain-map view of the mapping
func (m *Mapping) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, m.Len())
	for _, item := range m.Items() {
		out[item.Key] = item.Value
	}
	return out
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
// Strings are written without HTML escaping. encoding/json re-escapes the
// output of MarshalJSON methods, so callers that need the raw form call this
// method directly.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSON(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeJSON(&buf, m.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var indentOptions = &pretty.Options{Width: -1, Indent: "    "}

// MarshalIndent encodes the mapping in insertion order with every object
// member and list element on its own line, indented by four spaces.
func (m *Mapping) MarshalIndent() ([]byte, error) {
	compact, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(pretty.PrettyOptions(compact, indentOptions), "\n"), nil
}

func encodeJSON(buf *bytes.Buffer, v interface{}) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
