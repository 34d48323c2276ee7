package jsonfile

import (
	"os"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"rsmconfig/domain/core"
	"rsmconfig/internal/errors"
	"rsmconfig/ports"
)

// Loader reads relaxed JSON configuration files. Comments and trailing
// commas are accepted; key order is preserved.
type Loader struct {
	logger *zap.Logger
}

var _ ports.ConfigSourcePort = (*Loader)(nil)

// NewLoader creates a file loader
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load reads and decodes the document at path
func (l *Loader) Load(path string) (*core.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.CodeSourceNotFound, "configuration file %s not found", path)
		}
		return nil, errors.WithCode(errors.CodeMalformedSource, errors.Wrapf(err, "cannot read %s", path))
	}

	m, err := Decode(data)
	if err != nil {
		return nil, errors.WithCode(errors.CodeMalformedSource, errors.Wrapf(err, "cannot parse %s", path))
	}

	l.logger.Debug("loaded configuration source",
		zap.String("path", path),
		zap.Int("fields", m.Len()))
	return m, nil
}

// Decode parses a relaxed JSON document whose top level is an object
func Decode(data []byte) (*core.Mapping, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, errors.Newf(errors.CodeMalformedSource, "invalid JSON: %v", err)
	}
	if !gjson.ValidBytes(std) {
		return nil, errors.New(errors.CodeMalformedSource, "invalid JSON document")
	}

	root := gjson.ParseBytes(std)
	if !root.IsObject() {
		return nil, errors.New(errors.CodeMalformedSource, "configuration must be a JSON object")
	}
	return toMapping(root), nil
}

func toMapping(obj gjson.Result) *core.Mapping {
	m := core.NewMapping()
	obj.ForEach(func(key, value gjson.Result) bool {
		m.Set(key.String(), toValue(value))
		return true
	})
	return m
}

func toValue(r gjson.Result) interface{} {
	switch {
	case r.IsObject():
		return toMapping(r)
	case r.IsArray():
		out := []interface{}{}
		r.ForEach(func(_, value gjson.Result) bool {
			out = append(out, toValue(value))
			return true
		})
		return out
	}

	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return toNumber(r)
	default:
		return r.String()
	}
}

// toNumber keeps integral literals as int so they round-trip unchanged.
func toNumber(r gjson.Result) interface{} {
	raw := strings.TrimSpace(r.Raw)
	if !strings.ContainsAny(raw, ".eE") {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return r.Float()
}
