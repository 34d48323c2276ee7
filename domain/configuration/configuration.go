package configuration

import (
	"path/filepath"

	"go.uber.org/zap"

	"rsmconfig/domain/core"
	"rsmconfig/domain/schema"
)

// Configuration is a validated experiment configuration. It is built only
// by a Parser. Set and Pop do not re-run validation, and a Configuration is
// not safe for concurrent mutation.
type Configuration struct {
	fields    *core.Mapping
	configDir string
	context   schema.Context
	logger    *zap.Logger
}

func newConfiguration(fields *core.Mapping, configDir string, ctx schema.Context, logger *zap.Logger) *Configuration {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Configuration{
		fields:    fields,
		configDir: configDir,
		context:   ctx,
		logger:    logger,
	}
}

func (c *Configuration) Contains(key string) bool { return c.fields.Has(key) }

func (c *Configuration) Get(key string) (interface{}, bool) { return c.fields.Get(key) }

// GetOr returns the value of key, or def if the key is absent
func (c *Configuration) GetOr(key string, def interface{}) interface{} {
	return c.fields.GetOr(key, def)
}

// Set stores a value without re-validating
func (c *Configuration) Set(key string, value interface{}) { c.fields.Set(key, value) }

// Pop removes key and returns its value, or def if it was absent
func (c *Configuration) Pop(key string, def interface{}) interface{} {
	if v, ok := c.fields.Delete(key); ok {
		return v
	}
	return def
}

func (c *Configuration) Keys() []string        { return c.fields.Keys() }
func (c *Configuration) Values() []interface{} { return c.fields.Values() }
func (c *Configuration) Items() []core.Item    { return c.fields.Items() }
func (c *Configuration) Len() int              { return c.fields.Len() }

// Copy duplicates the configuration. A shallow copy shares nested lists and
// mappings with the original.
func (c *Configuration) Copy(deep bool) *Configuration {
	fields := c.fields.ShallowClone()
	if deep {
		fields = c.fields.Clone()
	}
	return newConfiguration(fields, c.configDir, c.context, c.logger)
}

// Fields returns a deep copy of the fields that belong to the context
func (c *Configuration) Fields() *core.Mapping {
	out := core.NewMapping()
	d, err := schema.Lookup(c.context)
	if err != nil {
		return out
	}
	for _, item := range c.fields.Items() {
		if d.Allows(item.Key) {
			out.Set(item.Key, core.CopyValue(item.Value))
		}
	}
	return out
}

// Canonical renders the context fields as 4-space indented JSON
func (c *Configuration) Canonical() ([]byte, error) {
	return c.Fields().MarshalIndent()
}

func (c *Configuration) String() string {
	out, err := c.Canonical()
	if err != nil {
		return "{}"
	}
	return string(out)
}

// ConfigDir is the directory relative paths are resolved against
func (c *Configuration) ConfigDir() string { return c.configDir }

// SetConfigDir replaces the reference directory, made absolute when possible
func (c *Configuration) SetConfigDir(dir string) {
	if dir == "" {
		c.configDir = ""
		return
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	c.configDir = dir
}

func (c *Configuration) Context() schema.Context { return c.context }

// SetContext switches the context tag without re-validating
func (c *Configuration) SetContext(ctx schema.Context) error {
	if _, err := schema.Lookup(ctx); err != nil {
		return err
	}
	c.context = ctx
	return nil
}
