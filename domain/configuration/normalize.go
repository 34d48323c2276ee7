package configuration

import (
	"strings"

	"rsmconfig/domain/core"
	"rsmconfig/domain/schema"
	"rsmconfig/internal/errors"
)

// Normalize renames legacy fields and coerces list and boolean fields into
// canonical form. raw is never modified.
func Normalize(raw *core.Mapping, ctx schema.Context) (*core.Mapping, error) {
	d, err := schema.Lookup(ctx)
	if err != nil {
		return nil, err
	}

	out := raw.Clone()
	if out == nil {
		out = core.NewMapping()
	}
	if err := translateAliases(out, d); err != nil {
		return nil, err
	}
	if err := coerceLists(out, d); err != nil {
		return nil, err
	}
	if err := coerceBooleans(out, d); err != nil {
		return nil, err
	}
	return out, nil
}

func translateAliases(m *core.Mapping, d *schema.Descriptor) error {
	for _, key := range m.Keys() {
		alias, ok := d.Alias(key)
		if !ok {
			continue
		}
		if m.Has(alias.To) {
			return errors.MutuallyExclusiveFields(alias.From, alias.To)
		}
		value, _ := m.Get(key)
		rewritten, err := alias.Apply(value)
		if err != nil {
			return err
		}
		m.Rename(alias.From, alias.To)
		m.Set(alias.To, rewritten)
	}
	return nil
}

// coerceLists splits scalar values of list fields on commas. Mappings
// cannot be turned into a list and are rejected.
func coerceLists(m *core.Mapping, d *schema.Descriptor) error {
	for _, field := range d.ListFields() {
		value, ok := m.Get(field)
		if !ok || value == nil {
			continue
		}
		if list, isList := core.AsList(value); isList {
			m.Set(field, list)
			continue
		}
		if !core.IsScalar(value) {
			return errors.InvalidListValue(field, value)
		}
		m.Set(field, splitList(core.ToText(value)))
	}
	return nil
}

func splitList(s string) []interface{} {
	parts := strings.Split(s, ",")
	out := make([]interface{}, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// coerceBooleans accepts booleans and their case-insensitive spellings.
// An explicit null takes the field's default.
func coerceBooleans(m *core.Mapping, d *schema.Descriptor) error {
	for _, field := range d.BooleanFields() {
		value, ok := m.Get(field)
		if !ok {
			continue
		}
		if value == nil {
			if def, hasDefault := d.Default(field); hasDefault {
				m.Set(field, def)
			}
			continue
		}
		if _, isBool := value.(bool); isBool {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(core.ToText(value))) {
		case "true":
			m.Set(field, true)
		case "false":
			m.Set(field, false)
		default:
			return errors.InvalidBooleanValue(field, value)
		}
	}
	return nil
}
