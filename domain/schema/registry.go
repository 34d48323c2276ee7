package schema

import (
	"fmt"

	"rsmconfig/domain/core"
)

// MaxIdentifierLength bounds the identifier field of every context
const MaxIdentifierLength = 200

// Descriptor is the read-only schema of one context
type Descriptor struct {
	context  Context
	idField  string
	required []string
	optional []string
	known    map[string]bool
	lists    map[string]bool
	booleans map[string]bool
	aliases  []Alias
}

var registry = buildRegistry()

// Lookup returns the descriptor for ctx
func Lookup(ctx Context) (*Descriptor, error) {
	d, ok := registry[ctx]
	if !ok {
		return nil, unknownContext(string(ctx))
	}
	return d, nil
}

// MustLookup is Lookup for contexts known to be valid
func MustLookup(ctx Context) *Descriptor {
	d, err := Lookup(ctx)
	if err != nil {
		panic(err)
	}
	return d
}

func buildRegistry() map[Context]*Descriptor {
	out := make(map[Context]*Descriptor, len(tables))
	for _, ctx := range allContexts {
		d, err := newDescriptor(ctx, tables[ctx])
		if err != nil {
			panic(err)
		}
		out[ctx] = d
	}
	return out
}

func newDescriptor(ctx Context, t table) (*Descriptor, error) {
	d := &Descriptor{
		context:  ctx,
		idField:  t.id,
		required: append([]string(nil), t.required...),
		optional: append([]string(nil), t.optional...),
		known:    make(map[string]bool, len(t.required)+len(t.optional)),
		lists:    make(map[string]bool),
		booleans: make(map[string]bool),
	}

	for _, f := range t.required {
		if d.known[f] {
			return nil, fmt.Errorf("schema %s: duplicate required field %s", ctx, f)
		}
		d.known[f] = true
	}
	for _, f := range t.optional {
		if d.known[f] {
			return nil, fmt.Errorf("schema %s: field %s listed twice", ctx, f)
		}
		if _, ok := defaultValues[f]; !ok {
			return nil, fmt.Errorf("schema %s: optional field %s has no default", ctx, f)
		}
		d.known[f] = true
	}
	if !d.known[t.id] {
		return nil, fmt.Errorf("schema %s: identifier %s is not a field", ctx, t.id)
	}

	for _, f := range listFields {
		if d.known[f] {
			d.lists[f] = true
		}
	}
	for _, f := range booleanFields {
		if d.known[f] {
			d.booleans[f] = true
		}
	}
	for _, a := range aliasTable {
		if d.known[a.To] {
			d.aliases = append(d.aliases, a)
		}
	}
	return d, nil
}

// Context returns the context this descriptor belongs to
func (d *Descriptor) Context() Context { return d.context }

// IDField returns the identifier field name
func (d *Descriptor) IDField() string { return d.idField }

// Required returns required field names in declaration order
func (d *Descriptor) Required() []string { return append([]string(nil), d.required...) }

// Optional returns optional field names in declaration order
func (d *Descriptor) Optional() []string { return append([]string(nil), d.optional...) }

// Fields returns required then optional field names
func (d *Descriptor) Fields() []string {
	out := make([]string, 0, len(d.required)+len(d.optional))
	out = append(out, d.required...)
	return append(out, d.optional...)
}

func (d *Descriptor) Allows(field string) bool { return d.known[field] }

func (d *Descriptor) IsRequired(field string) bool {
	for _, f := range d.required {
		if f == field {
			return true
		}
	}
	return false
}

func (d *Descriptor) IsOptional(field string) bool {
	return d.known[field] && !d.IsRequired(field)
}

func (d *Descriptor) IsList(field string) bool    { return d.lists[field] }
func (d *Descriptor) IsBoolean(field string) bool { return d.booleans[field] }

// ListFields returns the list-typed fields of this context in table order
func (d *Descriptor) ListFields() []string { return filterFields(listFields, d.lists) }

// BooleanFields returns the boolean-typed fields of this context in table order
func (d *Descriptor) BooleanFields() []string { return filterFields(booleanFields, d.booleans) }

// Default returns a fresh copy of the default for an optional field
func (d *Descriptor) Default(field string) (interface{}, bool) {
	if !d.IsOptional(field) {
		return nil, false
	}
	return core.CopyValue(defaultValues[field]), true
}

// Aliases returns the legacy names that apply to this context
func (d *Descriptor) Aliases() []Alias { return append([]Alias(nil), d.aliases...) }

// Alias finds the alias registered for a legacy name
func (d *Descriptor) Alias(legacy string) (Alias, bool) {
	for _, a := range d.aliases {
		if a.From == legacy {
			return a, true
		}
	}
	return Alias{}, false
}

// Template returns a skeleton configuration: required fields set to null
// followed by every optional default.
func (d *Descriptor) Template() *core.Mapping {
	m := core.NewMapping()
	for _, f := range d.required {
		m.Set(f, nil)
	}
	for _, f := range d.optional {
		v, _ := d.Default(f)
		m.Set(f, v)
	}
	return m
}

func filterFields(ordered []string, in map[string]bool) []string {
	var out []string
	for _, f := range ordered {
		if in[f] {
			out = append(out, f)
		}
	}
	return out
}
