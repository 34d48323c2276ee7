package schema

import (
	apperrors "rsmconfig/internal/errors"
)

// Context selects which schema applies to a configuration
type Context string

const (
	ContextTool      Context = "rsmtool"
	ContextEval      Context = "rsmeval"
	ContextCompare   Context = "rsmcompare"
	ContextSummarize Context = "rsmsummarize"
	ContextPredict   Context = "rsmpredict"
	ContextXval      Context = "rsmxval"
	ContextExplain   Context = "rsmexplain"
)

var allContexts = []Context{
	ContextTool,
	ContextEval,
	ContextCompare,
	ContextSummarize,
	ContextPredict,
	ContextXval,
	ContextExplain,
}

// Contexts returns every known context in a stable order
func Contexts() []Context {
	out := make([]Context, len(allContexts))
	copy(out, allContexts)
	return out
}

func (c Context) String() string { return string(c) }

// IsValid reports whether c is one of the known contexts
func (c Context) IsValid() bool {
	for _, known := range allContexts {
		if c == known {
			return true
		}
	}
	return false
}

// ParseContext parses a context tag
func ParseContext(s string) (Context, error) {
	c := Context(s)
	if !c.IsValid() {
		return "", unknownContext(s)
	}
	return c, nil
}

func unknownContext(s string) error {
	names := make([]string, len(allContexts))
	for i, c := range allContexts {
		names[i] = string(c)
	}
	return apperrors.UnknownContext(s, names)
}
