package ports

import (
	"rsmconfig/domain/core"
)

// ConfigSourcePort loads a raw, unvalidated configuration document.
// Implementations must preserve the key order of the document.
type ConfigSourcePort interface {
	Load(path string) (*core.Mapping, error)
}
