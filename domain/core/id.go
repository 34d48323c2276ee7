package core

import "github.com/google/uuid"

// RunID tags every log line written by one invocation of the tooling.
type RunID string

// NewRunID returns a time-ordered identifier. uuid v4 is used when the
// v7 clock source fails.
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return RunID(id.String())
}

func (id RunID) String() string { return string(id) }

func (id RunID) IsEmpty() bool { return id == "" }
