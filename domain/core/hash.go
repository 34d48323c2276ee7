package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// ConfigHash is the hex sha256 of a configuration's canonical rendering.
// Two configurations with equal hashes hold the same fields in the same order.
type ConfigHash string

const shortHashLen = 12

func NewConfigHash(canonical []byte) ConfigHash {
	sum := sha256.Sum256(canonical)
	return ConfigHash(hex.EncodeToString(sum[:]))
}

func (h ConfigHash) String() string { return string(h) }

// Short returns a prefix suitable for log lines
func (h ConfigHash) Short() string {
	if len(h) <= shortHashLen {
		return string(h)
	}
	return string(h[:shortHashLen])
}
