// Package sha256 adapts the SHA-256 core to the digest.Hasher interface.
package sha256

import (
	"encoding/hex"
	"fmt"

	core "github.com/JakeFAU/sha256digest/pkg/sha256"
)

// Hasher implements digest.Hasher using the in-repo SHA-256 core.
type Hasher struct {
	table *core.Table
}

// New returns a SHA-256 hasher backed by the shared constant table.
func New() *Hasher {
	return &Hasher{table: core.DefaultTable()}
}

// NewWithTable returns a hasher that computes with an explicit table.
func NewWithTable(table *core.Table) *Hasher {
	return &Hasher{table: table}
}

// Hash hashes the input and returns a lowercase hex digest.
func (h *Hasher) Hash(data []byte) (string, error) {
	sum, err := h.table.Sum(data)
	if err != nil {
		return "", fmt.Errorf("sha256 digest: %w", err)
	}
	return hex.EncodeToString(sum[:]), nil
}
