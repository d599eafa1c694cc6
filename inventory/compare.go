// Package inventory computes the difference between a local and a remote add-on inventory.
package inventory

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/rat/modsync/common/types"
)

// Mismatch is a pair of descriptors with the same id and a different version.
type Mismatch struct {
	Local  types.ModDescriptor
	Remote types.ModDescriptor
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s -> %s", m.Remote.Name(), m.Local.Version, m.Remote.Version)
}

// MarshalLogObject implements logging encoder for Mismatch.
func (m Mismatch) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("id", m.Remote.ID)
	encoder.AddString("local", m.Local.Version)
	encoder.AddString("remote", m.Remote.Version)
	return nil
}

// Comparison is the result of Compare.
//
// Every remote descriptor is either matched (in neither list), missing or mismatched.
// Both lists preserve the iteration order of the remote inventory.
type Comparison struct {
	Missing    []types.ModDescriptor
	Mismatched []Mismatch
}

// Compare builds an id index of local and walks remote once.
func Compare(local, remote types.Inventory) Comparison {
	index := local.Index()
	var result Comparison
	for _, r := range remote {
		l, exists := index[r.ID]
		switch {
		case !exists:
			result.Missing = append(result.Missing, r)
		case !l.Matches(r):
			result.Mismatched = append(result.Mismatched, Mismatch{Local: l, Remote: r})
		}
	}
	return result
}

// IsCompatible is true if nothing is missing or mismatched.
func (c Comparison) IsCompatible() bool {
	return len(c.Missing) == 0 && len(c.Mismatched) == 0
}

func (c Comparison) HasIssues() bool {
	return !c.IsCompatible()
}

func (c Comparison) TotalIssues() int {
	return len(c.Missing) + len(c.Mismatched)
}

// Targets returns descriptors that have to be fetched to become compatible.
func (c Comparison) Targets() []types.ModDescriptor {
	targets := make([]types.ModDescriptor, 0, c.TotalIssues())
	targets = append(targets, c.Missing...)
	for _, m := range c.Mismatched {
		targets = append(targets, m.Remote)
	}
	return targets
}

// Summary is a one line description suitable for notifications.
func (c Comparison) Summary() string {
	if c.IsCompatible() {
		return "All mods match server requirements"
	}
	var parts []string
	if len(c.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("%d missing mod(s)", len(c.Missing)))
	}
	if len(c.Mismatched) > 0 {
		parts = append(parts, fmt.Sprintf("%d version mismatch(es)", len(c.Mismatched)))
	}
	return strings.Join(parts, ", ")
}

// MarshalLogObject implements logging encoder for Comparison.
func (c Comparison) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddBool("compatible", c.IsCompatible())
	if err := encoder.AddArray("missing", types.Inventory(c.Missing)); err != nil {
		return err
	}
	return encoder.AddArray("mismatched", zapcore.ArrayMarshalerFunc(func(enc zapcore.ArrayEncoder) error {
		for _, m := range c.Mismatched {
			if err := enc.AppendObject(m); err != nil {
				return err
			}
		}
		return nil
	}))
}
