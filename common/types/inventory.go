package types

import (
	"sort"

	"go.uber.org/zap/zapcore"
)

// Inventory is the set of descriptors a party has installed or requires.
// Ids are expected to be unique, duplicates are a data error on the producing side.
type Inventory []ModDescriptor

// Index returns descriptors keyed by id. On duplicate ids the last one wins.
func (inv Inventory) Index() map[string]ModDescriptor {
	index := make(map[string]ModDescriptor, len(inv))
	for _, d := range inv {
		index[d.ID] = d
	}
	return index
}

// Lookup finds a descriptor by id.
func (inv Inventory) Lookup(id string) (ModDescriptor, bool) {
	for _, d := range inv {
		if d.ID == id {
			return d, true
		}
	}
	return ModDescriptor{}, false
}

// IDs returns sorted ids of the inventory.
func (inv Inventory) IDs() []string {
	ids := make([]string, 0, len(inv))
	for _, d := range inv {
		ids = append(ids, d.ID)
	}
	sort.Strings(ids)
	return ids
}

// MarshalLogArray implements logging encoder for Inventory.
func (inv Inventory) MarshalLogArray(encoder zapcore.ArrayEncoder) error {
	for _, d := range inv {
		if err := encoder.AppendObject(d); err != nil {
			return err
		}
	}
	return nil
}
