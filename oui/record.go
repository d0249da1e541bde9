package oui

import (
	"fmt"
	"strings"
)

// Registry block types assigned by the IEEE.
const (
	BlockLarge  = "MA-L"
	BlockMedium = "MA-M"
	BlockSmall  = "MA-S"
	BlockCID    = "CID"
	BlockIAB    = "IAB"
)

// Prefix widths implied by each block type.
var blockBits = map[string]int{
	BlockLarge:  BitsLarge,
	BlockCID:    BitsLarge,
	BlockMedium: BitsMedium,
	BlockSmall:  BitsSmall,
	BlockIAB:    BitsSmall,
}

// A single vendor assignment from the registry.
type Record struct {
	Prefix  MAC    `json:"prefix"`
	Bits    int    `json:"bits"`
	Vendor  string `json:"vendor"`
	Private bool   `json:"private,omitempty"`
	Block   string `json:"block,omitempty"`
}

// Key returns the canonical index key, bare hex at the native width.
func (r Record) Key() string {
	return r.Prefix.PrefixHex(r.Bits)
}

// PrettyPrefix formats the prefix at its native width for display.
func (r Record) PrettyPrefix() string {
	return r.Prefix.PrefixString(r.Bits)
}

// Validate checks the record invariants.
func (r Record) Validate() error {
	if !ValidBits(r.Bits) {
		return fmt.Errorf("prefix %s has unsupported width %d", r.Prefix, r.Bits)
	}
	if r.Prefix > MaxMAC {
		return fmt.Errorf("prefix %#x has bits above the 48 bit range", uint64(r.Prefix))
	}
	if r.Prefix&hostMask(r.Bits) != 0 {
		return fmt.Errorf("prefix %s has bits set below its %d bit width", r.Prefix, r.Bits)
	}
	if strings.TrimSpace(r.Vendor) == "" {
		return fmt.Errorf("prefix %s has no vendor name", r.PrettyPrefix())
	}
	if r.Block != "" && r.Bits != BitsFull {
		bits, ok := blockBits[r.Block]
		if !ok {
			return fmt.Errorf("prefix %s has unknown block type %q", r.PrettyPrefix(), r.Block)
		}
		if bits != r.Bits {
			return fmt.Errorf("prefix %s is %d bits wide but block %s assigns %d", r.PrettyPrefix(), r.Bits, r.Block, bits)
		}
	}
	return nil
}
