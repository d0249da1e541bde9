package oui

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// Synthesizer generates random addresses under registry prefixes. The zero
// value reads from crypto/rand, tests may swap in a deterministic reader.
type Synthesizer struct {
	Rand io.Reader
}

// Read 48 random bits.
func (s *Synthesizer) randomBits() (MAC, error) {
	r := s.Rand
	if r == nil {
		r = rand.Reader
	}
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[2:]); err != nil {
		return 0, fmt.Errorf("read random bytes: %w", err)
	}
	return MAC(binary.BigEndian.Uint64(buf[:])), nil
}

// FromPrefix generates an address keeping the prefix bits and randomizing
// the host bits below them. The group bit is cleared after assembly so the
// result is always unicast, every other bit of the prefix, including the
// locally administered bit, is kept as assigned. A full 48 bit prefix has
// no host bits and comes back as is, aside from the group bit.
func (s *Synthesizer) FromPrefix(prefix MAC, bits int) (MAC, error) {
	if !ValidBits(bits) {
		return 0, fmt.Errorf("prefix %s has unsupported width %d", prefix, bits)
	}
	mac := prefix.Mask(bits)
	if bits < BitsFull {
		random, err := s.randomBits()
		if err != nil {
			return 0, err
		}
		mac |= random & hostMask(bits)
	}
	return mac &^ multicastBit, nil
}

// FromRecord generates an address under a registry record's prefix.
func (s *Synthesizer) FromRecord(record Record) (MAC, error) {
	return s.FromPrefix(record.Prefix, record.Bits)
}
