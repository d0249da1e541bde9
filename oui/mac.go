package oui

import (
	"encoding/binary"
	"fmt"
	"net"
	"strings"
)

// A 48 bit hardware address stored in the low bits of a uint64.
type MAC uint64

// The largest valid hardware address, ff:ff:ff:ff:ff:ff.
const MaxMAC MAC = 1<<48 - 1

// Flag bits in the first octet of an address.
const (
	multicastBit MAC = 1 << 40
	localBit     MAC = 1 << 41
)

// Prefix widths assigned by the IEEE registries.
const (
	BitsLarge  = 24 // MA-L and CID assignments.
	BitsMedium = 28 // MA-M assignments.
	BitsSmall  = 36 // MA-S and legacy IAB assignments.
	BitsFull   = 48 // A fully specified address.
)

// Reports whether bits is a supported prefix width.
func ValidBits(bits int) bool {
	switch bits {
	case BitsLarge, BitsMedium, BitsSmall, BitsFull:
		return true
	}
	return false
}

// Mask covering the host bits below a prefix width.
func hostMask(bits int) MAC {
	return 1<<(48-bits) - 1
}

// Convert a 6 byte hardware address.
func FromHardwareAddr(hw net.HardwareAddr) (MAC, error) {
	if len(hw) != 6 {
		return 0, fmt.Errorf("hardware address %q is not 48 bits", hw.String())
	}
	var buf [8]byte
	copy(buf[2:], hw)
	return MAC(binary.BigEndian.Uint64(buf[:])), nil
}

// Parse a complete hardware address in any form net.ParseMAC accepts.
func ParseMAC(s string) (MAC, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return 0, err
	}
	return FromHardwareAddr(hw)
}

// HardwareAddr converts the address to its 6 byte form.
func (m MAC) HardwareAddr() net.HardwareAddr {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(m))
	return net.HardwareAddr(buf[2:])
}

// String formats the address as lower case colon separated octets.
func (m MAC) String() string {
	return m.HardwareAddr().String()
}

// Multicast reports whether the group bit is set in the first octet.
func (m MAC) Multicast() bool {
	return m&multicastBit != 0
}

// Local reports whether the locally administered bit is set in the first octet.
func (m MAC) Local() bool {
	return m&localBit != 0
}

// Mask zeroes the host bits below the prefix width.
func (m MAC) Mask(bits int) MAC {
	return m &^ hostMask(bits)
}

// PrefixHex formats the top bits of the address as bare lower case hex digits.
func (m MAC) PrefixHex(bits int) string {
	return fmt.Sprintf("%0*x", bits/4, uint64(m)>>(48-bits))
}

// PrefixString formats the top bits of the address as colon separated hex,
// leaving a trailing nibble on the odd 28 and 36 bit widths.
func (m MAC) PrefixString(bits int) string {
	hex := m.PrefixHex(bits)
	var b strings.Builder
	for i := 0; i < len(hex); i += 2 {
		if i != 0 {
			b.WriteByte(':')
		}
		end := i + 2
		if end > len(hex) {
			end = len(hex)
		}
		b.WriteString(hex[i:end])
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (m MAC) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MAC) UnmarshalText(text []byte) error {
	parsed, err := ParseMAC(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
