package oui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromPrefixKeepsPrefixBits(t *testing.T) {
	var synth Synthesizer
	tests := []struct {
		prefix MAC
		bits   int
	}{
		{0xacde48000000, BitsLarge},
		{0x0055da800000, BitsMedium},
		{0x8c1f64e1b000, BitsSmall},
	}
	for _, test := range tests {
		for i := 0; i < 1_000; i++ {
			mac, err := synth.FromPrefix(test.prefix, test.bits)
			require.NoError(t, err)
			require.Equal(t, test.prefix, mac.Mask(test.bits))
			require.False(t, mac.Multicast())
		}
	}
}

func TestFromPrefixAlwaysUnicast(t *testing.T) {
	// 01:00:5e has the group bit set, generated addresses still must not.
	var synth Synthesizer
	for i := 0; i < 10_000; i++ {
		mac, err := synth.FromPrefix(0x01005e000000, BitsLarge)
		require.NoError(t, err)
		require.False(t, mac.Multicast())
	}
}

func TestFromPrefixKeepsLocalBit(t *testing.T) {
	var synth Synthesizer

	// 0xaa has the locally administered bit set.
	mac, err := synth.FromPrefix(0xaabbcc000000, BitsLarge)
	require.NoError(t, err)
	require.True(t, mac.Local())

	// 0xac does not, and the bit must not be forced on.
	mac, err = synth.FromPrefix(0xacde48000000, BitsLarge)
	require.NoError(t, err)
	require.False(t, mac.Local())
}

func TestFromPrefixFullWidth(t *testing.T) {
	var synth Synthesizer

	// No host bits to randomize, the address comes back as is.
	mac, err := synth.FromPrefix(0xaabbccddeeff, BitsFull)
	require.NoError(t, err)
	require.Equal(t, MAC(0xaabbccddeeff), mac)

	// Unless the stored address itself has the group bit set.
	mac, err = synth.FromPrefix(0xabbbccddeeff, BitsFull)
	require.NoError(t, err)
	require.Equal(t, MAC(0xaabbccddeeff), mac)
}

func TestFromPrefixInvalidWidth(t *testing.T) {
	var synth Synthesizer
	_, err := synth.FromPrefix(0xacde48000000, 17)
	require.Error(t, err)
}

func TestFromPrefixDeterministicReader(t *testing.T) {
	synth := Synthesizer{Rand: bytes.NewReader([]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66})}
	mac, err := synth.FromPrefix(0xacde48000000, BitsLarge)
	require.NoError(t, err)
	require.Equal(t, "ac:de:48:44:55:66", mac.String())
}

func TestFromPrefixRandFailure(t *testing.T) {
	synth := Synthesizer{Rand: bytes.NewReader(nil)}
	_, err := synth.FromPrefix(0xacde48000000, BitsLarge)
	require.Error(t, err)
}

func TestFromRecordAcrossRegistry(t *testing.T) {
	db := mustDatabase(t, testRecords())
	var synth Synthesizer
	for i := 0; i < 10_000; i++ {
		record := db.RandomRecord()
		mac, err := synth.FromRecord(record)
		require.NoError(t, err)
		require.False(t, mac.Multicast())
		require.Equal(t, record.Prefix.Mask(record.Bits), mac.Mask(record.Bits))
	}
}

func TestFindVendorThenSynthesize(t *testing.T) {
	db := mustDatabase(t, testRecords())
	var synth Synthesizer

	matches, err := db.FindVendor("intel corp")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	for _, record := range matches {
		mac, err := synth.FromRecord(record)
		require.NoError(t, err)
		require.Equal(t, record.Prefix, mac.Mask(record.Bits))
		require.False(t, mac.Multicast())

		// The generated address resolves back to the vendor it was built from.
		found, ok := db.FindPrefix(mac)
		require.True(t, ok)
		require.Equal(t, record.Vendor, found.Vendor)
	}
}
