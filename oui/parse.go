package oui

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/gopacket/macs"
)

// Registry formats understood by ParseRegistry.
const (
	FormatMacLookupApp = "maclookupapp"
	FormatIEEE         = "ieee"
	FormatBuiltin      = "builtin"
)

// Strips the separators commonly found in hardware address prefixes.
var prefixCleaner = strings.NewReplacer(":", "", "-", "", ".", "", " ", "")

// ParsePrefix decodes a hex prefix of 24, 28, 36 or 48 bits, with or without
// separators. The width is taken from the number of hex digits.
func ParsePrefix(s string) (MAC, int, error) {
	hex := strings.ToLower(prefixCleaner.Replace(strings.TrimSpace(s)))
	var bits int
	switch len(hex) {
	case 6:
		bits = BitsLarge
	case 7:
		bits = BitsMedium
	case 9:
		bits = BitsSmall
	case 12:
		bits = BitsFull
	default:
		return 0, 0, fmt.Errorf("prefix %q has %d hex digits, want 6, 7, 9 or 12", s, len(hex))
	}
	value, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("prefix %q is not hexadecimal", s)
	}
	return MAC(value << (48 - bits)), bits, nil
}

// ParseRegistry decodes a raw registry payload into records, keeping source
// order and counting entries that had to be skipped. The payload is ignored
// for the builtin format, which reads the table compiled into gopacket.
func ParseRegistry(format string, raw []byte) ([]Record, int, error) {
	var records []Record
	var skipped int
	var err error
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatMacLookupApp:
		records, skipped, err = parseMacLookupApp(raw)
	case FormatIEEE:
		records, skipped = parseIEEE(raw)
	case FormatBuiltin:
		records = builtinRecords()
	default:
		return nil, 0, fmt.Errorf("unknown registry format %q", format)
	}
	if err != nil {
		return nil, 0, err
	}
	if len(records) == 0 {
		return nil, skipped, ErrEmptyRegistry
	}
	return records, skipped, nil
}

// A single entry in the maclookup.app JSON database.
type macLookupEntry struct {
	MacPrefix  string `json:"macPrefix"`
	VendorName string `json:"vendorName"`
	Private    bool   `json:"private"`
	BlockType  string `json:"blockType"`
}

// Decode the maclookup.app JSON database.
func parseMacLookupApp(raw []byte) ([]Record, int, error) {
	// A payload with no content is an empty registry, not malformed JSON.
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, 0, nil
	}
	var entries []macLookupEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, 0, &FormatError{Format: FormatMacLookupApp, Reason: err.Error()}
	}
	var records []Record
	var skipped int
	for _, entry := range entries {
		record, err := entryRecord(entry.MacPrefix, entry.VendorName, entry.BlockType, entry.Private)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, record)
	}
	return records, skipped, nil
}

// Decode an IEEE registry CSV export. The first three columns are the block
// type, the assignment and the organization name.
func parseIEEE(raw []byte) ([]Record, int) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	var records []Record
	var skipped int
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed row shouldn't abort the whole import.
			skipped++
			continue
		}
		if len(row) < 3 {
			skipped++
			continue
		}
		// Skip the header row.
		if row[0] == "Registry" {
			continue
		}
		record, err := entryRecord(row[1], row[2], row[0], false)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, record)
	}
	return records, skipped
}

// Build and validate a record from a single registry entry.
func entryRecord(prefix, vendor, block string, private bool) (Record, error) {
	mac, bits, err := ParsePrefix(prefix)
	if err != nil {
		return Record{}, err
	}
	record := Record{
		Prefix:  mac,
		Bits:    bits,
		Vendor:  strings.TrimSpace(vendor),
		Private: private,
		Block:   strings.TrimSpace(block),
	}
	if err := record.Validate(); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Convert the 24 bit prefix table compiled into gopacket.
func builtinRecords() []Record {
	records := make([]Record, 0, len(macs.ValidMACPrefixMap))
	for prefix, vendor := range macs.ValidMACPrefixMap {
		mac := MAC(prefix[0])<<40 | MAC(prefix[1])<<32 | MAC(prefix[2])<<24
		records = append(records, Record{
			Prefix: mac,
			Bits:   BitsLarge,
			Vendor: vendor,
			Block:  BlockLarge,
		})
	}
	// Map iteration order is random, sort for a stable database.
	sort.Slice(records, func(i, j int) bool {
		return records[i].Prefix < records[j].Prefix
	})
	return records
}
