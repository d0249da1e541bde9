package oui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// A small registry covering every prefix width.
func testRecords() []Record {
	return []Record{
		{Prefix: 0xacde48000000, Bits: BitsLarge, Vendor: "Intel Corporate", Block: BlockLarge},
		{Prefix: 0x001b21000000, Bits: BitsLarge, Vendor: "Intel Corp", Block: BlockLarge},
		{Prefix: 0x0055da000000, Bits: BitsLarge, Vendor: "Big Block", Block: BlockLarge},
		{Prefix: 0x0055da800000, Bits: BitsMedium, Vendor: "Medium Block", Block: BlockMedium},
		{Prefix: 0x8c1f64e1b000, Bits: BitsSmall, Vendor: "Small Block", Block: BlockSmall},
		{Prefix: 0xaabbccddeeff, Bits: BitsFull, Vendor: "Single Address"},
	}
}

func mustDatabase(t *testing.T, records []Record) *Database {
	t.Helper()
	db, err := New("test", records)
	require.NoError(t, err)
	return db
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New("test", nil)
	require.ErrorIs(t, err, ErrEmptyRegistry)
}

func TestNewRejectsInvalidRecord(t *testing.T) {
	_, err := New("test", []Record{{Prefix: 0xacde48000000, Bits: 17, Vendor: "Bad Width"}})
	require.Error(t, err)

	_, err = New("test", []Record{{Prefix: 0xacde48000001, Bits: BitsLarge, Vendor: "Dirty Host Bits"}})
	require.Error(t, err)

	// The host bits of MaxMAC+1 are clean, only the range check catches it.
	_, err = New("test", []Record{{Prefix: MaxMAC + 1, Bits: BitsLarge, Vendor: "Out Of Range"}})
	require.Error(t, err)
}

func TestNewDeduplicates(t *testing.T) {
	db := mustDatabase(t, []Record{
		{Prefix: 0xacde48000000, Bits: BitsLarge, Vendor: "Old Name"},
		{Prefix: 0x001b21000000, Bits: BitsLarge, Vendor: "Other Vendor"},
		{Prefix: 0xacde48000000, Bits: BitsLarge, Vendor: "New Name"},
	})

	// The later entry wins but keeps the earlier position.
	require.Equal(t, 2, db.Len())
	require.Equal(t, "New Name", db.Records()[0].Vendor)
	require.Equal(t, "Other Vendor", db.Records()[1].Vendor)

	record, ok := db.FindPrefix(0xacde48123456)
	require.True(t, ok)
	require.Equal(t, "New Name", record.Vendor)
}

func TestFindVendorReturnsAllMatches(t *testing.T) {
	db := mustDatabase(t, testRecords())

	matches, err := db.FindVendor("intel corp")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, "Intel Corporate", matches[0].Vendor)
	require.Equal(t, "Intel Corp", matches[1].Vendor)

	// Case of the query and of the stored name doesn't matter.
	matches, err = db.FindVendor("INTEL")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	matches, err = db.FindVendor("single address")
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestFindVendorNoMatch(t *testing.T) {
	db := mustDatabase(t, testRecords())

	_, err := db.FindVendor("definitely not a vendor")
	var noMatch *NoMatchError
	require.ErrorAs(t, err, &noMatch)
	require.Equal(t, "definitely not a vendor", noMatch.Query)
}

func TestFindPrefixLongestMatch(t *testing.T) {
	db := mustDatabase(t, testRecords())

	// Inside the 28 bit block nested under the 24 bit one.
	record, ok := db.FindPrefix(0x0055da812233)
	require.True(t, ok)
	require.Equal(t, "Medium Block", record.Vendor)

	// Outside the nested block, the 24 bit assignment covers it.
	record, ok = db.FindPrefix(0x0055da712233)
	require.True(t, ok)
	require.Equal(t, "Big Block", record.Vendor)

	record, ok = db.FindPrefix(0x8c1f64e1b234)
	require.True(t, ok)
	require.Equal(t, "Small Block", record.Vendor)

	record, ok = db.FindPrefix(0xaabbccddeeff)
	require.True(t, ok)
	require.Equal(t, "Single Address", record.Vendor)

	_, ok = db.FindPrefix(0x123456789abc)
	require.False(t, ok)
}

func TestRandomRecord(t *testing.T) {
	db := mustDatabase(t, testRecords())
	vendors := make(map[string]bool)
	for _, record := range db.Records() {
		vendors[record.Vendor] = true
	}
	for i := 0; i < 100; i++ {
		require.True(t, vendors[db.RandomRecord().Vendor])
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	db := mustDatabase(t, testRecords())
	require.NoError(t, db.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, db.Records(), loaded.Records())
	require.Equal(t, "test", loaded.Source())
	require.True(t, db.UpdatedAt().Equal(loaded.UpdatedAt()))

	record, ok := loaded.FindPrefix(0xacde48998877)
	require.True(t, ok)
	require.Equal(t, "Intel Corporate", record.Vendor)
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "database.json")
	db := mustDatabase(t, testRecords())
	require.NoError(t, db.Save(path))

	_, err := Load(path)
	require.NoError(t, err)
}

func TestSaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "database.json")

	first := mustDatabase(t, testRecords())
	require.NoError(t, first.Save(path))

	second := mustDatabase(t, []Record{
		{Prefix: 0x112233000000, Bits: BitsLarge, Vendor: "Replacement Vendor"},
	})
	require.NoError(t, second.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	require.Equal(t, "Replacement Vendor", loaded.Records()[0].Vendor)

	// No temporary files may linger next to the database.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSaveFailureKeepsPreviousSnapshot(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "database.json")

	first := mustDatabase(t, testRecords())
	require.NoError(t, first.Save(path))

	// With the directory read only, the replacement can't be staged.
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	second := mustDatabase(t, []Record{
		{Prefix: 0x112233000000, Bits: BitsLarge, Vendor: "Replacement Vendor"},
	})
	err := second.Save(path)
	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)

	// The failed save leaves the original snapshot loadable.
	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, first.Records(), loaded.Records())
}

func TestSavePersistenceError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// The parent of the target path is a regular file.
	db := mustDatabase(t, testRecords())
	err := db.Save(filepath.Join(blocker, "database.json"))
	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	_, err := Load(path)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, path, notFound.Path)
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0644))
	_, err := Load(garbage)
	var corrupt *CorruptError
	require.ErrorAs(t, err, &corrupt)

	wrongVersion := filepath.Join(dir, "version.json")
	require.NoError(t, os.WriteFile(wrongVersion, []byte(`{"version":99,"records":[{"prefix":"ac:de:48:00:00:00","bits":24,"vendor":"X"}]}`), 0644))
	_, err = Load(wrongVersion)
	require.ErrorAs(t, err, &corrupt)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"version":1,"records":[]}`), 0644))
	_, err = Load(empty)
	require.ErrorAs(t, err, &corrupt)
}

func TestEmptyRegistryLeavesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	db := mustDatabase(t, testRecords())
	require.NoError(t, db.Save(path))

	// An update run against an empty registry fails at parse and never
	// reaches Save, so the file on disk must stay loadable.
	_, _, err := ParseRegistry(FormatMacLookupApp, []byte(`[]`))
	require.ErrorIs(t, err, ErrEmptyRegistry)

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, db.Len(), loaded.Len())
}
