package oui

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// The on disk format version.
const databaseVersion = 1

// The on disk database layout.
type databaseFile struct {
	Version   int       `json:"version"`
	Source    string    `json:"source,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	Records   []Record  `json:"records"`
}

// An indexed set of vendor records. Databases are built whole by New or Load
// and never modified afterwards.
type Database struct {
	source    string
	updatedAt time.Time
	records   []Record
	byPrefix  map[string]int
	folded    []string
}

// New validates and indexes parsed records into a database. Records sharing
// a prefix collapse to one entry, with the last parsed value winning while
// keeping the position of the first.
func New(source string, records []Record) (*Database, error) {
	if len(records) == 0 {
		return nil, ErrEmptyRegistry
	}
	db := &Database{
		source:    source,
		updatedAt: time.Now().UTC(),
		byPrefix:  make(map[string]int, len(records)),
	}
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return nil, err
		}
		key := record.Key()
		if at, ok := db.byPrefix[key]; ok {
			db.records[at] = record
			db.folded[at] = strings.ToLower(record.Vendor)
			continue
		}
		db.byPrefix[key] = len(db.records)
		db.records = append(db.records, record)
		db.folded = append(db.folded, strings.ToLower(record.Vendor))
	}
	return db, nil
}

// Load reads and indexes a previously saved database.
func Load(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}
	var file databaseFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &CorruptError{Path: path, Reason: err.Error()}
	}
	if file.Version != databaseVersion {
		return nil, &CorruptError{Path: path, Reason: fmt.Sprintf("unsupported version %d", file.Version)}
	}
	db, err := New(file.Source, file.Records)
	if err != nil {
		return nil, &CorruptError{Path: path, Reason: err.Error()}
	}
	db.updatedAt = file.UpdatedAt
	return db, nil
}

// Save writes the database as JSON, replacing any existing file atomically
// by writing a temporary file in the same directory and renaming it over
// the destination.
func (db *Database) Save(path string) error {
	file := databaseFile{
		Version:   databaseVersion,
		Source:    db.source,
		UpdatedAt: db.updatedAt,
		Records:   db.records,
	}
	data, err := json.Marshal(file)
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}

	// Verify the directory exists.
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err != nil {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &PersistenceError{Path: path, Err: err}
		}
	}

	// Write the new database beside the old one.
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return &PersistenceError{Path: path, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &PersistenceError{Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &PersistenceError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}

	// Swap it into place.
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}

// Source returns the datasource name the records came from.
func (db *Database) Source() string {
	return db.source
}

// UpdatedAt returns when the records were fetched.
func (db *Database) UpdatedAt() time.Time {
	return db.updatedAt
}

// Len returns the number of records.
func (db *Database) Len() int {
	return len(db.records)
}

// Records returns the records in stored order.
func (db *Database) Records() []Record {
	return db.records
}

// FindVendor returns every record whose vendor name contains the query,
// compared case insensitively, in stored order. The folded names are built
// once at index time, queries only fold the query itself.
func (db *Database) FindVendor(query string) ([]Record, error) {
	q := strings.ToLower(query)
	var matches []Record
	for at, vendor := range db.folded {
		if strings.Contains(vendor, q) {
			matches = append(matches, db.records[at])
		}
	}
	if len(matches) == 0 {
		return nil, &NoMatchError{Query: query}
	}
	return matches, nil
}

// FindPrefix returns the record covering the given address, preferring the
// longest registered prefix when assignments nest.
func (db *Database) FindPrefix(mac MAC) (Record, bool) {
	for _, bits := range []int{BitsFull, BitsSmall, BitsMedium, BitsLarge} {
		if at, ok := db.byPrefix[mac.PrefixHex(bits)]; ok {
			return db.records[at], true
		}
	}
	return Record{}, false
}

// RandomRecord returns a uniformly random record.
func (db *Database) RandomRecord() Record {
	return db.records[rand.Intn(len(db.records))]
}
