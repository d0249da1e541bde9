package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/randmac/randmac/oui"
)

// Registry formats the update command accepts.
var RegistryFormats = []string{oui.FormatMacLookupApp, oui.FormatIEEE, oui.FormatBuiltin}

// Command to rebuild the vendor database from a registry.
type UpdateCmd struct {
	Format string `help:"Registry format to parse (${registryFormats})" optional:""`
	URL    string `help:"Registry URL to download" optional:""`
	File   string `help:"Read the registry from a file instead of downloading" optional:"" type:"existingfile"`
}

func (u *UpdateCmd) Run() (err error) {
	config := ReadConfig()

	// Flag overrides for one off imports.
	format := config.Datasource.Name
	url := config.Datasource.URL
	if u.Format != "" {
		format = u.Format
	}
	if u.URL != "" {
		url = u.URL
	}

	fmt.Println("Updating database...")

	// Gather the raw registry payload.
	var raw []byte
	switch {
	case format == oui.FormatBuiltin:
		// Compiled in table, nothing to fetch.
	case u.File != "":
		raw, err = os.ReadFile(u.File)
		if err != nil {
			return fmt.Errorf("read registry file: %w", err)
		}
	default:
		raw, err = FetchRegistry(url)
		if err != nil {
			return err
		}
	}

	// Parse the payload into records.
	records, skipped, err := oui.ParseRegistry(format, raw)
	if err != nil {
		return err
	}
	if skipped > 0 {
		log.Warnf("Skipped %d registry entries that failed to parse.", skipped)
	}

	// Index the records and swap the database on disk. A failure on either
	// step leaves the previous database in place.
	db, err := oui.New(format, records)
	if err != nil {
		return err
	}
	err = db.Save(config.DatabasePath)
	if err != nil {
		return err
	}

	fmt.Printf("Database updated, found %d entries!\n", db.Len())
	return nil
}
