package main

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/randmac/randmac/oui"
)

// Pick one record out of a multi vendor match.
func pickRecord(records []oui.Record) oui.Record {
	return records[rand.Intn(len(records))]
}

// Load the vendor database, pointing at the update command when missing.
func openDatabase(config *Config) (*oui.Database, error) {
	db, err := oui.Load(config.DatabasePath)
	if err != nil {
		var notFound *oui.NotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%v, run the update command to download it", err)
		}
		return nil, err
	}
	return db, nil
}
