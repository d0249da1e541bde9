package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/randmac/randmac/oui"
)

// Commands searching the vendor database.
type LookupCmd struct {
	Vendor LookupVendorCmd `cmd:"" help:"List records whose vendor name contains a query"`
	Mac    LookupMacCmd    `cmd:"" help:"Find the vendor owning an address"`
}

// Command to search by vendor name.
type LookupVendorCmd struct {
	Query string `arg:"" help:"Vendor name to search for" required:""`
}

func (a *LookupVendorCmd) Run() (err error) {
	config := ReadConfig()
	db, err := openDatabase(config)
	if err != nil {
		return err
	}

	// Find every record matching the query.
	matches, err := db.FindVendor(a.Query)
	if err != nil {
		return err
	}

	renderRecords(matches)
	return nil
}

// Command to resolve an address to its vendor.
type LookupMacCmd struct {
	Address string `arg:"" help:"MAC address to look up" required:""`
}

func (a *LookupMacCmd) Run() (err error) {
	config := ReadConfig()
	db, err := openDatabase(config)
	if err != nil {
		return err
	}

	// Parse the full address.
	mac, err := oui.ParseMAC(a.Address)
	if err != nil {
		return err
	}

	// Resolve to the longest registered prefix.
	record, ok := db.FindPrefix(mac)
	if !ok {
		fmt.Printf("No registered vendor found for %s.\n", mac)
		return nil
	}

	renderRecords([]oui.Record{record})
	return nil
}

// Render records for both lookups.
func renderRecords(records []oui.Record) {
	// Setup table for the record list.
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Prefix", "Bits", "Block", "Vendor", "Private"})

	// Add rows for each record.
	for _, record := range records {
		t.AppendRow([]interface{}{record.PrettyPrefix(), record.Bits, record.Block, record.Vendor, record.Private})
	}

	// Print the table.
	t.Render()
}
