package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/randmac/randmac/oui"
)

// Commands generating random addresses.
type RandomCmd struct {
	Vendor    RandomVendorCmd    `cmd:"" help:"Random MAC address from a vendor name match"`
	Prefix    RandomPrefixCmd    `cmd:"" help:"Random MAC address under a given prefix"`
	Interface RandomInterfaceCmd `cmd:"" help:"Random MAC address keeping each interface's current vendor"`
}

// Command to generate from a vendor name.
type RandomVendorCmd struct {
	Vendor     string   `arg:"" help:"Vendor name to search for" required:""`
	Interfaces []string `arg:"" name:"interface" help:"Interfaces to update with generated addresses" optional:""`
}

func (a *RandomVendorCmd) Run() (err error) {
	config := ReadConfig()
	db, err := openDatabase(config)
	if err != nil {
		return err
	}

	fmt.Printf("Generating random MAC address with vendor %s...\n", a.Vendor)

	// Find every record matching the vendor query.
	matches, err := db.FindVendor(a.Vendor)
	if err != nil {
		return err
	}
	log.Debugf("Found %d records matching %q.", len(matches), a.Vendor)

	// With no interfaces we just print one generated address.
	synth := new(oui.Synthesizer)
	if len(a.Interfaces) == 0 {
		record := pickRecord(matches)
		log.Debugf("Picked vendor %q with prefix %s.", record.Vendor, record.PrettyPrefix())
		mac, err := synth.FromRecord(record)
		if err != nil {
			return err
		}
		fmt.Println("Random MAC address:", mac)
		return nil
	}

	// Updating interfaces needs privileges.
	err = requireRoot()
	if err != nil {
		return err
	}

	// Each interface gets its own record pick and host bits.
	for _, name := range a.Interfaces {
		record := pickRecord(matches)
		mac, err := updateInterface(name, record, synth)
		if err != nil {
			log.Errorf("Failed to update interface %s: %v", name, err)
			continue
		}
		fmt.Printf("Updated MAC address of %s to %s\n", name, mac)
	}
	return nil
}

// Command to generate from a raw prefix.
type RandomPrefixCmd struct {
	Prefix     string   `arg:"" help:"Hex prefix of 24, 28, 36 or 48 bits" required:""`
	Interfaces []string `arg:"" name:"interface" help:"Interfaces to update with generated addresses" optional:""`
}

func (a *RandomPrefixCmd) Run() (err error) {
	fmt.Printf("Generating random MAC address with prefix %s...\n", a.Prefix)

	// Parse and validate the prefix shape.
	prefix, bits, err := oui.ParsePrefix(a.Prefix)
	if err != nil {
		return err
	}

	// With no interfaces, generate straight from the given prefix without
	// consulting the database.
	synth := new(oui.Synthesizer)
	if len(a.Interfaces) == 0 {
		mac, err := synth.FromPrefix(prefix, bits)
		if err != nil {
			return err
		}
		fmt.Println("Random MAC address:", mac)
		return nil
	}

	// Interface updates only use registered prefixes.
	config := ReadConfig()
	db, err := openDatabase(config)
	if err != nil {
		return err
	}
	record, ok := db.FindPrefix(prefix)
	if !ok {
		return fmt.Errorf("no vendor found with prefix %s", a.Prefix)
	}
	log.Debugf("Prefix belongs to %q.", record.Vendor)

	err = requireRoot()
	if err != nil {
		return err
	}
	for _, name := range a.Interfaces {
		mac, err := updateInterface(name, record, synth)
		if err != nil {
			log.Errorf("Failed to update interface %s: %v", name, err)
			continue
		}
		fmt.Printf("Updated MAC address of %s to %s\n", name, mac)
	}
	return nil
}

// Command to generate while keeping each interface's current vendor.
type RandomInterfaceCmd struct {
	Change     bool     `help:"Change the MAC address instead of printing it" short:"c"`
	Interfaces []string `arg:"" name:"interface" help:"Interfaces to use" required:""`
}

func (a *RandomInterfaceCmd) Run() (err error) {
	config := ReadConfig()
	db, err := openDatabase(config)
	if err != nil {
		return err
	}
	if a.Change {
		err = requireRoot()
		if err != nil {
			return err
		}
	}

	synth := new(oui.Synthesizer)
	for _, name := range a.Interfaces {
		// Match the interface's current vendor when it is registered.
		current, err := interfaceHardwareAddr(name)
		if err != nil {
			log.Errorf("Failed to get MAC address for interface %s: %v", name, err)
			continue
		}
		record, ok := db.FindPrefix(current)
		if !ok {
			// Unknown vendor, fall back to a random registered one.
			record = db.RandomRecord()
			log.Warnf("No registered vendor for %s, using %q.", name, record.Vendor)
		}

		if !a.Change {
			mac, err := synth.FromRecord(record)
			if err != nil {
				return err
			}
			fmt.Printf("MAC address for interface %s: %s\n", name, mac)
			continue
		}

		mac, err := updateInterface(name, record, synth)
		if err != nil {
			log.Errorf("Failed to update interface %s: %v", name, err)
			continue
		}
		fmt.Printf("Updated MAC address of %s to %s\n", name, mac)
	}
	return nil
}
