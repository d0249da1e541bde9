package main

import (
	"fmt"
	"net"
	"os"

	"github.com/randmac/randmac/oui"
)

// Current MAC address of a named interface.
func interfaceHardwareAddr(name string) (oui.MAC, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return 0, fmt.Errorf("interface %q doesn't exist", name)
	}
	if len(iface.HardwareAddr) != 6 {
		return 0, fmt.Errorf("interface %q has no MAC address", name)
	}
	return oui.FromHardwareAddr(iface.HardwareAddr)
}

// Generate an address from the record and set it on the interface.
func updateInterface(name string, record oui.Record, synth *oui.Synthesizer) (oui.MAC, error) {
	mac, err := synth.FromRecord(record)
	if err != nil {
		return 0, err
	}
	if err := setInterfaceHardwareAddr(name, mac); err != nil {
		return 0, err
	}
	return mac, nil
}

// Rewriting interface addresses needs root.
func requireRoot() error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("you need to be root to change MAC addresses")
	}
	return nil
}
