//go:build linux

package main

import (
	"fmt"

	"github.com/vishvananda/netlink"

	"github.com/randmac/randmac/oui"
)

// Set a new MAC address on an interface. The link is cycled down and back
// up around the change, drivers refuse updates on a running link.
func setInterfaceHardwareAddr(name string, mac oui.MAC) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("find interface %q: %w", name, err)
	}
	if err := netlink.LinkSetDown(link); err != nil {
		return fmt.Errorf("bring interface %q down: %w", name, err)
	}

	// Bring the link back up even if the address change failed.
	setErr := netlink.LinkSetHardwareAddr(link, mac.HardwareAddr())
	upErr := netlink.LinkSetUp(link)

	if setErr != nil {
		return fmt.Errorf("set MAC address on %q: %w", name, setErr)
	}
	if upErr != nil {
		return fmt.Errorf("bring interface %q up: %w", name, upErr)
	}
	return nil
}
