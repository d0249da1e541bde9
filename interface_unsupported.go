//go:build !linux

package main

import (
	"fmt"
	"runtime"

	"github.com/randmac/randmac/oui"
)

// Generating addresses works everywhere, rewriting an interface only has a
// netlink implementation for now.

// Set a new MAC address on an interface.
func setInterfaceHardwareAddr(name string, mac oui.MAC) error {
	return fmt.Errorf("changing MAC addresses is not implemented on %s", runtime.GOOS)
}
