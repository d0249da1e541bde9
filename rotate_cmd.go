package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/kardianos/service"
	log "github.com/sirupsen/logrus"

	"github.com/randmac/randmac/oui"
)

// Flags for the rotate command.
type RotateCmd struct {
	Interval   time.Duration `help:"Time between rotations" optional:""`
	Interfaces []string      `arg:"" name:"interface" help:"Interfaces to rotate" optional:""`
}

// The main App structure.
type App struct {
	db           *oui.Database
	synth        *oui.Synthesizer
	interfaces   []string
	Stop         chan struct{}
	UpdateConfig *UpdateConfig
}

var app *App

// Run the rotate service.
func (a *RotateCmd) Run() error {
	// Read the configuration from file.
	config := ReadConfig()

	// Flags take precedence over the configuration file.
	interval := config.Rotate.Interval
	if a.Interval > 0 {
		interval = a.Interval
	}
	interfaces := config.Rotate.Interfaces
	if len(a.Interfaces) != 0 {
		interfaces = a.Interfaces
	}
	if len(interfaces) == 0 {
		return fmt.Errorf("no interfaces to rotate, set rotate.interfaces in the config or pass them as arguments")
	}

	// Rewriting addresses needs privileges.
	err := requireRoot()
	if err != nil {
		return err
	}

	// Load the vendor database.
	db, err := openDatabase(config)
	if err != nil {
		return err
	}

	// Start a new app structure.
	app = new(App)
	app.db = db
	app.synth = new(oui.Synthesizer)
	app.interfaces = interfaces
	app.Stop = make(chan struct{})
	app.UpdateConfig = config.Update

	// Send notification that the service is ready.
	daemon.SdNotify(false, daemon.SdNotifyReady)

	// Setup service.
	if !service.Interactive() {
		s := new(ServiceCmd)
		svc, err := s.service()
		if err != nil {
			return err
		}
		go svc.Run()
	}

	// Run the update loop to check for updates.
	go app.RunUpdateLoop()

	// Inform that the service has started.
	log.Printf("Service started. Rotating %d interfaces every %s.", len(interfaces), interval)

	// Rotate once at startup so a fresh boot gets new addresses.
	app.RotateAll()

	// Monitor common signals.
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Schedule rotations.
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run program signal handler.
sigLoop:
	for {
		// Check for a signal.
		select {
		case sig := <-c:
			switch sig {
			// If hangup signal received, reload the configurations.
			case syscall.SIGHUP:
				log.Println("Reloading configurations.")

				// Read the config.
				config := ReadConfig()
				app.UpdateConfig = config.Update

				// Flags keep precedence over the reloaded file.
				if a.Interval <= 0 && config.Rotate.Interval > 0 {
					interval = config.Rotate.Interval
					ticker.Reset(interval)
				}
				if len(a.Interfaces) == 0 && len(config.Rotate.Interfaces) != 0 {
					app.interfaces = config.Rotate.Interfaces
				}

				// Pick up a database refreshed by the update command.
				db, err := openDatabase(config)
				if err != nil {
					log.Errorf("Failed to reload vendor database: %v", err)
				} else {
					app.db = db
				}

				// The default signal is either termination or interruption,
				// so we should stop the loop.
			default:
				break sigLoop
			}
			// Rotate on schedule.
		case <-ticker.C:
			app.RotateAll()
			// If the app stops itself, mark as done.
		case <-app.Stop:
			break sigLoop
		}
	}

	log.Println("Service stopped.")
	return nil
}

// Rotate every configured interface to a fresh address.
func (a *App) RotateAll() {
	for _, name := range a.interfaces {
		entry := log.WithField("interface", name)

		// Keep the interface's current vendor when it is registered.
		current, err := interfaceHardwareAddr(name)
		if err != nil {
			entry.Errorf("Failed to get MAC address: %v", err)
			continue
		}
		record, ok := a.db.FindPrefix(current)
		if !ok {
			// Unknown vendor, fall back to a random registered one.
			record = a.db.RandomRecord()
			entry.Warnf("No registered vendor, using %q.", record.Vendor)
		}

		// Generate and apply the new address.
		mac, err := updateInterface(name, record, a.synth)
		if err != nil {
			entry.Errorf("Failed to update MAC address: %v", err)
			continue
		}
		entry.WithFields(log.Fields{
			"vendor": record.Vendor,
			"mac":    mac.String(),
		}).Info("Rotated MAC address.")
	}
}
