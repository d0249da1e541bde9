package main

// Basic application info.
const (
	serviceName         = "randmac"
	serviceDisplayName  = "Random MAC"
	serviceVendor       = "com.randmac"
	serviceDescription  = "Vendor plausible random MAC addresses"
	serviceVersion      = "0.1.0"
	defaultConfigFile   = "config.yaml"
	defaultDatabaseFile = "database.json"
)

// The application start.
func main() {
	// Parse the flags.
	ctx := ParseFlags()

	// Configure logging.
	flags.Log.Apply()

	// Run the command and exit.
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
