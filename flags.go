package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

type VersionFlag bool

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(serviceName + ": " + serviceVersion)
	os.Exit(0)
	return nil
}

// Flags supplied to cli.
type Flags struct {
	Version    VersionFlag `name:"version" help:"Print version information and quit"`
	ConfigPath string      `help:"The path to the config file" optional:"" type:"existingfile"`
	Database   string      `help:"The path to the vendor database" optional:""`
	Log        *LogConfig  `embed:"" prefix:"log-"`
	Update     UpdateCmd   `cmd:"" help:"Download the vendor registry and rebuild the database"`
	Random     RandomCmd   `cmd:"" help:"Generate random MAC addresses"`
	Lookup     LookupCmd   `cmd:"" help:"Search the vendor database"`
	Rotate     RotateCmd   `cmd:"" help:"Re-randomize interface MAC addresses on an interval"`
	Service    ServiceCmd  `cmd:"" help:"Manage the rotate service"`
	Config     ConfigCmd   `cmd:"" help:"Manage configuration"`
	Upgrade    UpgradeCmd  `cmd:"" help:"Check for updates and apply"`
}

var flags *Flags

// Parse the supplied flags.
func ParseFlags() *kong.Context {
	flags = new(Flags)

	ctx := kong.Parse(flags,
		kong.Name(serviceName),
		kong.Description(serviceDescription),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"serviceActions":  strings.Join(ServiceAction, ","),
			"registryFormats": strings.Join(RegistryFormats, ","),
		},
	)
	return ctx
}
