package main

import (
	"fmt"
	"path/filepath"
)

// The command for saving configuration.
type ConfigSaveCmd struct {
}

func (a *ConfigSaveCmd) Run() (err error) {
	// Read the active configuration with all defaults filled in.
	config := ReadConfig()

	// Write it out so it can be edited.
	err = SaveConfig(config)
	if err != nil {
		return
	}

	fmt.Println("Configuration saved")
	return
}

// The command for printing file locations.
type ConfigPathCmd struct {
}

func (a *ConfigPathCmd) Run() (err error) {
	config := ReadConfig()
	fileDir, fileName := ConfigPath()
	fmt.Println("Config file:", filepath.Join(fileDir, fileName))
	fmt.Println("Vendor database:", config.DatabasePath)
	return
}

// Commands for managing the configuration.
type ConfigCmd struct {
	Save ConfigSaveCmd `cmd:""`
	Path ConfigPathCmd `cmd:""`
}
