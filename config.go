package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kkyr/fig"
	"github.com/shibukawa/configdir"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/randmac/randmac/oui"
)

// The registry published by maclookup.app.
const (
	defaultDatasourceName = oui.FormatMacLookupApp
	defaultDatasourceURL  = "https://maclookup.app/downloads/json-database/get-db"
)

// Main configuration structure.
type Config struct {
	Datasource   *DatasourceConfig `fig:"datasource" yaml:"datasource"`
	DatabasePath string            `fig:"database_path" yaml:"database_path"`
	Rotate       *RotateConfig     `fig:"rotate" yaml:"rotate"`
	Update       *UpdateConfig     `fig:"update" yaml:"update"`
	Log          *LogConfig        `fig:"log" yaml:"log"`
}

type LogConfig struct {
	Level string `fig:"level" yaml:"level" enum:"debug,info,warn,error" default:"info"`
	Type  string `fig:"type" yaml:"type" enum:"json,console" default:"console"`
}

// Where the vendor registry is downloaded from.
type DatasourceConfig struct {
	Name string `fig:"name" yaml:"name"`
	URL  string `fig:"url" yaml:"url"`
}

// How the rotate service cycles addresses.
type RotateConfig struct {
	Interval   time.Duration `fig:"interval" yaml:"interval"`
	Interfaces []string      `fig:"interfaces" yaml:"interfaces"`
}

// Configuration for updating.
type UpdateConfig struct {
	Owner          string `fig:"owner" yaml:"owner"`
	Repo           string `fig:"repo" yaml:"repo"`
	Disabled       bool   `fig:"disabled" yaml:"disabled"`
	CurrentVersion string `fig:"-" yaml:"-"`
}

// Applies common filters to the read configuration.
func (c *Config) ApplyFilters() {
	// Fill in any unset datasource fields.
	if c.Datasource == nil {
		c.Datasource = new(DatasourceConfig)
	}
	if c.Datasource.Name == "" {
		c.Datasource.Name = defaultDatasourceName
	}
	if c.Datasource.URL == "" {
		c.Datasource.URL = defaultDatasourceURL
	}

	// The database flag overrides the configured path.
	if flags.Database != "" {
		c.DatabasePath = flags.Database
	}
	// If no database path is configured, keep it in the cache folder.
	if c.DatabasePath == "" {
		c.DatabasePath = DefaultDatabasePath()
	}

	// Fill in rotation defaults.
	if c.Rotate == nil {
		c.Rotate = new(RotateConfig)
	}
	if c.Rotate.Interval <= 0 {
		c.Rotate.Interval = 30 * time.Minute
	}
}

// The default vendor database location.
func DefaultDatabasePath() string {
	configDirs := configdir.New(serviceVendor, serviceName)
	cache := configDirs.QueryCacheFolder()
	if cache == nil {
		log.Fatalf("Unable to find cache path.")
	}
	return filepath.Join(cache.Path, defaultDatabaseFile)
}

// Get the config path.
func ConfigPath() (fileDir, fileName string) {
	// Find the configuration directory.
	configDirs := configdir.New(serviceVendor, serviceName)
	folders := configDirs.QueryFolders(configdir.System)
	if len(folders) == 0 {
		log.Fatalf("Unable to find config path.")
	}

	// Find the file name.
	fileName = defaultConfigFile
	fileDir = folders[0].Path
	if flags.ConfigPath != "" {
		fileDir, fileName = filepath.Split(flags.ConfigPath)
	}
	return
}

// Makes the default config for reading.
func DefaultConfig() *Config {
	config := new(Config)
	config.Update = &UpdateConfig{
		Owner: "randmac",
		Repo:  "randmac",
	}
	config.Log = flags.Log
	return config
}

// Read configuration file and return the current config.
func ReadConfig() *Config {
	// Setup default config.
	config := DefaultConfig()

	// Find the file name.
	fileDir, fileName := ConfigPath()

	// Read the configuration file if it exists.
	err := fig.Load(config, fig.File(fileName), fig.Dirs(fileDir))
	// On error, just print as we want to return a default config.
	if err != nil {
		log.Debug("Unable to load config file:", err)
	}

	// Apply config filters.
	config.ApplyFilters()

	// Apply any log configurations loaded from file.
	config.Log.Apply()
	return config
}

// Save the supplied configuration to the configuration file.
func SaveConfig(config *Config) error {
	// Encode YAML data.
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	// Find the file name.
	fileDir, fileName := ConfigPath()

	// Verify directory exists.
	if _, ferr := os.Stat(fileDir); ferr != nil {
		err = os.MkdirAll(fileDir, 0755)
		if err != nil {
			log.Error("Failed to make directory:", err)
		}
	}

	// Write the configuration file.
	err = os.WriteFile(filepath.Join(fileDir, fileName), data, 0644)
	return err
}

func (l *LogConfig) Apply() {
	switch l.Level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.ErrorLevel)
	}
	switch l.Type {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{})
	}
}
