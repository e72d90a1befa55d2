package utils

import (
	"errors"

	"github.com/zecageo/vali/pkg/file"
)

// Config represents the structure of the configuration file.
type Config struct {
	Logging struct {
		Level  string `yaml:"level"`  // zerolog level name: debug, info, warn, error
		Pretty bool   `yaml:"pretty"` // Human readable console output instead of JSON
	} `yaml:"logging"`

	Locations struct {
		Files          []string `yaml:"files"`           // Location files to load at startup
		PreloadWorkers int      `yaml:"preload_workers"` // Number of files loaded concurrently
	} `yaml:"locations"`
}

// LoadConfig loads the YAML configuration from the specified file.
// It returns a pointer to the Config struct and an error if loading fails.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	err := fileClient.ReadYamlFile(filename, &config)
	if err != nil {
		return nil, err
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Locations.PreloadWorkers == 0 {
		config.Locations.PreloadWorkers = 4
	}
	if config.Locations.PreloadWorkers < 0 {
		return nil, errors.New("locations.preload_workers must not be negative")
	}

	return &config, nil
}
