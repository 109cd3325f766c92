//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Flags are the command line options shared by both binaries, parsed with
// go-flags.
type Flags struct {
	ConfigFile     string `long:"config-file" description:"path to a .yaml or .json config file"`
	LogLevel       string `long:"log-level" description:"panic, fatal, error, warn, info, debug or trace"`
	LogFormat      string `long:"log-format" description:"json or text"`
	StorageBackend string `long:"storage-backend" description:"s3, gcs or filesystem"`
	GraphBackend   string `long:"graph-backend" description:"gremlin or neo4j"`
	GraphEndpoint  string `long:"graph-endpoint" description:"gremlin HTTP endpoint, e.g. https://host:8182/gremlin"`
	Concurrency    int    `long:"concurrency" description:"number of load units processed at the same time"`
	MetricsPort    int    `long:"metrics-port" description:"serve prometheus metrics on this port"`
}

// LoadConfig from config locations. The load order for configuration values if the following
// 1. Defaults
// 2. Config file
// 3. Environment variables
// 4. Command line flags
// If a config option is specified multiple times in different locations, the latest one will be used in this order.
//
// The result is not validated; each binary validates the sections it uses.
func LoadConfig(flags *Flags, logger logrus.FieldLogger) (Config, error) {
	config := Defaults()

	configFileName := flags.ConfigFile
	explicit := configFileName != ""
	if !explicit {
		configFileName = DefaultConfigFile
	}

	file, err := os.ReadFile(configFileName)
	if err != nil && explicit {
		return config, configErr(fmt.Errorf("read config file: %w", err))
	}

	if len(file) > 0 {
		logger.WithField("action", "config_load").
			WithField("config_file_path", configFileName).
			Info("loading config file")
		if err := parseConfigFile(file, configFileName, &config); err != nil {
			return config, configErr(err)
		}
	}

	if err := FromEnv(&config); err != nil {
		return config, configErr(err)
	}

	fromFlags(flags, &config)
	return config, nil
}

// parseConfigFile decodes file on top of config, so fields missing from the
// file keep their defaults.
func parseConfigFile(file []byte, name string, config *Config) error {
	m := regexp.MustCompile(`.*\.(\w+)$`).FindStringSubmatch(name)
	if len(m) < 2 {
		return fmt.Errorf("config file does not have a file ending, got '%s'", name)
	}

	switch m[1] {
	case "json":
		if err := json.Unmarshal(file, config); err != nil {
			return fmt.Errorf("error unmarshalling the json config file: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(file, config); err != nil {
			return fmt.Errorf("error unmarshalling the yaml config file: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file extension '%s', use .yaml or .json", m[1])
	}

	return nil
}

// fromFlags parses values from flags given as parameter and overrides values in the config
func fromFlags(flags *Flags, config *Config) {
	if flags.LogLevel != "" {
		config.Logging.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		config.Logging.Format = flags.LogFormat
	}
	if flags.StorageBackend != "" {
		config.Storage.Backend = flags.StorageBackend
	}
	if flags.GraphBackend != "" {
		config.Graph.Backend = flags.GraphBackend
	}
	if flags.GraphEndpoint != "" {
		config.Graph.Endpoint = flags.GraphEndpoint
	}
	if flags.Concurrency > 0 {
		config.Loader.Concurrency = flags.Concurrency
	}
	if flags.MetricsPort > 0 {
		config.Monitoring.Enabled = true
		config.Monitoring.Port = flags.MetricsPort
	}
}
