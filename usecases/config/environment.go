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
	"fmt"
	"os"
	"strconv"
	"time"
)

// FromEnv takes a *Config as it will respect initial config that has been
// provided by other means (e.g. a config file) and will only extend those
// that are set
func FromEnv(config *Config) error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}

	if v := os.Getenv("INPUT_BUCKET"); v != "" {
		config.Normalizer.InputBucket = v
	}
	if v := os.Getenv("INPUT_KEY"); v != "" {
		config.Normalizer.InputKey = v
	}
	if v := os.Getenv("OUTPUT_BUCKET"); v != "" {
		config.Normalizer.OutputBucket = v
	}
	if v := os.Getenv("OUTPUT_KEY"); v != "" {
		config.Normalizer.OutputKey = v
	}

	if v := os.Getenv("LINEAGE_BUCKET"); v != "" {
		config.Loader.Bucket = v
	}
	if v := os.Getenv("PRIMARY_LINEAGE_KEY"); v != "" {
		config.Loader.PrimaryKey = v
	}
	if v := os.Getenv("SECONDARY_LINEAGE_KEY"); v != "" {
		config.Loader.SecondaryKey = v
	}
	if err := parsePositiveInt("LOADER_CONCURRENCY", func(val int) {
		config.Loader.Concurrency = val
	}); err != nil {
		return err
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region != "" {
		config.Graph.Region = region
		config.Storage.S3.Region = region
	}

	if v := os.Getenv("GRAPH_BACKEND"); v != "" {
		config.Graph.Backend = v
	}
	if v := os.Getenv("GRAPH_ENDPOINT"); v != "" {
		config.Graph.Endpoint = v
	}
	if err := parseBool("GRAPH_SIGNING_ENABLED", func(val bool) {
		config.Graph.Signing.Enabled = val
	}); err != nil {
		return err
	}
	if v := os.Getenv("GRAPH_SIGNING_SERVICE"); v != "" {
		config.Graph.Signing.Service = v
	}
	if err := parseBool("GRAPH_QUERY_BINDINGS", func(val bool) {
		config.Graph.QueryBindings = val
	}); err != nil {
		return err
	}
	if v := os.Getenv("GRAPH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse GRAPH_TIMEOUT as duration: %w", err)
		}
		config.Graph.Timeout = d
	}
	if v := os.Getenv("GRAPH_MAX_QPS"); v != "" {
		qps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse GRAPH_MAX_QPS as float: %w", err)
		}
		config.Graph.MaxQPS = qps
	}

	if v := os.Getenv("NEO4J_URI"); v != "" {
		config.Graph.Neo4j.URI = v
	}
	if v := os.Getenv("NEO4J_USER"); v != "" {
		config.Graph.Neo4j.User = v
	}
	if v := os.Getenv("NEO4J_PASSWORD"); v != "" {
		config.Graph.Neo4j.Password = v
	}
	if v := os.Getenv("NEO4J_DATABASE"); v != "" {
		config.Graph.Neo4j.Database = v
	}

	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		config.Storage.Backend = v
	}
	if v := os.Getenv("STORAGE_S3_ENDPOINT"); v != "" {
		config.Storage.S3.Endpoint = v
	}
	if err := parseBool("STORAGE_S3_USE_SSL", func(val bool) {
		config.Storage.S3.UseSSL = val
	}); err != nil {
		return err
	}
	if v := os.Getenv("STORAGE_GCS_PROJECT_ID"); v != "" {
		config.Storage.GCS.ProjectID = v
	}
	if v := os.Getenv("STORAGE_GCS_ENDPOINT"); v != "" {
		config.Storage.GCS.Endpoint = v
	}
	if v := os.Getenv("STORAGE_FILESYSTEM_PATH"); v != "" {
		config.Storage.Filesystem.Path = v
	}

	if enabled(os.Getenv("PROMETHEUS_MONITORING_ENABLED")) {
		config.Monitoring.Enabled = true
	}
	if err := parsePositiveInt("PROMETHEUS_MONITORING_PORT", func(val int) {
		config.Monitoring.Port = val
	}); err != nil {
		return err
	}

	return nil
}

func parsePositiveInt(varName string, cb func(val int)) error {
	v := os.Getenv(varName)
	if v == "" {
		return nil
	}
	asInt, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s as int: %w", varName, err)
	}
	if asInt <= 0 {
		return fmt.Errorf("%s must be an integer greater than 0. Got: %v", varName, asInt)
	}
	cb(asInt)
	return nil
}

// parseBool only calls cb if the variable is set, so defaults of true
// survive an unset variable.
func parseBool(varName string, cb func(val bool)) error {
	v := os.Getenv(varName)
	if v == "" {
		return nil
	}
	asBool, err := strconv.ParseBool(v)
	if err != nil {
		if enabled(v) {
			asBool = true
		} else if v == "off" || v == "disabled" {
			asBool = false
		} else {
			return fmt.Errorf("parse %s as bool: %w", varName, err)
		}
	}
	cb(asBool)
	return nil
}

func enabled(value string) bool {
	if value == "" {
		return false
	}

	if value == "on" ||
		value == "enabled" ||
		value == "1" ||
		value == "true" {
		return true
	}

	return false
}
