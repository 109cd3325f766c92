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
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultLineageBucket     = "data-lineage-analysis-24-09-22"
	DefaultPrimaryLineageKey = "athena_dbt_lineage_map.json"
	DefaultSecondaryKey      = "redshift_dbt_lineage_map.json"
	DefaultLoaderConcurrency = 10
	DefaultSigningService    = "neptune-db"
	DefaultGraphTimeout      = 30 * time.Second
	DefaultS3Endpoint        = "s3.amazonaws.com"
	DefaultMonitoringPort    = 2112
	DefaultLogLevel          = "info"
	DefaultConfigFile        = "./lineage.conf.yaml"
)

const (
	GraphBackendGremlin = "gremlin"
	GraphBackendNeo4j   = "neo4j"

	StorageBackendS3         = "s3"
	StorageBackendGCS        = "gcs"
	StorageBackendFilesystem = "filesystem"
)

// Config of both pipeline stages. Each binary validates the sections it
// uses.
type Config struct {
	Logging    Logging    `json:"logging" yaml:"logging"`
	Storage    Storage    `json:"storage" yaml:"storage"`
	Normalizer Normalizer `json:"normalizer" yaml:"normalizer"`
	Loader     Loader     `json:"loader" yaml:"loader"`
	Graph      Graph      `json:"graph" yaml:"graph"`
	Monitoring Monitoring `json:"monitoring" yaml:"monitoring"`
}

type Logging struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

type Storage struct {
	Backend    string     `json:"backend" yaml:"backend"`
	S3         S3         `json:"s3" yaml:"s3"`
	GCS        GCS        `json:"gcs" yaml:"gcs"`
	Filesystem Filesystem `json:"filesystem" yaml:"filesystem"`
}

type S3 struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	UseSSL   bool   `json:"useSSL" yaml:"useSSL"`
	Region   string `json:"region" yaml:"region"`
}

type GCS struct {
	ProjectID string `json:"projectID" yaml:"projectID"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
}

type Filesystem struct {
	Path string `json:"path" yaml:"path"`
}

// Normalizer names the raw export to read and the lineage map to write.
type Normalizer struct {
	InputBucket  string `json:"inputBucket" yaml:"inputBucket"`
	InputKey     string `json:"inputKey" yaml:"inputKey"`
	OutputBucket string `json:"outputBucket" yaml:"outputBucket"`
	OutputKey    string `json:"outputKey" yaml:"outputKey"`
}

// Loader names the two lineage maps to merge. Entries of the secondary map
// win on shared keys.
type Loader struct {
	Bucket       string `json:"bucket" yaml:"bucket"`
	PrimaryKey   string `json:"primaryKey" yaml:"primaryKey"`
	SecondaryKey string `json:"secondaryKey" yaml:"secondaryKey"`
	Concurrency  int    `json:"concurrency" yaml:"concurrency"`
}

type Graph struct {
	Backend  string  `json:"backend" yaml:"backend"`
	Endpoint string  `json:"endpoint" yaml:"endpoint"`
	Signing  Signing `json:"signing" yaml:"signing"`
	Region   string  `json:"region" yaml:"region"`
	// QueryBindings sends node names as Gremlin bindings instead of escaped
	// literals. Neptune rejects bindings, so it is off by default; enable it
	// for Gremlin Server.
	QueryBindings bool `json:"queryBindings" yaml:"queryBindings"`
	// Timeout is given as a duration string ("30s") in yaml files and in
	// nanoseconds in json files.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	MaxQPS  float64       `json:"maxQPS" yaml:"maxQPS"`
	Neo4j   Neo4j         `json:"neo4j" yaml:"neo4j"`
}

type Signing struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Service string `json:"service" yaml:"service"`
}

type Neo4j struct {
	URI      string `json:"uri" yaml:"uri"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
}

type Monitoring struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Port    int  `json:"port" yaml:"port"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Logging: Logging{Level: DefaultLogLevel},
		Storage: Storage{
			Backend: StorageBackendS3,
			S3:      S3{Endpoint: DefaultS3Endpoint, UseSSL: true},
		},
		Loader: Loader{
			Bucket:       DefaultLineageBucket,
			PrimaryKey:   DefaultPrimaryLineageKey,
			SecondaryKey: DefaultSecondaryKey,
			Concurrency:  DefaultLoaderConcurrency,
		},
		Graph: Graph{
			Backend:       GraphBackendGremlin,
			Signing:       Signing{Enabled: true, Service: DefaultSigningService},
			Timeout:       DefaultGraphTimeout,
		},
		Monitoring: Monitoring{Port: DefaultMonitoringPort},
	}
}

func (l Logging) Validate() error {
	if _, err := logrus.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch l.Format {
	case "", "json", "text":
		return nil
	default:
		return fmt.Errorf("logging.format: must be one of json, text, got %q", l.Format)
	}
}

func (s Storage) Validate() error {
	switch s.Backend {
	case StorageBackendS3:
		if s.S3.Endpoint == "" {
			return fmt.Errorf("storage.s3.endpoint must not be empty")
		}
	case StorageBackendGCS:
	case StorageBackendFilesystem:
		if s.Filesystem.Path == "" {
			return fmt.Errorf("storage.filesystem.path must be set for the filesystem backend")
		}
	default:
		return fmt.Errorf("storage.backend: must be one of %s, %s, %s, got %q",
			StorageBackendS3, StorageBackendGCS, StorageBackendFilesystem, s.Backend)
	}
	return nil
}

func (n Normalizer) Validate() error {
	var missing []string
	for name, v := range map[string]string{
		"INPUT_BUCKET":  n.InputBucket,
		"INPUT_KEY":     n.InputKey,
		"OUTPUT_BUCKET": n.OutputBucket,
		"OUTPUT_KEY":    n.OutputKey,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("normalizer: missing %v", missing)
	}
	return nil
}

func (l Loader) Validate() error {
	if l.Bucket == "" || l.PrimaryKey == "" || l.SecondaryKey == "" {
		return fmt.Errorf("loader: bucket, primary and secondary key must be set")
	}
	if l.Concurrency <= 0 {
		return fmt.Errorf("loader.concurrency: must be > 0, got %d", l.Concurrency)
	}
	return nil
}

func (g Graph) Validate() error {
	switch g.Backend {
	case GraphBackendGremlin:
		if g.Endpoint == "" {
			return fmt.Errorf("graph.endpoint must be set for the gremlin backend")
		}
		if g.Signing.Enabled && g.Region == "" {
			return fmt.Errorf("graph.region must be set when request signing is enabled")
		}
	case GraphBackendNeo4j:
		if g.Neo4j.URI == "" {
			return fmt.Errorf("graph.neo4j.uri must be set for the neo4j backend")
		}
	default:
		return fmt.Errorf("graph.backend: must be one of %s, %s, got %q",
			GraphBackendGremlin, GraphBackendNeo4j, g.Backend)
	}
	if g.Timeout <= 0 {
		return fmt.Errorf("graph.timeout: must be > 0, got %s", g.Timeout)
	}
	if g.MaxQPS < 0 {
		return fmt.Errorf("graph.maxQPS: must not be negative, got %v", g.MaxQPS)
	}
	return nil
}

func (m Monitoring) Validate() error {
	if m.Enabled && (m.Port <= 0 || m.Port > 65535) {
		return fmt.Errorf("monitoring.port: invalid port %d", m.Port)
	}
	return nil
}

// ValidateNormalizer checks everything the normalizer stage needs.
func (c *Config) ValidateNormalizer() error {
	return firstErr(c.Logging.Validate(), c.Storage.Validate(),
		c.Normalizer.Validate(), c.Monitoring.Validate())
}

// ValidateLoader checks everything the merge and load stage needs.
func (c *Config) ValidateLoader() error {
	return firstErr(c.Logging.Validate(), c.Storage.Validate(),
		c.Loader.Validate(), c.Graph.Validate(), c.Monitoring.Validate())
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return configErr(err)
		}
	}
	return nil
}

func configErr(err error) error {
	return fmt.Errorf("invalid config: %w", err)
}
