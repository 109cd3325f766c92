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

package lambda

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/blobstore"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/config"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/logging"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/monitoring"
)

// State is everything a binary sets up before running a job.
type State struct {
	Config  config.Config
	Logger  *logrus.Logger
	Metrics *monitoring.PrometheusMetrics
	// Registry is nil when monitoring is disabled.
	Registry *prometheus.Registry
	Store    blobstore.Store
}

// MakeAppState loads the configuration, validates it with validate and
// builds logger, metrics and blob storage.
func MakeAppState(ctx context.Context, flags *config.Flags, service string,
	validate func(*config.Config) error,
) (*State, error) {
	bootLogger := logrus.New()
	bootLogger.SetFormatter(logging.NewJSONFormatter(service))

	cfg, err := config.LoadConfig(flags, bootLogger)
	if err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging, service, os.Stderr)
	if err != nil {
		return nil, err
	}

	state := &State{Config: cfg, Logger: logger}

	var reg prometheus.Registerer = monitoring.NewNoopRegisterer()
	if cfg.Monitoring.Enabled {
		state.Registry = prometheus.NewRegistry()
		state.Registry.MustRegister(collectors.NewGoCollector())
		reg = state.Registry
	}
	state.Metrics = monitoring.NewPrometheusMetrics(reg)

	state.Store, err = blobstore.New(ctx, cfg.Storage, state.Metrics, logger)
	if err != nil {
		return nil, err
	}
	return state, nil
}

// ServeMetrics serves the registry until ctx is done. It is a no-op when
// monitoring is disabled.
func (s *State) ServeMetrics(ctx context.Context) {
	if s.Registry == nil {
		return
	}
	go func() {
		if err := monitoring.Serve(ctx, s.Config.Monitoring.Port, s.Registry, s.Logger); err != nil {
			s.Logger.WithField("action", "metrics_serve").
				WithError(err).
				Error("metrics server stopped")
		}
	}()
}

// Close releases the blob storage client.
func (s *State) Close() {
	if s.Store == nil {
		return
	}
	if err := s.Store.Close(); err != nil {
		s.Logger.WithField("action", "storage_close").
			WithError(err).
			Warn("failed to close blob storage")
	}
}
