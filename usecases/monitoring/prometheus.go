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

// Package monitoring exposes prometheus metrics for graph queries, load
// units and blob transfers.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"

	DirectionRead  = "read"
	DirectionWrite = "write"
)

type PrometheusMetrics struct {
	GraphQueries       *prometheus.CounterVec
	GraphQueryDuration *prometheus.HistogramVec
	LoadUnits          *prometheus.CounterVec
	BlobBytes          *prometheus.CounterVec
}

// NewPrometheusMetrics registers all metrics on reg. Pass a
// NoopRegisterer to keep them out of any registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		GraphQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lineage_graph_queries_total",
			Help: "Number of queries sent to the graph database",
		}, []string{"operation", "status"}),
		GraphQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lineage_graph_query_duration_seconds",
			Help:    "Duration of queries sent to the graph database",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"operation"}),
		LoadUnits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lineage_load_units_total",
			Help: "Number of processed load units, one per parent node",
		}, []string{"status"}),
		BlobBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lineage_blob_bytes_total",
			Help: "Bytes transferred from and to blob storage",
		}, []string{"direction"}),
	}
}

func (pm *PrometheusMetrics) ObserveQuery(operation string, duration time.Duration, err error) {
	if pm == nil {
		return
	}

	pm.GraphQueries.WithLabelValues(operation, status(err)).Inc()
	pm.GraphQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (pm *PrometheusMetrics) ObserveUnit(err error) {
	if pm == nil {
		return
	}

	pm.LoadUnits.WithLabelValues(status(err)).Inc()
}

func (pm *PrometheusMetrics) ObserveTransfer(direction string, bytes int) {
	if pm == nil {
		return
	}

	pm.BlobBytes.WithLabelValues(direction).Add(float64(bytes))
}

func status(err error) string {
	if err != nil {
		return StatusFailed
	}
	return StatusSuccess
}
