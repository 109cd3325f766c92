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

package gcs

import "os"

const (
	GOOGLE_CLOUD_PROJECT = "GOOGLE_CLOUD_PROJECT"
	GCLOUD_PROJECT       = "GCLOUD_PROJECT"
	GCP_PROJECT          = "GCP_PROJECT"
)

type Config interface {
	ProjectID() string
	// Endpoint overrides the storage API endpoint, e.g. for an emulator.
	Endpoint() string
}

type config struct {
	projectID string
	endpoint  string
}

func NewConfig(projectID, endpoint string) Config {
	return &config{projectID, endpoint}
}

func (c *config) ProjectID() string {
	if len(c.projectID) > 0 {
		return c.projectID
	}
	for _, env := range []string{GOOGLE_CLOUD_PROJECT, GCLOUD_PROJECT, GCP_PROJECT} {
		if v := os.Getenv(env); len(v) > 0 {
			return v
		}
	}
	return ""
}

func (c *config) Endpoint() string {
	return c.endpoint
}
