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

// Package docker starts the databases the integration tests run against.
package docker

import (
	"context"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
)

type DockerContainer struct {
	name      string
	port      nat.Port
	uri       string
	container testcontainers.Container
}

func (d *DockerContainer) Name() string {
	return d.name
}

// URI is the address the host reaches the container on, e.g.
// bolt://localhost:32768 or localhost:32769.
func (d *DockerContainer) URI() string {
	return d.uri
}

func (d *DockerContainer) Terminate(ctx context.Context) error {
	return d.container.Terminate(ctx)
}
