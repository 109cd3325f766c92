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

package docker

import (
	"context"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	Neo4j         = "neo4j"
	Neo4jUser     = "neo4j"
	Neo4jPassword = "lineage-password"
)

// StartNeo4j runs a single neo4j server and returns its bolt URI.
func StartNeo4j(ctx context.Context) (*DockerContainer, error) {
	port := nat.Port("7687/tcp")
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "neo4j:5.26",
			Hostname:     Neo4j,
			ExposedPorts: []string{"7687/tcp"},
			Env: map[string]string{
				"NEO4J_AUTH": Neo4jUser + "/" + Neo4jPassword,
			},
			AutoRemove: true,
			WaitingFor: wait.ForAll(
				wait.ForLog("Started."),
				wait.ForListeningPort(port),
			).WithDeadline(180 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}
	uri, err := container.PortEndpoint(ctx, port, "bolt")
	if err != nil {
		return nil, err
	}
	return &DockerContainer{Neo4j, port, uri, container}, nil
}
