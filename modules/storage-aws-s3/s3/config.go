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

package s3

const DEFAULT_ENDPOINT = "s3.amazonaws.com"

type Config interface {
	Endpoint() string
	UseSSL() bool
	Region() string
}

type config struct {
	endpoint string
	useSSL   bool
	region   string
}

// NewConfig returns the client settings. An empty endpoint selects AWS S3;
// an empty region is resolved from AWS_REGION or AWS_DEFAULT_REGION.
func NewConfig(endpoint string, useSSL bool, region string) Config {
	return &config{endpoint, useSSL, region}
}

func (c *config) Endpoint() string {
	if len(c.endpoint) > 0 {
		return c.endpoint
	}
	return DEFAULT_ENDPOINT
}

func (c *config) UseSSL() bool {
	return c.useSSL
}

func (c *config) Region() string {
	return c.region
}
