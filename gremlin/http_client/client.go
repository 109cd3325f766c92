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

package http_client

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const DefaultTimeout = 30 * time.Second

// RequestSigner signs an outgoing request. body is the exact payload.
type RequestSigner interface {
	Sign(ctx context.Context, req *http.Request, body []byte) error
}

// Observer is told about every finished query.
type Observer interface {
	ObserveQuery(operation string, duration time.Duration, err error)
}

type Client struct {
	endpoint string
	client   http.Client
	signer   RequestSigner
	limiter  *rate.Limiter
	observer Observer
	logger   logrus.FieldLogger
}

type Option func(*Client)

// WithSigner signs every request. Without a signer requests are sent as-is.
func WithSigner(s RequestSigner) Option {
	return func(c *Client) {
		c.signer = s
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.client.Transport = rt
	}
}

// WithRateLimit caps the number of queries per second across all callers.
// A limit <= 0 means unlimited.
func WithRateLimit(qps float64) Option {
	return func(c *Client) {
		if qps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(qps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(qps), burst)
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient returns a client posting to endpoint, e.g.
// https://my-cluster:8182/gremlin.
func NewClient(endpoint string, logger logrus.FieldLogger, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		client:   http.Client{Timeout: DefaultTimeout},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}
