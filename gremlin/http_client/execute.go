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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	enterrors "github.com/Honeyfish20/data-lineage-on-aws-2024/entities/errors"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/gremlin"
)

type gremlinHTTPQuery struct {
	Gremlin  string                 `json:"gremlin"`
	Bindings map[string]interface{} `json:"bindings,omitempty"`
}

type gremlinResponseResult struct {
	Data json.RawMessage `json:"data"`
}

type gremlinResponse struct {
	Result gremlinResponseResult `json:"result"`
}

// Execute posts query and returns the response of a 2xx reply. operation
// names the query in metrics. Transport failures and other status codes are
// returned as ErrGraphQuery, signing failures as ErrSigning.
func (c *Client) Execute(ctx context.Context, operation string, query gremlin.Gremlin) (res *gremlin.Response, err error) {
	started := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveQuery(operation, time.Since(started), err)
		}
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, enterrors.NewErrGraphQuery(errors.Wrap(err, "wait for rate limiter"))
		}
	}

	body, err := json.Marshal(gremlinHTTPQuery{
		Gremlin:  query.String(),
		Bindings: query.Bindings(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create POST request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.signer != nil {
		if err := c.signer.Sign(ctx, req, body); err != nil {
			if !enterrors.IsSigning(err) {
				err = enterrors.NewErrSigning(err)
			}
			return nil, err
		}
	}

	httpRes, err := c.client.Do(req)
	if err != nil {
		return nil, enterrors.NewErrGraphQuery(errors.Wrap(err, "send POST request"))
	}
	defer httpRes.Body.Close()

	buf, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, enterrors.NewErrGraphQuery(errors.Wrap(err, "read response body"))
	}

	if httpRes.StatusCode < 200 || httpRes.StatusCode > 299 {
		c.logger.WithField("action", "gremlin_query").
			WithField("operation", operation).
			WithField("status_code", httpRes.StatusCode).
			Errorf("HTTP Error: %d - %s", httpRes.StatusCode, http.StatusText(httpRes.StatusCode))
		return nil, enterrors.NewErrGraphStatus(httpRes.StatusCode, string(buf))
	}

	// The payload is opaque to the caller; result.data is decoded on a best
	// effort basis for callers that want to inspect it.
	var parsed gremlinResponse
	if err := json.Unmarshal(buf, &parsed); err != nil {
		c.logger.WithField("action", "gremlin_query").
			WithField("operation", operation).
			WithError(err).Debug("response body is not a gremlin result")
	}

	return &gremlin.Response{
		Raw:  buf,
		Data: gremlin.DecodeData(parsed.Result.Data),
	}, nil
}
