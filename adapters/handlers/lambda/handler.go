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

// Package lambda adapts the pipeline jobs to AWS Lambda invocations.
package lambda

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/lineage"
)

const (
	NormalizeSuccessMessage = "Athena data lineage processing completed successfully"
	LoadSuccessMessage      = "Data successfully written to Neptune"
)

// Response is returned to the Lambda runtime. Body is a JSON encoded string.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func NewResponse(statusCode int, message string) Response {
	body, _ := json.Marshal(message)
	return Response{StatusCode: statusCode, Body: string(body)}
}

func errorResponse(err error) Response {
	return NewResponse(http.StatusInternalServerError, "Error: "+err.Error())
}

type NormalizeRunner interface {
	Run(ctx context.Context) (*lineage.NormalizeResult, error)
}

type MergeLoadRunner interface {
	Run(ctx context.Context) (*lineage.MergeLoadResult, error)
}

// Handler builds a job per invocation so that its log lines carry the
// request id of that invocation.
type Handler struct {
	logger       logrus.FieldLogger
	newNormalize func(logger logrus.FieldLogger) NormalizeRunner
	newMergeLoad func(logger logrus.FieldLogger) MergeLoadRunner
}

func NewNormalizeHandler(logger logrus.FieldLogger, newJob func(logger logrus.FieldLogger) NormalizeRunner) *Handler {
	return &Handler{logger: logger, newNormalize: newJob}
}

func NewMergeLoadHandler(logger logrus.FieldLogger, newJob func(logger logrus.FieldLogger) MergeLoadRunner) *Handler {
	return &Handler{logger: logger, newMergeLoad: newJob}
}

// Normalize runs the normalizer. The event payload is not used. Failures
// are reported in the response, never as an invocation error.
func (h *Handler) Normalize(ctx context.Context, _ json.RawMessage) (Response, error) {
	logger := h.requestLogger(ctx)
	res, err := h.newNormalize(logger).Run(ctx)
	if err != nil {
		logger.WithField("action", "normalize").
			WithError(err).
			Error("lineage normalization failed")
		return errorResponse(err), nil
	}

	logger.WithField("action", "normalize").
		WithField("nodes", res.Nodes).
		WithField("collisions", len(res.Collisions)).
		WithField("output", res.Output).
		Info(NormalizeSuccessMessage)
	return NewResponse(http.StatusOK, NormalizeSuccessMessage), nil
}

// MergeLoad runs the merge and graph load. Failed units do not turn the
// response into an error; they are logged and counted.
func (h *Handler) MergeLoad(ctx context.Context, _ json.RawMessage) (Response, error) {
	logger := h.requestLogger(ctx)
	res, err := h.newMergeLoad(logger).Run(ctx)
	if err != nil {
		logger.WithField("action", "merge_load").
			WithError(err).
			Error("lineage graph load failed")
		return errorResponse(err), nil
	}

	entry := logger.WithField("action", "merge_load").
		WithField("merged", res.MergedSize)
	if res.Report != nil {
		entry = entry.WithField("succeeded", res.Report.Succeeded).
			WithField("failed", len(res.Report.Failed)).
			WithField("duration", res.Report.Duration.String())
		if err := res.Report.Err(); err != nil {
			entry.WithError(err).Warnf("%d nodes could not be written", len(res.Report.Failed))
		}
	}
	entry.Info(LoadSuccessMessage)
	return NewResponse(http.StatusOK, LoadSuccessMessage), nil
}

func (h *Handler) requestLogger(ctx context.Context) logrus.FieldLogger {
	return h.logger.WithField("request_id", RequestID(ctx))
}

// RequestID returns the AWS request id of the invocation, or a fresh uuid
// outside of Lambda.
func RequestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.New().String()
}
