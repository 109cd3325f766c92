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

package errors

import (
	"errors"
	"fmt"
)

// ErrInput is returned for source documents that are malformed or miss an
// expected field.
type ErrInput struct {
	err error
}

func (e ErrInput) Error() string {
	return e.err.Error()
}

func (e ErrInput) Unwrap() error {
	return e.err
}

func NewErrInput(err error) ErrInput {
	return ErrInput{err}
}

func NewErrInputf(format string, args ...interface{}) ErrInput {
	return ErrInput{fmt.Errorf(format, args...)}
}

// ErrIO wraps a failed blob storage read or write.
type ErrIO struct {
	err         error
	bucket, key string
}

func (e ErrIO) Error() string {
	return e.err.Error()
}

func (e ErrIO) Unwrap() error {
	return e.err
}

func (e ErrIO) Bucket() string {
	return e.bucket
}

func (e ErrIO) Key() string {
	return e.key
}

func NewErrIO(err error, bucket, key string) ErrIO {
	return ErrIO{err, bucket, key}
}

// ErrSigning is returned when a request could not be signed. It aborts a
// whole graph load rather than a single unit.
type ErrSigning struct {
	err error
}

func (e ErrSigning) Error() string {
	return e.err.Error()
}

func (e ErrSigning) Unwrap() error {
	return e.err
}

func NewErrSigning(err error) ErrSigning {
	return ErrSigning{fmt.Errorf("sign request: %w", err)}
}

// ErrGraphQuery is a failed round trip to the graph database, either on the
// transport or with a non-2xx status.
type ErrGraphQuery struct {
	err        error
	StatusCode int
	Body       string
}

func (e ErrGraphQuery) Error() string {
	return e.err.Error()
}

func (e ErrGraphQuery) Unwrap() error {
	return e.err
}

func NewErrGraphQuery(err error) ErrGraphQuery {
	return ErrGraphQuery{err: err}
}

func NewErrGraphStatus(statusCode int, body string) ErrGraphQuery {
	return ErrGraphQuery{
		err:        fmt.Errorf("graph query failed with status %d: %s", statusCode, body),
		StatusCode: statusCode,
		Body:       body,
	}
}

func IsInput(err error) bool {
	var target ErrInput
	return errors.As(err, &target)
}

func IsIO(err error) bool {
	var target ErrIO
	return errors.As(err, &target)
}

func IsSigning(err error) bool {
	var target ErrSigning
	return errors.As(err, &target)
}

func IsGraphQuery(err error) bool {
	var target ErrGraphQuery
	return errors.As(err, &target)
}
