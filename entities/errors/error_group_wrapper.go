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
	"context"
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrorGroupWrapper is a custom type that embeds errgroup.Group.
type ErrorGroupWrapper struct {
	*errgroup.Group
	logger    logrus.FieldLogger
	Variables []interface{}
}

// NewErrorGroupWrapper creates a new ErrorGroupWrapper.
func NewErrorGroupWrapper(logger logrus.FieldLogger, vars ...interface{}) *ErrorGroupWrapper {
	return &ErrorGroupWrapper{
		Group:     new(errgroup.Group),
		logger:    logger,
		Variables: vars,
	}
}

// NewErrorGroupWithContextWrapper creates a new ErrorGroupWrapper whose
// derived context is cancelled by the first function returning an error.
func NewErrorGroupWithContextWrapper(ctx context.Context, logger logrus.FieldLogger, vars ...interface{}) (*ErrorGroupWrapper, context.Context) {
	group, ctx := errgroup.WithContext(ctx)
	return &ErrorGroupWrapper{
		Group:     group,
		logger:    logger,
		Variables: vars,
	}, ctx
}

// Go overrides the Go method to add panic recovery logic. A recovered panic
// is returned as the function's error.
func (egw *ErrorGroupWrapper) Go(f func() error, localVars ...interface{}) {
	egw.Group.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				egw.logger.WithField("action", "error_group_recover").
					Errorf("Recovered from panic: %v, local variables %v, additional localVars %v", r, localVars, egw.Variables)
				debug.PrintStack()
				err = fmt.Errorf("panic occurred: %v", r)
			}
		}()
		return f()
	})
}

// Recover runs f and converts a panic into an error. It is used inside
// group functions that must not fail the group.
func Recover(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred: %v", r)
		}
	}()
	return f()
}
