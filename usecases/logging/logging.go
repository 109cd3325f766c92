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

// Package logging builds the logrus logger shared by every component of a
// binary.
package logging

import (
	"errors"
	"io"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/config"
)

// JSONFormatter stamps every entry with the emitting service before
// rendering it as json.
type JSONFormatter struct {
	*logrus.JSONFormatter
	service, goVersion string
}

func NewJSONFormatter(service string) logrus.Formatter {
	return &JSONFormatter{
		&logrus.JSONFormatter{},
		service,
		runtime.Version(),
	}
}

func (f *JSONFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Data["service"] = f.service
	e.Data["build_go_version"] = f.goVersion
	return f.JSONFormatter.Format(e)
}

type TextFormatter struct {
	*logrus.TextFormatter
	service string
}

func NewTextFormatter(service string) logrus.Formatter {
	return &TextFormatter{&logrus.TextFormatter{}, service}
}

func (f *TextFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Data["service"] = f.service
	return f.TextFormatter.Format(e)
}

var errLogLevelNotRecognized = errors.New("log level not recognized")

// LevelFromString converts a string to a logrus log level, returns an
// error if the string is not recognized. level is case insensitive.
func LevelFromString(level string) (logrus.Level, error) {
	switch strings.ToLower(level) {
	case "panic":
		return logrus.PanicLevel, nil
	case "fatal":
		return logrus.FatalLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "", "info":
		return logrus.InfoLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "trace":
		return logrus.TraceLevel, nil
	default:
		return 0, errLogLevelNotRecognized
	}
}

// New returns a logger writing to out. Formatting is json unless the
// format is "text".
func New(cfg config.Logging, service string, out io.Writer) (*logrus.Logger, error) {
	level, err := LevelFromString(cfg.Level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	if cfg.Format == "text" {
		logger.SetFormatter(NewTextFormatter(service))
	} else {
		logger.SetFormatter(NewJSONFormatter(service))
	}
	return logger, nil
}
