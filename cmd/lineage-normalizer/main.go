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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Honeyfish20/data-lineage-on-aws-2024/adapters/handlers/lambda"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/config"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/lineage"
)

const service = "lineage-normalizer"

// Options represents Command line options
type Options struct {
	Lambda  bool         `long:"lambda" description:"serve Lambda invocations instead of running once; implied inside the Lambda runtime"`
	EnvFile string       `long:"env-file" description:"optional .env file, never overrides the environment" default:".env"`
	Config  config.Flags `group:"Config Options"`
}

func main() {
	var opts Options
	log := logrus.WithFields(logrus.Fields{"app": service}).Logger

	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatal("failed to parse command line args", err)
	}

	if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Fatal("failed to load env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, err := lambda.MakeAppState(ctx, &opts.Config, service, (*config.Config).ValidateNormalizer)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize")
	}
	defer state.Close()

	cfg := state.Config.Normalizer
	input := lineage.Location{Bucket: cfg.InputBucket, Key: cfg.InputKey}
	output := lineage.Location{Bucket: cfg.OutputBucket, Key: cfg.OutputKey}
	handler := lambda.NewNormalizeHandler(state.Logger, func(logger logrus.FieldLogger) lambda.NormalizeRunner {
		return lineage.NewNormalizeJob(state.Store, input, output, logger)
	})

	if opts.Lambda || os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		awslambda.Start(handler.Normalize)
		return
	}

	state.ServeMetrics(ctx)
	res, _ := handler.Normalize(ctx, nil)
	out, _ := json.Marshal(res)
	os.Stdout.Write(append(out, '\n'))
	if res.StatusCode != 200 {
		state.Close()
		os.Exit(1)
	}
}
