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
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/graphstore"
	"github.com/Honeyfish20/data-lineage-on-aws-2024/usecases/lineage"
)

const service = "lineage-loader"

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

	state, err := lambda.MakeAppState(ctx, &opts.Config, service, (*config.Config).ValidateLoader)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize")
	}
	defer state.Close()

	graph, err := graphstore.New(ctx, state.Config.Graph, state.Metrics, graphstore.DefaultSigner, state.Logger)
	if err != nil {
		state.Logger.WithField("action", "graph_init").
			WithError(err).
			Fatal("failed to initialize graph database")
	}
	defer graph.Close(context.Background())

	cfg := state.Config.Loader
	primary := lineage.Location{Bucket: cfg.Bucket, Key: cfg.PrimaryKey}
	secondary := lineage.Location{Bucket: cfg.Bucket, Key: cfg.SecondaryKey}
	handler := lambda.NewMergeLoadHandler(state.Logger, func(logger logrus.FieldLogger) lambda.MergeLoadRunner {
		loader := lineage.NewLoader(graph, cfg.Concurrency, state.Metrics, logger)
		return lineage.NewMergeLoadJob(state.Store, primary, secondary, loader, logger)
	})

	if opts.Lambda || os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		awslambda.Start(handler.MergeLoad)
		return
	}

	state.ServeMetrics(ctx)
	res, _ := handler.MergeLoad(ctx, nil)
	out, _ := json.Marshal(res)
	os.Stdout.Write(append(out, '\n'))
	if res.StatusCode != 200 {
		graph.Close(context.Background())
		state.Close()
		os.Exit(1)
	}
}
