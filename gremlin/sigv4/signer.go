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

// Package sigv4 signs graph database requests with AWS Signature Version 4.
package sigv4

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/pkg/errors"

	enterrors "github.com/Honeyfish20/data-lineage-on-aws-2024/entities/errors"
)

const DefaultService = "neptune-db"

type Signer struct {
	credentials aws.CredentialsProvider
	signer      *v4.Signer
	service     string
	region      string
	now         func() time.Time
}

func New(provider aws.CredentialsProvider, service, region string) *Signer {
	if service == "" {
		service = DefaultService
	}
	return &Signer{
		credentials: aws.NewCredentialsCache(provider),
		signer:      v4.NewSigner(),
		service:     service,
		region:      region,
		now:         time.Now,
	}
}

// NewStatic signs with fixed credentials.
func NewStatic(accessKey, secretKey, sessionToken, service, region string) *Signer {
	return New(credentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken), service, region)
}

// NewFromDefaultConfig resolves credentials through the default AWS chain
// (environment, shared config, web identity, container and instance roles).
// An empty region is taken from the resolved configuration.
func NewFromDefaultConfig(ctx context.Context, service, region string) (*Signer, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, enterrors.NewErrSigning(errors.Wrap(err, "load AWS configuration"))
	}
	if cfg.Region == "" {
		return nil, enterrors.NewErrSigning(errors.New("no AWS region configured"))
	}
	return New(cfg.Credentials, service, cfg.Region), nil
}

func (s *Signer) Service() string {
	return s.service
}

func (s *Signer) Region() string {
	return s.region
}

// Sign adds the X-Amz-Date, Authorization and, for temporary credentials,
// X-Amz-Security-Token headers to req. body must be the exact request body.
func (s *Signer) Sign(ctx context.Context, req *http.Request, body []byte) error {
	creds, err := s.credentials.Retrieve(ctx)
	if err != nil {
		return enterrors.NewErrSigning(errors.Wrap(err, "retrieve credentials"))
	}

	hash := sha256.Sum256(body)
	if err := s.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(hash[:]),
		s.service, s.region, s.now().UTC()); err != nil {
		return enterrors.NewErrSigning(err)
	}
	return nil
}
