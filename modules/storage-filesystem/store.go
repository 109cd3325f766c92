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

// Package modstgfs keeps lineage documents on the local filesystem. A bucket
// is a directory below the root path, a key a file inside it.
package modstgfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned by Get for a missing object.
var ErrNotFound = errors.New("object not found")

type Store struct {
	rootPath string
	logger   logrus.FieldLogger
}

func New(rootPath string, logger logrus.FieldLogger) (*Store, error) {
	s := &Store{logger: logger}
	if err := s.initRoot(rootPath); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	objectPath, err := s.objectPath(bucket, key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(err, "get object '%s'", objectPath)
	}

	contents, err := os.ReadFile(objectPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(ErrNotFound, "get object '%s'", objectPath)
	} else if err != nil {
		return nil, errors.Wrapf(err, "get object '%s'", objectPath)
	}
	return contents, nil
}

// Put writes to a temporary file first and renames it into place, so a
// reader never sees a partial object.
func (s *Store) Put(ctx context.Context, bucket, key string, contents []byte) error {
	objectPath, err := s.objectPath(bucket, key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "put object '%s'", objectPath)
	}

	dir := filepath.Dir(objectPath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return errors.Wrapf(err, "make dir '%s'", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(objectPath)+".*")
	if err != nil {
		return errors.Wrapf(err, "create temp file in '%s'", dir)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write file '%s'", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close file '%s'", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), objectPath); err != nil {
		return errors.Wrapf(err, "rename to '%s'", objectPath)
	}
	return nil
}

func (s *Store) Location(bucket, key string) string {
	return "file://" + filepath.Join(s.rootPath, bucket, key)
}

func (s *Store) objectPath(bucket, key string) (string, error) {
	if bucket == "" || key == "" {
		return "", fmt.Errorf("bucket and key must not be empty")
	}
	p := filepath.Join(s.rootPath, bucket, key)
	if !strings.HasPrefix(p, s.rootPath+string(filepath.Separator)) {
		return "", fmt.Errorf("object '%s/%s' is outside of the root path", bucket, key)
	}
	return p, nil
}

func (s *Store) initRoot(rootPath string) error {
	if rootPath == "" {
		return fmt.Errorf("empty root path provided")
	}
	rootPath = filepath.Clean(rootPath)
	if !filepath.IsAbs(rootPath) {
		return fmt.Errorf("relative root path provided")
	}
	if err := os.MkdirAll(rootPath, os.ModePerm); err != nil {
		s.logger.WithField("action", "create_root_dir").
			WithError(err).
			Errorf("failed creating root directory %v", rootPath)
		return errors.Wrap(err, "invalid root path provided")
	}
	s.rootPath = rootPath
	return nil
}
