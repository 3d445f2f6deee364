// Package localstore implements the key-value persistence gateway on top of
// a gocloud.dev blob bucket. The production store writes one file per key
// under a local directory, which is the service-side analogue of the
// original deployment's browser local storage.
package localstore

import (
	"context"
	"os"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

type store struct {
	bucket *blob.Bucket
}

// Params holds dependencies for the localstore gateway, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// New opens the file-backed gateway at the configured storage path and
// registers bucket shutdown on the Fx lifecycle.
func New(params Params) (repository.KVGateway, error) {
	path := params.Config.Storage.Path
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create storage directory")
	}

	bucket, err := fileblob.OpenBucket(path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return &store{bucket: bucket}, nil
}

// NewMemory returns an in-memory gateway. Used by tests and as a stand-in
// when no durable storage is wanted.
func NewMemory() repository.KVGateway {
	return &store{bucket: memblob.OpenBucket(nil)}
}

// Get retrieves the value stored under key.
func (s *store) Get(ctx context.Context, key string) (string, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return "", repository.ErrKeyNotFound
		}

		return "", errors.Wrapf(err, "failed to read key %q", key)
	}

	return string(data), nil
}

// Set stores value under key, replacing any previous value.
func (s *store) Set(ctx context.Context, key string, value string) error {
	if err := s.bucket.WriteAll(ctx, key, []byte(value), nil); err != nil {
		return errors.Wrapf(err, "failed to write key %q", key)
	}

	return nil
}

// Remove deletes the value stored under key. Removing an absent key is a no-op.
func (s *store) Remove(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete key %q", key)
	}

	return nil
}
