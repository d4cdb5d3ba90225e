package objectstore

import (
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Service stores uploaded log images and returns public URLs for them
type Service interface {
	Put(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
	Close() error
}

type client struct {
	gcs    *storage.Client
	bucket string
	prefix string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithPrefix places all objects under the given key prefix
func WithPrefix(prefix string) Option {
	return func(c *client) {
		c.prefix = prefix
	}
}

// New creates an object store backed by a Google Cloud Storage bucket
func New(ctx context.Context, bucket string, opts ...Option) (Service, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required")
	}

	gcs, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	c := &client{gcs: gcs, bucket: bucket}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Put uploads the object and returns its public URL. A random prefix is added
// to the name to avoid collisions between uploads of the same filename.
func (c *client) Put(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	key := path.Join(c.prefix, uuid.NewString(), path.Base(name))

	w := c.gcs.Bucket(c.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to upload object", goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object", goerr.V("key", key))
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucket, key), nil
}

func (c *client) Close() error {
	return c.gcs.Close()
}
