// Package gcsclient fetches objects from Google Cloud Storage.
package gcsclient

import (
	"bytes"
	"context"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/data"
)

type Client struct {
	*storage.Client
}

// NewClient builds a GCS client. credentialsFile may be empty, in which case
// ambient application-default credentials are used.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	gcsClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{gcsClient}, nil
}

// Fetch downloads an object into memory and returns it as a byte stream
// positioned at the start. Missing objects and permission failures wrap into
// a FetchError.
func (c *Client) Fetch(ctx context.Context, bucket string, key string) (*bytes.Reader, error) {
	r, err := c.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, &data.FetchError{Bucket: bucket, Key: key, Err: err}
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, &data.FetchError{Bucket: bucket, Key: key, Err: err}
	}

	return bytes.NewReader(content), nil
}
