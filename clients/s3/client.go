// Package s3client fetches objects from Amazon S3.
package s3client

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/data"
)

type Client struct {
	s3 *s3.S3
}

// NewClient builds an S3 client from the default credential chain.
func NewClient(region string) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, err
	}

	return &Client{s3: s3.New(sess)}, nil
}

// Fetch downloads an object into memory and returns it as a byte stream
// positioned at the start. Any S3 failure (NoSuchKey, NoSuchBucket, access
// denied) wraps into a FetchError.
func (c *Client) Fetch(ctx context.Context, bucket string, key string) (*bytes.Reader, error) {
	resp, err := c.s3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &data.FetchError{Bucket: bucket, Key: key, Err: err}
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &data.FetchError{Bucket: bucket, Key: key, Err: err}
	}

	return bytes.NewReader(content), nil
}
