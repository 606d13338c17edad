package bigqueryclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/data"
)

type Client struct {
	*bigquery.Client
}

// NewClient builds a BigQuery client for the given project. credentialsFile
// may be empty, in which case ambient application-default credentials are
// used.
func NewClient(ctx context.Context, projectID string, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	bqClient, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{bqClient}, nil
}

// Destination identifies a warehouse table. The table does not have to exist
// before the first load; the load job creates it with a schema inferred from
// the parquet buffer.
type Destination struct {
	Project string
	Dataset string
	Table   string
}

func (d Destination) String() string {
	return fmt.Sprintf("%s.%s.%s", d.Project, d.Dataset, d.Table)
}

// WriteDisposition selects what happens to the destination's existing rows.
type WriteDisposition string

const (
	// Append preserves existing rows and adds the new ones. Repeating the
	// same Append load is NOT idempotent: the rows land twice.
	Append WriteDisposition = "append"

	// Replace discards the destination's content before writing the new
	// rows. BigQuery applies the truncate and the write atomically on job
	// commit, so a failed Replace leaves the previous rows in place.
	Replace WriteDisposition = "replace"
)

func (w WriteDisposition) bq() (bigquery.TableWriteDisposition, error) {
	switch w {
	case Append:
		return bigquery.WriteAppend, nil
	case Replace:
		return bigquery.WriteTruncate, nil
	}
	return "", fmt.Errorf("unknown write disposition %q", w)
}

// LoadResult reports what a completed load job did.
type LoadResult struct {
	Destination Destination
	OutputRows  int64
}

// Load sends a parquet buffer to the destination table and blocks until the
// remote job reaches a terminal state. Each call is independent: no
// transaction spans calls and nothing here coordinates concurrent loads.
// Callers issuing Replace against a destination must serialize all
// concurrent access to that destination themselves.
func (c *Client) Load(ctx context.Context, buf *bytes.Reader, dest Destination, disposition WriteDisposition) (*LoadResult, error) {
	wd, err := disposition.bq()
	if err != nil {
		return nil, &data.LoadError{Destination: dest.String(), Err: err}
	}

	source := bigquery.NewReaderSource(buf)
	source.SourceFormat = bigquery.Parquet

	loader := c.DatasetInProject(dest.Project, dest.Dataset).Table(dest.Table).LoaderFrom(source)
	loader.WriteDisposition = wd
	loader.CreateDisposition = bigquery.CreateIfNeeded

	job, err := loader.Run(ctx)
	if err != nil {
		return nil, classifyLoadErr(dest, err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, classifyLoadErr(dest, err)
	}
	if err := status.Err(); err != nil {
		return nil, classifyLoadErr(dest, err)
	}

	result := &LoadResult{Destination: dest}
	if status.Statistics != nil {
		if stats, ok := status.Statistics.Details.(*bigquery.LoadStatistics); ok {
			result.OutputRows = stats.OutputRows
		}
	}
	return result, nil
}

// RunStatement executes one SQL statement as a query job and waits for it.
func (c *Client) RunStatement(ctx context.Context, sql string) error {
	q := c.Query(sql)
	job, err := q.Run(ctx)
	if err != nil {
		return err
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return err
	}

	return status.Err()
}

// classifyLoadErr sorts a failed load into the pipeline taxonomy: schema
// incompatibility with a pre-existing table is a SchemaConflictError,
// everything else (auth, network, bad job, expired deadline) a LoadError.
func classifyLoadErr(dest Destination, err error) error {
	if isSchemaConflict(err) {
		return &data.SchemaConflictError{Destination: dest.String(), Err: err}
	}
	return &data.LoadError{Destination: dest.String(), Err: err}
}

func isSchemaConflict(err error) bool {
	var bqErr *bigquery.Error
	if errors.As(err, &bqErr) {
		return mentionsSchema(bqErr.Message)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 400 {
		return mentionsSchema(apiErr.Message)
	}
	var multi bigquery.MultiError
	if errors.As(err, &multi) {
		for _, e := range multi {
			if isSchemaConflict(e) {
				return true
			}
		}
	}
	return false
}

func mentionsSchema(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "schema") || strings.Contains(msg, "incompatible")
}
