package bigqueryclient

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// RowCount returns the destination's current row count. Used for post-run
// accounting; not part of the load contract.
func (c *Client) RowCount(ctx context.Context, dest Destination) (int64, error) {
	q := c.Query(fmt.Sprintf("SELECT COUNT(*) FROM `%s.%s.%s`", dest.Project, dest.Dataset, dest.Table))
	it, err := q.Read(ctx)
	if err != nil {
		return 0, err
	}

	var row []bigquery.Value
	err = it.Next(&row)
	if err == iterator.Done {
		return 0, fmt.Errorf("count query for %s returned no rows", dest)
	}
	if err != nil {
		return 0, err
	}

	count, ok := row[0].(int64)
	if !ok {
		return 0, fmt.Errorf("count query for %s returned %T, want int64", dest, row[0])
	}
	return count, nil
}
