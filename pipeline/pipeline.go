// Package pipeline runs the per-source ingestion units: fetch a blob, parse
// it into a columnar table, serialize to parquet, load into the warehouse.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	log "github.com/sirupsen/logrus"

	bigqueryclient "github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/clients/bigquery"
	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/data"
	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/helpers"
	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/parquet"
)

// Fetcher retrieves a blob by bucket and key.
type Fetcher interface {
	Fetch(ctx context.Context, bucket string, key string) (*bytes.Reader, error)
}

// Loader sends a serialized buffer to a destination table and blocks until
// the remote job finishes.
type Loader interface {
	Load(ctx context.Context, buf *bytes.Reader, dest bigqueryclient.Destination, disposition bigqueryclient.WriteDisposition) (*bigqueryclient.LoadResult, error)
}

// ReadFunc converts raw source bytes into a columnar table.
type ReadFunc func(io.Reader) (*data.Table, error)

// Source is one independent unit of work: a blob, the reader that
// understands its format, and the destination it loads into.
type Source struct {
	Name        string
	Bucket      string
	Key         string
	Read        ReadFunc
	Dest        bigqueryclient.Destination
	Disposition bigqueryclient.WriteDisposition
}

type Pipeline struct {
	fetcher     Fetcher
	loader      Loader
	sources     []Source
	maxParallel int
}

func New(fetcher Fetcher, loader Loader, sources []Source, maxParallel int) *Pipeline {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Pipeline{
		fetcher:     fetcher,
		loader:      loader,
		sources:     sources,
		maxParallel: maxParallel,
	}
}

// Run executes every source unit, at most maxParallel at a time. Units share
// no state, so a failing unit only aborts itself; the remaining units run to
// completion and the first failure is returned. Sources that target the same
// destination with Replace must not run concurrently; keep such sources on
// distinct destinations or serialize the calls yourself.
func (p *Pipeline) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	guard := make(chan struct{}, p.maxParallel)
	for _, source := range p.sources {
		guard <- struct{}{}
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			if err := p.runSource(ctx, src); err != nil {
				log.WithFields(log.Fields{
					"source":      src.Name,
					"destination": src.Dest.String(),
					"error":       err,
				}).Errorln("pipeline unit failed")
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			<-guard
		}(source)
	}

	wg.Wait()
	return firstErr
}

func (p *Pipeline) runSource(ctx context.Context, src Source) error {
	logEntry := log.WithFields(log.Fields{
		"source":      src.Name,
		"destination": src.Dest.String(),
	})
	defer helpers.Elapsed(logEntry)()

	blob, err := p.fetcher.Fetch(ctx, src.Bucket, src.Key)
	if err != nil {
		return err
	}

	table, err := src.Read(blob)
	if err != nil {
		return err
	}
	if table.NumColumns() == 0 {
		logEntry.Warnln("source produced no columns, skipping load")
		return nil
	}

	buf, err := parquet.FromTable(table)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", src.Name, err)
	}

	result, err := p.loader.Load(ctx, buf, src.Dest, src.Disposition)
	if err != nil {
		return err
	}

	logEntry.WithFields(log.Fields{
		"rows":        result.OutputRows,
		"disposition": src.Disposition,
	}).Infoln("loaded table into warehouse")
	return nil
}
