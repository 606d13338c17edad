package data

import "fmt"

// The pipeline error taxonomy. Every error is terminal for the invocation
// that raised it; there is no automatic retry and no partial-row skip.

// FetchError wraps a blob retrieval failure (missing object, bad
// credentials, unreachable store).
type FetchError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError wraps structurally invalid input for a declared format.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadError wraps a remote load failure other than a schema conflict:
// unreachable destination, auth failure, bad job, expired deadline.
type LoadError struct {
	Destination string
	Err         error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load into %s: %v", e.Destination, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaConflictError means the inbound data is incompatible with a
// pre-existing destination table's schema.
type SchemaConflictError struct {
	Destination string
	Err         error
}

func (e *SchemaConflictError) Error() string {
	return fmt.Sprintf("schema conflict on %s: %v", e.Destination, e.Err)
}

func (e *SchemaConflictError) Unwrap() error { return e.Err }
