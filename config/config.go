// Package config loads the pipeline settings from the environment, once, at
// the entry point. The rest of the program takes these as explicit values;
// no package reads the environment on its own.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// BlobStore selects which object store the sources live in.
type BlobStore string

const (
	StoreGCS BlobStore = "gcs"
	StoreS3  BlobStore = "s3"
)

type Config struct {
	// Warehouse identity.
	ProjectID string
	Dataset   string

	// Blob source.
	Bucket    string
	BlobStore BlobStore
	AWSRegion string

	// Credential reference for the Google clients. Empty means ambient
	// application-default credentials.
	CredentialsFile string

	// How many pipeline units may run at once.
	MaxParallel int

	// Deadline for the whole run; expiry surfaces as a load failure.
	LoadTimeout time.Duration

	// Transform statements run after all loads succeed, in order.
	// Each is a template with {{.project}} and {{.dataset}} available.
	TransformStatements []string
}

const (
	defaultMaxParallel = 3
	defaultLoadTimeout = 15 * time.Minute
)

// Load reads and validates the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		ProjectID:       os.Getenv("BQ_PROJECT_ID"),
		Dataset:         os.Getenv("BQ_DATASET"),
		Bucket:          os.Getenv("BLOB_BUCKET"),
		BlobStore:       BlobStore(os.Getenv("BLOB_STORE")),
		AWSRegion:       os.Getenv("AWS_REGION"),
		CredentialsFile: os.Getenv("SERVICE_ACCOUNT_KEY"),
		MaxParallel:     defaultMaxParallel,
		LoadTimeout:     defaultLoadTimeout,
	}

	if cfg.BlobStore == "" {
		cfg.BlobStore = StoreGCS
	}

	if raw := os.Getenv("MAX_PARALLEL"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("MAX_PARALLEL must be a positive integer, got %q", raw)
		}
		cfg.MaxParallel = n
	}

	if raw := os.Getenv("LOAD_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("LOAD_TIMEOUT must be a positive duration, got %q", raw)
		}
		cfg.LoadTimeout = d
	}

	if raw := os.Getenv("TRANSFORM_SQL"); raw != "" {
		for _, statement := range strings.Split(raw, ";") {
			if s := strings.TrimSpace(statement); s != "" {
				cfg.TransformStatements = append(cfg.TransformStatements, s)
			}
		}
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("BQ_PROJECT_ID is required")
	}
	if c.Dataset == "" {
		return fmt.Errorf("BQ_DATASET is required")
	}
	if c.Bucket == "" {
		return fmt.Errorf("BLOB_BUCKET is required")
	}
	switch c.BlobStore {
	case StoreGCS, StoreS3:
	default:
		return fmt.Errorf("BLOB_STORE must be %q or %q, got %q", StoreGCS, StoreS3, c.BlobStore)
	}
	if c.BlobStore == StoreS3 && c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required when BLOB_STORE=%s", StoreS3)
	}
	return nil
}
