// Package filestore reads and writes import/export files on the local disk,
// in memory or in an S3 bucket.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"eshopadmin/internal/config"
)

type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
	DriverMemory     Driver = "memory"
)

var ErrNotExist = errors.New("file does not exist")

// Store is a flat key/object store. Put replaces an existing object.
type Store interface {
	Driver() Driver
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Target is a parsed file argument: a local path or s3://bucket/key.
type Target struct {
	Driver Driver
	Bucket string
	Key    string
}

func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Target{}, fmt.Errorf("empty file target")
	}
	rest, ok := strings.CutPrefix(s, "s3://")
	if !ok {
		return Target{Driver: DriverFilesystem, Key: s}, nil
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || strings.TrimSpace(key) == "" {
		return Target{}, fmt.Errorf("s3 target %q needs s3://bucket/key", s)
	}
	return Target{Driver: DriverS3, Bucket: bucket, Key: key}, nil
}

// Open returns the store that serves t. Local paths are used as given.
func Open(ctx context.Context, t Target, cfg config.S3Config) (Store, error) {
	switch t.Driver {
	case DriverFilesystem:
		return NewFilesystem("")
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket:    t.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			PathStyle: cfg.PathStyle,
		})
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown file store driver %q", t.Driver)
	}
}
