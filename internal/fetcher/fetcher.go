// Package fetcher downloads remote data and reads tabular sources (CSV, XLSX).
package fetcher

import (
	"context"
	"io"
)

// Fetcher downloads remote data. Callers own the returned body.
type Fetcher interface {
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}
