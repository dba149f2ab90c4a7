package fetch

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// FileFetcher reads file:// URLs from the local filesystem.
type FileFetcher struct{}

// NewFileFetcher creates a filesystem fetcher.
func NewFileFetcher() *FileFetcher { return &FileFetcher{} }

// Fetch reads the file behind a file:// URL.
func (f *FileFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	path, ok := strings.CutPrefix(url, "file://")
	if !ok {
		return nil, fmt.Errorf("file fetcher got non-file url %q: %w", url, ErrRetrieval)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %v: %w", path, err, ErrRetrieval)
	}
	return content, nil
}
