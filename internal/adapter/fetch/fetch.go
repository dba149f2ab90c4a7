// Package fetch provides the capability interface the retrieval engine
// uses to read raw day-file content, with one implementation per URL
// scheme.
package fetch

import (
	"context"
	"errors"
)

// ErrRetrieval indicates a failed fetch: unreachable host, missing file,
// or non-success HTTP status. The engine never retries; a surrounding
// policy layer may re-invoke the whole call.
var ErrRetrieval = errors.New("retrieval failed")

// Fetcher reads the raw content behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
