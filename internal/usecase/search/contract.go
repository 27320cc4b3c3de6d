package search

import "context"

// Index issues a single GET against the remote search index.
// requestURI is the escaped path and query; the body is returned unparsed.
type Index interface {
	Get(ctx context.Context, requestURI string) (string, error)
}
