// Package graphexport persists an analysis result to a graph database for
// downstream visualization. It sits outside the forensics core's hot path:
// the spec's analysis hot path never touches the network, and export is a
// best-effort side trip the service layer takes after BuildReport returns.
package graphexport

import (
	"context"
	"errors"
)

// Client defines the minimal contract required to interact with the
// underlying graph database.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a simplified representation of a query response.
type Result struct {
	Records []Record
}

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

// Options configures a graph client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
