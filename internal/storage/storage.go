// Package storage defines the optional persistence sink for GraphData: a
// graph built once can be saved and looked up again by request id or by an
// account that appears in it. Grounded on the teacher's
// internal/storage/storage.go interface shape, re-typed around
// serialize.GraphData instead of trade/task/pool records.
package storage

import (
	"context"

	"github.com/solgraph/txgraph/internal/serialize"
)

// Storage persists and retrieves GraphData by an opaque request id (the
// caller picks this — typically the queried signature or a composed
// graphspace's label).
type Storage interface {
	SaveGraph(ctx context.Context, requestID string, data *serialize.GraphData) error
	GetGraph(ctx context.Context, requestID string) (*serialize.GraphData, error)
	// ListGraphsForAccount returns the request ids of every saved graph in
	// which account appears as a node, newest first.
	ListGraphsForAccount(ctx context.Context, account string, limit, offset int) ([]string, error)

	RunMigrations() error
}
