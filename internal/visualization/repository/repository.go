package repository

import (
	"context"

	"github.com/eadsgraphic/vizreport/internal/visualization"
)

// Repository is the persistence interface for visualizations. Single-record
// lookups return visualization.ErrNotFound when no record matches.
type Repository interface {
	// Insert assigns a fresh ID to v and stores it.
	Insert(ctx context.Context, v *visualization.Visualization) error
	Get(ctx context.Context, id string) (*visualization.Visualization, error)
	// List returns records in insertion order; an empty firm matches all.
	List(ctx context.Context, firm string) ([]*visualization.Visualization, error)
	// Replace overwrites name and description of an existing record.
	Replace(ctx context.Context, id string, in visualization.Input) error
	// Delete is idempotent: a missing id is not an error.
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Ping(ctx context.Context) error
}
