package ports

import (
	"context"

	"qiming/domain/history"
)

// NameRepository persists generated names and serves the deduplicated
// history view. Mutations addressed by record id act on the whole logical
// group (owner, surname, first_name) atomically, scoped to the identity.
type NameRepository interface {
	Insert(ctx context.Context, rec *history.Record) error
	InsertBatch(ctx context.Context, recs []*history.Record) error

	// List returns one record per logical name (earliest row, favorite
	// flag OR-ed across the group) ordered by created_at descending,
	// plus the deduplicated total for pagination.
	List(ctx context.Context, id history.Identity, opts history.ListOptions) ([]history.Record, int, error)

	// ToggleFavorite flips the flag on every row of the record's logical
	// group and returns the new value.
	ToggleFavorite(ctx context.Context, recordID int64, id history.Identity) (bool, error)
	Annotate(ctx context.Context, recordID int64, note string, id history.Identity) error
	Delete(ctx context.Context, recordID int64, id history.Identity) error

	Stats(ctx context.Context, id history.Identity) (*history.Stats, error)

	// Migrate re-owns every unclaimed row of the session and returns the
	// number of rows claimed.
	Migrate(ctx context.Context, sessionID string, userID int64) (int64, error)
}
