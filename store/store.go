package store

import (
	"context"

	"songvault/model"
)

// Result is the uniform outcome of one backend table operation. Err carries
// a backend-reported error description and is empty on success. A raised
// fault (network failure, client error) is returned as a Go error by the
// operation instead and never lands in Err.
type Result struct {
	Data []model.Song
	Err  string
}

// OK reports whether the backend returned the result without an error.
func (r *Result) OK() bool {
	return r != nil && r.Err == ""
}

// SongStore issues one remote table operation per call against the songs
// table and normalizes the outcome into a Result.
type SongStore interface {
	// Create inserts one row; id and play_count default on the backend.
	Create(ctx context.Context, name, filePath string, duration float64) (*Result, error)
	// ListAll selects all rows ordered by last_played descending, nulls last.
	ListAll(ctx context.Context) (*Result, error)
	// Rename updates name where id matches.
	Rename(ctx context.Context, songID int64, newName string) (*Result, error)
	// UpdatePlayStats updates play_count and last_played together where id matches.
	UpdatePlayStats(ctx context.Context, songID int64, playCount int64, lastPlayed string) (*Result, error)
	// Delete removes the row where id matches. Deleting a nonexistent id
	// succeeds with zero affected rows.
	Delete(ctx context.Context, songID int64) (*Result, error)
}
