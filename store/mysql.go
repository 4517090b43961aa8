package store

import (
	"context"
	"database/sql"
	"fmt"

	"songvault/model"
)

// mysqlSongStore implements SongStore for MySQL.
//
// database/sql reports every failure as a Go error, so this store surfaces
// them all on the raised-fault channel; the Result.Err channel is exercised
// by backends that return structured error payloads (see rest.go).
type mysqlSongStore struct {
	db *sql.DB
}

// NewMySQLSongStore creates a SongStore backed by the given connection.
func NewMySQLSongStore(db *sql.DB) SongStore {
	return &mysqlSongStore{db: db}
}

// Create adds a new song and returns the created row as data.
func (s *mysqlSongStore) Create(ctx context.Context, name, filePath string, duration float64) (*Result, error) {
	query := `INSERT INTO songs (name, file_path, duration) VALUES (?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query, name, filePath, duration)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Create: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for Create: %w", err)
	}

	created := model.Song{
		ID:       id,
		Name:     name,
		FilePath: filePath,
		Duration: duration,
	}
	return &Result{Data: []model.Song{created}}, nil
}

// ListAll retrieves all songs, most recently played first. MySQL sorts NULL
// last on a DESC order, which is the documented null-ordering choice.
func (s *mysqlSongStore) ListAll(ctx context.Context) (*Result, error) {
	query := `SELECT id, name, file_path, duration, play_count, last_played
	           FROM songs ORDER BY last_played DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := make([]model.Song, 0)
	for rows.Next() {
		var song model.Song
		var lastPlayed sql.NullString
		if err := rows.Scan(&song.ID, &song.Name, &song.FilePath, &song.Duration, &song.PlayCount, &lastPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan song in ListAll: %w", err)
		}
		if lastPlayed.Valid {
			song.LastPlayed = &lastPlayed.String
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in ListAll: %w", err)
	}

	return &Result{Data: songs}, nil
}

// Rename updates the name of the song with the given ID.
func (s *mysqlSongStore) Rename(ctx context.Context, songID int64, newName string) (*Result, error) {
	query := `UPDATE songs SET name = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, newName, songID); err != nil {
		return nil, fmt.Errorf("failed to execute Rename for song ID %d: %w", songID, err)
	}
	return &Result{}, nil
}

// UpdatePlayStats updates play_count and last_played as a pair.
func (s *mysqlSongStore) UpdatePlayStats(ctx context.Context, songID int64, playCount int64, lastPlayed string) (*Result, error) {
	query := `UPDATE songs SET play_count = ?, last_played = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, playCount, lastPlayed, songID); err != nil {
		return nil, fmt.Errorf("failed to execute UpdatePlayStats for song ID %d: %w", songID, err)
	}
	return &Result{}, nil
}

// Delete removes the song with the given ID. A missing row is not an error.
func (s *mysqlSongStore) Delete(ctx context.Context, songID int64) (*Result, error) {
	query := `DELETE FROM songs WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, songID); err != nil {
		return nil, fmt.Errorf("failed to execute Delete for song ID %d: %w", songID, err)
	}
	return &Result{}, nil
}
