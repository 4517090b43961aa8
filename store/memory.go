package store

import (
	"context"
	"sort"
	"sync"

	"songvault/model"
)

// memorySongStore is an in-process SongStore for tests and local
// development. It applies the same ordering rule as the SQL backends:
// last_played descending, nulls last.
type memorySongStore struct {
	mu     sync.Mutex
	songs  map[int64]model.Song
	nextID int64
}

// NewMemorySongStore creates an empty in-memory SongStore.
func NewMemorySongStore() SongStore {
	return &memorySongStore{
		songs:  make(map[int64]model.Song),
		nextID: 1,
	}
}

func (s *memorySongStore) Create(ctx context.Context, name, filePath string, duration float64) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song := model.Song{
		ID:       s.nextID,
		Name:     name,
		FilePath: filePath,
		Duration: duration,
	}
	s.nextID++
	s.songs[song.ID] = song
	return &Result{Data: []model.Song{song}}, nil
}

func (s *memorySongStore) ListAll(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	songs := make([]model.Song, 0, len(s.songs))
	for _, song := range s.songs {
		songs = append(songs, song)
	}
	sort.SliceStable(songs, func(i, j int) bool {
		a, b := songs[i].LastPlayed, songs[j].LastPlayed
		switch {
		case a == nil && b == nil:
			return songs[i].ID < songs[j].ID
		case a == nil:
			return false // nulls last
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
	return &Result{Data: songs}, nil
}

func (s *memorySongStore) Rename(ctx context.Context, songID int64, newName string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if song, ok := s.songs[songID]; ok {
		song.Name = newName
		s.songs[songID] = song
	}
	return &Result{}, nil
}

func (s *memorySongStore) UpdatePlayStats(ctx context.Context, songID int64, playCount int64, lastPlayed string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if song, ok := s.songs[songID]; ok {
		song.PlayCount = playCount
		song.LastPlayed = &lastPlayed
		s.songs[songID] = song
	}
	return &Result{}, nil
}

func (s *memorySongStore) Delete(ctx context.Context, songID int64) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.songs, songID) // absent id deletes nothing and still succeeds
	return &Result{}, nil
}
