package service

import (
	"context"
	"fmt"

	"songvault/logger"
	"songvault/model"
	"songvault/store"
)

// Envelope is the uniform response shape returned by every service method.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    []model.Song `json:"data,omitempty"`
}

// SongsEnvelope is the list response shape. Songs is always present, an
// empty list when the backend returned no rows.
type SongsEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Songs   []model.Song `json:"songs"`
}

// SongService validates inputs, delegates to the song store and normalizes
// every outcome into an envelope. No method lets a fault escape past its
// own boundary.
type SongService struct {
	store store.SongStore
}

// NewSongService creates a SongService backed by the given store.
func NewSongService(s store.SongStore) *SongService {
	return &SongService{store: s}
}

func failure(message string) *Envelope {
	return &Envelope{Success: false, Message: message}
}

func backendError(errText string) string {
	return fmt.Sprintf("Backend error: %s", errText)
}

// AddSong creates a song. All three fields are required; an empty name or
// file path and a zero duration are rejected before any backend call.
func (s *SongService) AddSong(ctx context.Context, name, filePath string, duration float64) *Envelope {
	if name == "" || filePath == "" || duration == 0 {
		return failure("All fields are required")
	}

	res, err := s.store.Create(ctx, name, filePath, duration)
	if err != nil {
		logger.Error("add song failed", logger.String("name", name), logger.ErrorField(err))
		return failure(fmt.Sprintf("add song failed: %v", err))
	}
	if !res.OK() {
		return failure(backendError(res.Err))
	}

	logger.Info("song added", logger.String("name", name))
	return &Envelope{Success: true, Message: "Song added successfully", Data: res.Data}
}

// GetSongs lists all songs, most recently played first.
func (s *SongService) GetSongs(ctx context.Context) *SongsEnvelope {
	res, err := s.store.ListAll(ctx)
	if err != nil {
		logger.Error("get songs failed", logger.ErrorField(err))
		return &SongsEnvelope{Success: false, Message: fmt.Sprintf("get songs failed: %v", err)}
	}
	if !res.OK() {
		return &SongsEnvelope{Success: false, Message: backendError(res.Err)}
	}

	songs := res.Data
	if songs == nil {
		songs = []model.Song{}
	}
	return &SongsEnvelope{Success: true, Songs: songs}
}

// RenameSong updates a song's name. The new name is passed through without
// an emptiness check.
func (s *SongService) RenameSong(ctx context.Context, songID int64, newName string) *Envelope {
	res, err := s.store.Rename(ctx, songID, newName)
	if err != nil {
		logger.Error("rename song failed", logger.Int64("songId", songID), logger.ErrorField(err))
		return failure(fmt.Sprintf("rename song failed: %v", err))
	}
	if !res.OK() {
		return failure(backendError(res.Err))
	}

	return &Envelope{Success: true, Message: fmt.Sprintf("Song %d renamed successfully", songID)}
}

// UpdatePlayCount updates play_count and last_played together. The new
// count is caller-trusted; no monotonicity check is applied.
func (s *SongService) UpdatePlayCount(ctx context.Context, songID int64, playCount int64, currentTime string) *Envelope {
	res, err := s.store.UpdatePlayStats(ctx, songID, playCount, currentTime)
	if err != nil {
		logger.Error("update play count failed", logger.Int64("songId", songID), logger.ErrorField(err))
		return failure(fmt.Sprintf("update play count failed: %v", err))
	}
	if !res.OK() {
		return failure(backendError(res.Err))
	}

	return &Envelope{Success: true, Message: fmt.Sprintf("Play count updated for song %d", songID)}
}

// DeleteSong removes a song. Deleting an id that never existed still
// succeeds; the backend reports zero affected rows and no error.
func (s *SongService) DeleteSong(ctx context.Context, songID int64) *Envelope {
	res, err := s.store.Delete(ctx, songID)
	if err != nil {
		logger.Error("delete song failed", logger.Int64("songId", songID), logger.ErrorField(err))
		return failure(fmt.Sprintf("delete song failed: %v", err))
	}
	if !res.OK() {
		return failure(backendError(res.Err))
	}

	return &Envelope{Success: true, Message: fmt.Sprintf("Song %d deleted successfully", songID)}
}
