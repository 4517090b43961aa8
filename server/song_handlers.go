package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"songvault/config"
	"songvault/logger"
	"songvault/service"

	"github.com/gorilla/mux"
)

// Service is the song service surface the handlers call.
type Service interface {
	AddSong(ctx context.Context, name, filePath string, duration float64) *service.Envelope
	GetSongs(ctx context.Context) *service.SongsEnvelope
	RenameSong(ctx context.Context, songID int64, newName string) *service.Envelope
	UpdatePlayCount(ctx context.Context, songID int64, playCount int64, currentTime string) *service.Envelope
	DeleteSong(ctx context.Context, songID int64) *service.Envelope
}

// BlobStore is the object-storage surface the upload path uses.
type BlobStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PublicURL(ctx context.Context, key string) string
	Remove(ctx context.Context, key string) error
	Fetch(ctx context.Context, key string) (io.ReadCloser, error)
}

// APIHandler handles all API requests.
type APIHandler struct {
	svc   Service
	blobs BlobStore
	cfg   *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(svc Service, blobs BlobStore, cfg *config.Config) *APIHandler {
	return &APIHandler{svc: svc, blobs: blobs, cfg: cfg}
}

type songCreateRequest struct {
	Name     string  `json:"name"`
	FilePath string  `json:"file_path"`
	Duration float64 `json:"duration"`
}

type songRenameRequest struct {
	NewName string `json:"new_name"`
}

type songPlayUpdateRequest struct {
	NewPlayCount int64  `json:"new_play_count"`
	CurrentTime  string `json:"current_time"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

// writeError writes the failure detail the way the API contract states it:
// a 400-class status with {"detail": message}.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func songIDFromRequest(r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["song_id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// RootHandler greets API callers.
func (h *APIHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the SongVault API"})
}

// AddSongHandler creates a song from a JSON body.
func (h *APIHandler) AddSongHandler(w http.ResponseWriter, r *http.Request) {
	var req songCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.svc.AddSong(r.Context(), req.Name, req.FilePath, req.Duration)
	if !result.Success {
		writeError(w, http.StatusBadRequest, result.Message)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetSongsHandler lists all songs, most recently played first.
func (h *APIHandler) GetSongsHandler(w http.ResponseWriter, r *http.Request) {
	result := h.svc.GetSongs(r.Context())
	if !result.Success {
		writeError(w, http.StatusBadRequest, result.Message)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RenameSongHandler updates a song's name.
func (h *APIHandler) RenameSongHandler(w http.ResponseWriter, r *http.Request) {
	songID, ok := songIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	var req songRenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.svc.RenameSong(r.Context(), songID, req.NewName)
	if !result.Success {
		writeError(w, http.StatusBadRequest, result.Message)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// UpdatePlayCountHandler updates play_count and last_played together.
func (h *APIHandler) UpdatePlayCountHandler(w http.ResponseWriter, r *http.Request) {
	songID, ok := songIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	var req songPlayUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.svc.UpdatePlayCount(r.Context(), songID, req.NewPlayCount, req.CurrentTime)
	if !result.Success {
		writeError(w, http.StatusBadRequest, result.Message)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DeleteSongHandler removes a song. Deleting an id that never existed
// still reports success.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	songID, ok := songIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	result := h.svc.DeleteSong(r.Context(), songID)
	if !result.Success {
		writeError(w, http.StatusBadRequest, result.Message)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
