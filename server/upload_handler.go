package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"songvault/core/audio"
	"songvault/logger"

	"github.com/google/uuid"
)

const maxUploadSize = 100 << 20 // 100MB

var allowedAudioTypes = map[string]bool{
	"audio/mpeg":  true,
	"audio/mp3":   true,
	"audio/wav":   true,
	"audio/x-wav": true,
}

// UploadSongHandler stores the uploaded audio bytes in object storage,
// resolves a fetchable URL, probes the playback duration and creates the
// metadata record. When the metadata create fails after the storage write
// succeeded, the stored object is deleted again so no orphan is left.
func (h *APIHandler) UploadSongHandler(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large. Maximum size is %d MB", maxUploadSize>>20))
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		logger.Error("failed to parse upload form", logger.ErrorField(err))
		writeError(w, http.StatusBadRequest, "Failed to parse upload form")
		return
	}

	songFile, songHeader, err := r.FormFile("songFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing audio file")
		return
	}
	defer songFile.Close()

	if songHeader.Size > maxUploadSize {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("File too large. Maximum size is %d MB", maxUploadSize>>20))
		return
	}

	contentType := songHeader.Header.Get("Content-Type")
	if !allowedAudioTypes[contentType] {
		writeError(w, http.StatusBadRequest, "Invalid file type. Supported formats: MP3, WAV")
		return
	}

	name := r.FormValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "Missing 'name' in form")
		return
	}

	// Spool to a temp file so the bytes can be both probed and uploaded.
	tmp, err := os.CreateTemp("", "songvault-upload-*")
	if err != nil {
		logger.Error("failed to create temp file", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to process uploaded file")
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, songFile); err != nil {
		logger.Error("failed to spool upload", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to process uploaded file")
		return
	}

	ext := strings.ToLower(filepath.Ext(songHeader.Filename))
	if ext == "" {
		ext = ".mp3"
	}
	objectKey := "songs/" + uuid.New().String() + ext

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process uploaded file")
		return
	}
	if err := h.blobs.Upload(r.Context(), objectKey, tmp, songHeader.Size, contentType); err != nil {
		logger.Error("failed to upload object", logger.String("key", objectKey), logger.ErrorField(err))
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Storage upload failed: %v", err))
		return
	}

	fileURL := h.blobs.PublicURL(r.Context(), objectKey)

	duration, err := audio.ProbeDuration(h.cfg.FFprobePath, tmp.Name())
	if err != nil {
		logger.Warn("duration probe failed, defaulting to 0",
			logger.String("filename", songHeader.Filename), logger.ErrorField(err))
		duration = 0
	}

	result := h.svc.AddSong(r.Context(), name, fileURL, duration)
	if !result.Success {
		// Compensating delete: the object was stored but the metadata
		// create failed, which would otherwise orphan the upload.
		if rmErr := h.blobs.Remove(r.Context(), objectKey); rmErr != nil {
			logger.Error("failed to remove orphaned object",
				logger.String("key", objectKey), logger.ErrorField(rmErr))
		}
		writeError(w, http.StatusBadRequest, result.Message)
		return
	}

	logger.Info("song uploaded",
		logger.String("name", name),
		logger.String("key", objectKey),
		logger.Float64("duration", duration))
	writeJSON(w, http.StatusOK, result)
}

// FileHandler streams a stored object back to the client, for deployments
// where the object store is not directly reachable by browsers.
func (h *APIHandler) FileHandler(w http.ResponseWriter, r *http.Request) {
	objectKey := strings.TrimPrefix(r.URL.Path, "/files/")
	if objectKey == "" {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	object, err := h.blobs.Fetch(r.Context(), objectKey)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer object.Close()

	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(objectKey)) {
	case ".mp3":
		contentType = "audio/mpeg"
	case ".wav":
		contentType = "audio/wav"
	}
	w.Header().Set("Content-Type", contentType)

	if _, err := io.Copy(w, object); err != nil {
		logger.Error("error serving file", logger.String("key", objectKey), logger.ErrorField(err))
	}
}
