package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// restSongStore implements SongStore against a hosted PostgREST-style table
// endpoint. Transport failures are raised faults; non-2xx responses carry a
// backend-reported error body and land in Result.Err.
type restSongStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRESTSongStore creates a SongStore speaking to the hosted table API at
// baseURL (e.g. https://project.example.co), authenticated with apiKey.
func NewRESTSongStore(baseURL, apiKey string) SongStore {
	return &restSongStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *restSongStore) tableURL(query url.Values) string {
	u := s.baseURL + "/rest/v1/songs"
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (s *restSongStore) do(ctx context.Context, method, rawURL string, payload interface{}) (*Result, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Ask the backend to echo affected rows back as the response body.
	req.Header.Set("Prefer", "return=representation")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("table request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read table response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errText := strings.TrimSpace(string(respBody))
		if errText == "" {
			errText = resp.Status
		}
		return &Result{Err: errText}, nil
	}

	return decodeResult(respBody)
}

// Create inserts one row; id and play_count default on the backend.
func (s *restSongStore) Create(ctx context.Context, name, filePath string, duration float64) (*Result, error) {
	payload := map[string]interface{}{
		"name":      name,
		"file_path": filePath,
		"duration":  duration,
	}
	return s.do(ctx, http.MethodPost, s.tableURL(nil), payload)
}

// ListAll selects all rows ordered by last_played descending, nulls last.
func (s *restSongStore) ListAll(ctx context.Context) (*Result, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "last_played.desc.nullslast")
	return s.do(ctx, http.MethodGet, s.tableURL(query), nil)
}

// Rename updates name where id matches.
func (s *restSongStore) Rename(ctx context.Context, songID int64, newName string) (*Result, error) {
	query := url.Values{}
	query.Set("id", fmt.Sprintf("eq.%d", songID))
	return s.do(ctx, http.MethodPatch, s.tableURL(query), map[string]interface{}{"name": newName})
}

// UpdatePlayStats updates play_count and last_played together where id matches.
func (s *restSongStore) UpdatePlayStats(ctx context.Context, songID int64, playCount int64, lastPlayed string) (*Result, error) {
	query := url.Values{}
	query.Set("id", fmt.Sprintf("eq.%d", songID))
	payload := map[string]interface{}{
		"play_count":  playCount,
		"last_played": lastPlayed,
	}
	return s.do(ctx, http.MethodPatch, s.tableURL(query), payload)
}

// Delete removes the row where id matches.
func (s *restSongStore) Delete(ctx context.Context, songID int64) (*Result, error) {
	query := url.Values{}
	query.Set("id", fmt.Sprintf("eq.%d", songID))
	return s.do(ctx, http.MethodDelete, s.tableURL(query), nil)
}
