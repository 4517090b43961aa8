package service

import (
	"context"
	"errors"
	"testing"

	"songvault/model"
	"songvault/store"
)

// fakeStore records calls and plays back canned results.
type fakeStore struct {
	result *store.Result
	err    error

	createCalls int
	lastName    string
	lastPath    string
	lastCount   int64
	lastTime    string
}

func (f *fakeStore) Create(ctx context.Context, name, filePath string, duration float64) (*store.Result, error) {
	f.createCalls++
	f.lastName = name
	f.lastPath = filePath
	return f.result, f.err
}

func (f *fakeStore) ListAll(ctx context.Context) (*store.Result, error) {
	return f.result, f.err
}

func (f *fakeStore) Rename(ctx context.Context, songID int64, newName string) (*store.Result, error) {
	f.lastName = newName
	return f.result, f.err
}

func (f *fakeStore) UpdatePlayStats(ctx context.Context, songID int64, playCount int64, lastPlayed string) (*store.Result, error) {
	f.lastCount = playCount
	f.lastTime = lastPlayed
	return f.result, f.err
}

func (f *fakeStore) Delete(ctx context.Context, songID int64) (*store.Result, error) {
	return f.result, f.err
}

func TestAddSongValidation(t *testing.T) {
	tests := []struct {
		name     string
		songName string
		filePath string
		duration float64
	}{
		{"missing name", "", "http://x/a.mp3", 1},
		{"missing file path", "Intro", "", 1},
		{"zero duration", "Intro", "http://x/a.mp3", 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeStore{}
			svc := NewSongService(fake)

			result := svc.AddSong(context.Background(), tc.songName, tc.filePath, tc.duration)
			if result.Success {
				t.Fatal("expected validation failure")
			}
			if result.Message != "All fields are required" {
				t.Fatalf("unexpected message %q", result.Message)
			}
			if fake.createCalls != 0 {
				t.Fatal("validation failure must not reach the store")
			}
		})
	}
}

func TestAddSongSuccess(t *testing.T) {
	created := model.Song{ID: 1, Name: "Intro", FilePath: "http://x/intro.mp3", Duration: 12.5}
	fake := &fakeStore{result: &store.Result{Data: []model.Song{created}}}
	svc := NewSongService(fake)

	result := svc.AddSong(context.Background(), "Intro", "http://x/intro.mp3", 12.5)
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.Message != "Song added successfully" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if len(result.Data) != 1 || result.Data[0].ID != 1 {
		t.Fatalf("expected created row in envelope, got %#v", result.Data)
	}
}

func TestAddSongBackendError(t *testing.T) {
	fake := &fakeStore{result: &store.Result{Err: "duplicate key"}}
	svc := NewSongService(fake)

	result := svc.AddSong(context.Background(), "Intro", "u", 1)
	if result.Success {
		t.Fatal("expected failure envelope")
	}
	if result.Message != "Backend error: duplicate key" {
		t.Fatalf("expected prefixed backend error, got %q", result.Message)
	}
}

func TestAddSongFaultConverted(t *testing.T) {
	fake := &fakeStore{err: errors.New("connection reset")}
	svc := NewSongService(fake)

	result := svc.AddSong(context.Background(), "Intro", "u", 1)
	if result.Success {
		t.Fatal("expected failure envelope")
	}
	if result.Message != "add song failed: connection reset" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestGetSongsCoercesNilToEmptyList(t *testing.T) {
	fake := &fakeStore{result: &store.Result{Data: nil}}
	svc := NewSongService(fake)

	result := svc.GetSongs(context.Background())
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.Songs == nil {
		t.Fatal("expected non-nil songs slice")
	}
	if len(result.Songs) != 0 {
		t.Fatalf("expected empty list, got %d songs", len(result.Songs))
	}
}

func TestGetSongsFaultConverted(t *testing.T) {
	fake := &fakeStore{err: errors.New("boom")}
	svc := NewSongService(fake)

	result := svc.GetSongs(context.Background())
	if result.Success {
		t.Fatal("expected failure envelope")
	}
	if result.Message != "get songs failed: boom" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestRenameSongPassThrough(t *testing.T) {
	fake := &fakeStore{result: &store.Result{}}
	svc := NewSongService(fake)

	// An empty new name is passed through without validation.
	result := svc.RenameSong(context.Background(), 3, "")
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.Message != "Song 3 renamed successfully" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestUpdatePlayCountCallerTrusted(t *testing.T) {
	fake := &fakeStore{result: &store.Result{}}
	svc := NewSongService(fake)

	// Negative counts are caller-trusted and not rejected.
	result := svc.UpdatePlayCount(context.Background(), 7, -1, "2024-01-01T00:00:00")
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.Message != "Play count updated for song 7" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if fake.lastCount != -1 || fake.lastTime != "2024-01-01T00:00:00" {
		t.Fatalf("expected paired pass-through, got count=%d time=%q", fake.lastCount, fake.lastTime)
	}
}

func TestDeleteSongSuccessMessage(t *testing.T) {
	fake := &fakeStore{result: &store.Result{}}
	svc := NewSongService(fake)

	result := svc.DeleteSong(context.Background(), 999)
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.Message != "Song 999 deleted successfully" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}
