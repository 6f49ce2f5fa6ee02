package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anikulin/note-taker-pro/internal/config"
	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/models"
)

const testSecret = "shared-secret"

// newTestRemote spins up an httptest server with a token endpoint and the
// given notes handler, and returns a RemoteStore pointed at it.
func newTestRemote(t *testing.T, notesHandler http.HandlerFunc) RemoteStore {
	t.Helper()

	// The real server sets the JSON content type on every response
	// (see internal/handler/http/handler.go); the fake must do the same
	// or resty will not unmarshal the bodies.
	asJSON := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			h(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/token", asJSON(func(w http.ResponseWriter, r *http.Request) {
		var req models.TokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.AccessSecret != testSecret {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "bad secret"})
			return
		}
		_ = json.NewEncoder(w).Encode(models.TokenResponse{
			Token:     "test-token",
			ExpiresAt: time.Now().Add(time.Hour),
		})
	})
	mux.HandleFunc("/api/notes/", notesHandler)
	mux.HandleFunc("/api/notes/states", notesHandler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	remote, err := NewHTTPRemoteStore(config.ClientRemote{
		BaseURL:        srv.URL,
		AccessSecret:   testSecret,
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	return remote
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"http://sync.example.com/", "http://sync.example.com", false},
		{"sync.example.com:8080", "http://sync.example.com:8080", false},
		{"https://sync.example.com", "https://sync.example.com", false},
		{"", "", true},
		{"://nope", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatesAuthenticates(t *testing.T) {
	var sawAuth atomic.Value

	remote := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		sawAuth.Store(r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(models.StatesResponse{
			States: []models.RemoteState{{NoteID: "n-1", Rev: 3}},
		})
	})

	states, err := remote.States(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "n-1", states[0].NoteID)
	assert.Equal(t, int64(3), states[0].Rev)
	assert.Equal(t, "Bearer test-token", sawAuth.Load())
}

func TestWrongAccessSecret(t *testing.T) {
	remote := newTestRemote(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	remote.(*httpRemoteStore).accessSecret = "wrong"

	_, err := remote.States(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPutBlobSendsIfMatch(t *testing.T) {
	remote := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "4", r.Header.Get("If-Match"))

		var req models.PutBlobRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []byte("sealed"), req.Payload)

		_ = json.NewEncoder(w).Encode(models.PutBlobResponse{NoteID: "n-1", Rev: 5})
	})

	rev, err := remote.PutBlob(context.Background(), "n-1", []byte("sealed"), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rev)
}

func TestPutBlobConflict(t *testing.T) {
	remote := newTestRemote(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "stale revision"})
	})

	_, err := remote.PutBlob(context.Background(), "n-1", []byte("x"), 2)
	assert.ErrorIs(t, err, ErrRemoteConflict)
}

func TestGetBlobNotFound(t *testing.T) {
	remote := newTestRemote(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := remote.GetBlob(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBlobRoundTrip(t *testing.T) {
	remote := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode(models.BlobResponse{
			NoteID:  "n-1",
			Payload: []byte("sealed bytes"),
			Rev:     7,
		})
	})

	blob, err := remote.GetBlob(context.Background(), "n-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), blob.Rev)
	assert.Equal(t, []byte("sealed bytes"), blob.Payload)
}

func TestDeleteBlob(t *testing.T) {
	remote := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "2", r.Header.Get("If-Match"))
		_ = json.NewEncoder(w).Encode(models.PutBlobResponse{NoteID: "n-1", Rev: 3})
	})

	rev, err := remote.DeleteBlob(context.Background(), "n-1", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rev)
}

func TestExpiredTokenRefreshedOnce(t *testing.T) {
	var calls atomic.Int32

	remote := newTestRemote(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(models.StatesResponse{})
	})

	_, err := remote.States(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestServerErrorMapsToSyncUnavailable(t *testing.T) {
	remote := newTestRemote(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := remote.States(context.Background())
	assert.ErrorIs(t, err, ErrSyncUnavailable)
}

func TestUnreachableRemote(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	remote, err := NewHTTPRemoteStore(config.ClientRemote{
		BaseURL:        url,
		AccessSecret:   testSecret,
		RequestTimeout: time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	_, err = remote.States(context.Background())
	assert.ErrorIs(t, err, ErrSyncUnavailable)
}
