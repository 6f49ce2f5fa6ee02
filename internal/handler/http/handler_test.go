package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anikulin/note-taker-pro/internal/config"
	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/internal/mock"
	"github.com/anikulin/note-taker-pro/internal/store"
	"github.com/anikulin/note-taker-pro/models"
)

var testAuthCfg = config.Auth{
	AccessSecret:  "test-access-secret",
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "note-taker-test",
	TokenDuration: time.Hour,
}

func newTestServer(t *testing.T) (*httptest.Server, *mock.BlobRepository) {
	t.Helper()

	blobs := mock.NewBlobRepository()
	h := NewHandler(&store.ServerStorages{Blobs: blobs}, testAuthCfg, logger.Nop())
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	return srv, blobs
}

func obtainToken(t *testing.T, srv *httptest.Server, secret string) (string, int) {
	t.Helper()

	body, err := json.Marshal(models.TokenRequest{AccessSecret: secret})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/auth/token", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode
	}

	var tokenResp models.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokenResp))
	return tokenResp.Token, resp.StatusCode
}

func doRequest(t *testing.T, method, url, token, ifMatch string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if ifMatch != "" {
		req.Header.Set("If-Match", ifMatch)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestTokenExchange(t *testing.T) {
	srv, _ := newTestServer(t)

	token, status := obtainToken(t, srv, testAuthCfg.AccessSecret)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, token)
}

func TestTokenExchangeWrongSecret(t *testing.T) {
	srv, _ := newTestServer(t)

	_, status := obtainToken(t, srv, "wrong")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestBlobAPIRequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodGet, srv.URL+"/api/notes/states", tt.token, "", nil)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestPutAndGetBlob(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := obtainToken(t, srv, testAuthCfg.AccessSecret)

	resp := doRequest(t, http.MethodPut, srv.URL+"/api/notes/n-1", token, "0",
		models.PutBlobRequest{Payload: []byte("sealed payload")})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var putResp models.PutBlobResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&putResp))
	assert.Equal(t, int64(1), putResp.Rev)

	getResp := doRequest(t, http.MethodGet, srv.URL+"/api/notes/n-1", token, "", nil)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var blob models.BlobResponse
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&blob))
	assert.Equal(t, "n-1", blob.NoteID)
	assert.Equal(t, []byte("sealed payload"), blob.Payload)
	assert.Equal(t, int64(1), blob.Rev)
}

func TestPutBlobStaleRevisionConflicts(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := obtainToken(t, srv, testAuthCfg.AccessSecret)

	resp := doRequest(t, http.MethodPut, srv.URL+"/api/notes/n-1", token, "0",
		models.PutBlobRequest{Payload: []byte("v1")})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Second writer still at base 0 must be rejected.
	resp = doRequest(t, http.MethodPut, srv.URL+"/api/notes/n-1", token, "0",
		models.PutBlobRequest{Payload: []byte("v2")})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var errResp models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.NotEmpty(t, errResp.Error)
}

func TestPutBlobMissingIfMatch(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := obtainToken(t, srv, testAuthCfg.AccessSecret)

	resp := doRequest(t, http.MethodPut, srv.URL+"/api/notes/n-1", token, "",
		models.PutBlobRequest{Payload: []byte("x")})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetBlobNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := obtainToken(t, srv, testAuthCfg.AccessSecret)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/notes/ghost", token, "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteBlobTombstones(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := obtainToken(t, srv, testAuthCfg.AccessSecret)

	resp := doRequest(t, http.MethodPut, srv.URL+"/api/notes/n-1", token, "0",
		models.PutBlobRequest{Payload: []byte("v1")})
	resp.Body.Close()

	resp = doRequest(t, http.MethodDelete, srv.URL+"/api/notes/n-1", token, "1", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var delResp models.PutBlobResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&delResp))
	assert.Equal(t, int64(2), delResp.Rev)

	// The tombstone is visible in the states listing.
	statesResp := doRequest(t, http.MethodGet, srv.URL+"/api/notes/states", token, "", nil)
	defer statesResp.Body.Close()
	require.Equal(t, http.StatusOK, statesResp.StatusCode)

	var states models.StatesResponse
	require.NoError(t, json.NewDecoder(statesResp.Body).Decode(&states))
	require.Len(t, states.States, 1)
	assert.True(t, states.States[0].Deleted)
	assert.Equal(t, int64(2), states.States[0].Rev)
}

func TestStatesEmpty(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := obtainToken(t, srv, testAuthCfg.AccessSecret)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/notes/states", token, "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var states models.StatesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&states))
	assert.Empty(t, states.States)
}

func TestTraceIDHeader(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/auth/token", "", "",
		models.TokenRequest{AccessSecret: testAuthCfg.AccessSecret})
	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}
