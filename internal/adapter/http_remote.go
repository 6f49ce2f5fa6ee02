// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/anikulin/note-taker-pro/internal/config"
	"github.com/anikulin/note-taker-pro/internal/logger"
	"github.com/anikulin/note-taker-pro/models"
)

// Bounded retry schedule for outbound sync calls. After the attempts are
// exhausted the caller gets [ErrSyncUnavailable]; sync never blocks the
// CLI indefinitely.
const (
	retryCount       = 3
	retryWaitTime    = 500 * time.Millisecond
	retryMaxWaitTime = 5 * time.Second
)

type httpRemoteStore struct {
	client       *resty.Client
	accessSecret string
	logger       *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of
// [RemoteStore]. The base URL is normalized (scheme defaulted to http)
// and the client is configured with the bounded retry schedule:
// exponential backoff starting at 500ms, capped at 5s, 3 retries.
func NewHTTPRemoteStore(cfg config.ClientRemote, log *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode() >= 500
		})

	return &httpRemoteStore{
		client:       client,
		accessSecret: cfg.AccessSecret,
		logger:       &logger.Logger{Logger: log.With().Str("component", "remote-store").Logger()},
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// States implements [RemoteStore].
func (h *httpRemoteStore) States(ctx context.Context) ([]models.RemoteState, error) {
	var result models.StatesResponse

	err := h.authenticated(ctx, func(token string) (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&result).
			Get("/api/notes/states")
	})
	if err != nil {
		return nil, err
	}

	return result.States, nil
}

// GetBlob implements [RemoteStore].
func (h *httpRemoteStore) GetBlob(ctx context.Context, noteID string) (models.BlobResponse, error) {
	var result models.BlobResponse

	err := h.authenticated(ctx, func(token string) (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&result).
			Get("/api/notes/" + url.PathEscape(noteID))
	})
	if err != nil {
		return models.BlobResponse{}, err
	}

	return result, nil
}

// PutBlob implements [RemoteStore]. The expected base revision travels in
// the If-Match header; the server answers 409 when it is stale.
func (h *httpRemoteStore) PutBlob(ctx context.Context, noteID string, payload []byte, baseRev int64) (int64, error) {
	var result models.PutBlobResponse

	err := h.authenticated(ctx, func(token string) (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetHeader("Content-Type", "application/json").
			SetHeader("If-Match", strconv.FormatInt(baseRev, 10)).
			SetBody(models.PutBlobRequest{Payload: payload}).
			SetResult(&result).
			Put("/api/notes/" + url.PathEscape(noteID))
	})
	if err != nil {
		return 0, err
	}

	return result.Rev, nil
}

// DeleteBlob implements [RemoteStore].
func (h *httpRemoteStore) DeleteBlob(ctx context.Context, noteID string, baseRev int64) (int64, error) {
	var result models.PutBlobResponse

	err := h.authenticated(ctx, func(token string) (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetHeader("If-Match", strconv.FormatInt(baseRev, 10)).
			SetResult(&result).
			Delete("/api/notes/" + url.PathEscape(noteID))
	})
	if err != nil {
		return 0, err
	}

	return result.Rev, nil
}

// authenticated runs one request with a valid bearer token, obtaining or
// refreshing it as needed. A single 401 triggers one re-authentication
// before the error is surfaced.
func (h *httpRemoteStore) authenticated(ctx context.Context, do func(token string) (*resty.Response, error)) error {
	token, err := h.ensureToken(ctx, false)
	if err != nil {
		return err
	}

	resp, err := do(token)
	if err != nil {
		h.logger.Warn().Err(err).Msg("remote request failed after retries")
		return fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
	}

	if resp.StatusCode() == 401 {
		if token, err = h.ensureToken(ctx, true); err != nil {
			return err
		}
		if resp, err = do(token); err != nil {
			return fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
		}
	}

	return mapHTTPError(resp)
}

// ensureToken returns the cached bearer token, exchanging the access
// secret for a fresh one when none is cached or refresh is forced.
func (h *httpRemoteStore) ensureToken(ctx context.Context, refresh bool) (string, error) {
	h.mu.RLock()
	token := h.token
	h.mu.RUnlock()
	if token != "" && !refresh {
		return token, nil
	}

	var result models.TokenResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.TokenRequest{AccessSecret: h.accessSecret}).
		SetResult(&result).
		Post("/api/auth/token")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	h.mu.Lock()
	h.token = result.Token
	h.mu.Unlock()
	h.logger.Debug().Time("expires_at", result.ExpiresAt).Msg("obtained remote token")

	return result.Token, nil
}
