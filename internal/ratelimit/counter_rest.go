// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// restCounterStore is a [CounterStore] over a Redis-compatible REST
// endpoint (an Upstash-style serverless counter). Commands are sent as one
// pipeline so increment-and-expire is a single round trip; the INCR itself
// is atomic server-side, which is the property the limiter relies on.
type restCounterStore struct {
	client *resty.Client
}

// RESTCounterConfig carries the connection settings of the remote counter
// store. Endpoint and Token must both be present; a store with either
// missing is "unconfigured" and the caller should pass nil to [NewLimiter]
// instead.
type RESTCounterConfig struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// NewRESTCounterStore constructs a [CounterStore] talking to cfg.Endpoint.
// Returns nil when the endpoint or token is absent, signalling an
// unconfigured backend to the limiter.
func NewRESTCounterStore(cfg RESTCounterConfig) CounterStore {
	if cfg.Endpoint == "" || cfg.Token == "" {
		return nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.Token)

	return &restCounterStore{client: cli}
}

// pipelineResult is a single command outcome inside a pipeline response.
type pipelineResult struct {
	Result json.Number `json:"result"`
	Error  string      `json:"error"`
}

// Incr implements [CounterStore]. It pipelines INCR, PEXPIRE NX (so only
// the first increment starts the window — later attempts must not extend
// it), and PTTL to learn how long the current window has left.
func (s *restCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	commands := [][]any{
		{"INCR", key},
		{"PEXPIRE", key, window.Milliseconds(), "NX"},
		{"PTTL", key},
	}

	results, err := s.pipeline(ctx, commands)
	if err != nil {
		return 0, 0, err
	}
	if len(results) != len(commands) {
		return 0, 0, fmt.Errorf("%w: expected %d results, got %d", ErrCounterStoreRequest, len(commands), len(results))
	}

	count, err := results[0].Result.Int64()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad INCR result: %w", ErrCounterStoreRequest, err)
	}

	ttlMillis, err := results[2].Result.Int64()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad PTTL result: %w", ErrCounterStoreRequest, err)
	}
	ttl := time.Duration(ttlMillis) * time.Millisecond
	if ttl < 0 {
		// PTTL reports -1 for a key without expiry; treat it as a full
		// fresh window rather than an already-elapsed one.
		ttl = window
	}

	return count, ttl, nil
}

// Reset implements [CounterStore] by deleting the key.
func (s *restCounterStore) Reset(ctx context.Context, key string) error {
	_, err := s.pipeline(ctx, [][]any{{"DEL", key}})
	return err
}

func (s *restCounterStore) pipeline(ctx context.Context, commands [][]any) ([]pipelineResult, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(commands).
		Post("/pipeline")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCounterStoreRequest, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: http %d: %s", ErrCounterStoreRequest, resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	var results []pipelineResult
	if err = json.Unmarshal(resp.Body(), &results); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrCounterStoreRequest, err)
	}

	for _, r := range results {
		if r.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrCounterStoreRequest, r.Error)
		}
	}

	return results, nil
}
