/*
PURPOSE:
  HTTP client for the cuOpt optimization service.
  Handles the health preflight and timed solve calls.

REQUIREMENTS:
  User-specified:
  - GET /cuopt/health as a connectivity preflight.
  - POST /cuopt/cuopt with the fixed JSON payload; only response time and
    HTTP status matter for benchmarking, not the solution itself.
  - Per-call timeout = scenario time limit + grace period.

  Implementation-discovered:
  - Needs http.Client tuned for the configured concurrency (idle conns).
  - A 2xx with a body that is not valid JSON must be recorded as a
    failure, so the body has to be read even though it is not parsed.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go, internal/cli (health command)
  - Uses: internal/payload

ERROR HANDLING:
  - Health returns a plain error; the runner wraps it as ConnectivityError.
  - Solve never returns an error: failures are classified into the
    SolveResult.Err string (timeout/http status/malformed/transport).

IMPLEMENTATION RULES:
  - Use net/http with per-request deadline contexts. No client-level
    Timeout; the deadline varies per scenario.
  - Enforce timeouts.

USAGE:
  c := engine.NewClient("http://cuopt-service:8000", 4)
  res := c.Solve(ctx, p, 60*time.Second)

RELATED FILES:
  - internal/payload/payload.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update if the cuOpt API paths or health schema change.
*/

package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cuopt-oci/fleet-bench/internal/payload"
)

const (
	healthPath = "/cuopt/health"
	solvePath  = "/cuopt/cuopt"

	// preflightTimeout bounds the health check. Matches the historical
	// client's 30s health deadline.
	preflightTimeout = 30 * time.Second
)

// Client talks to one cuOpt endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a Client. Concurrency sizes the idle connection pool
// so a parallel run reuses connections instead of churning them.
func NewClient(endpoint string, concurrency int) *Client {
	if concurrency < 1 {
		concurrency = 1
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = concurrency
	transport.MaxIdleConnsPerHost = concurrency

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		client: &http.Client{
			Transport: transport,
			// No client-level Timeout: solve deadlines vary per scenario
			// and are enforced via request contexts.
		},
	}
}

// Endpoint returns the configured base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Health describes the /cuopt/health response.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// CheckHealth performs the connectivity preflight. Any transport error,
// non-200 status or unparsable body is a failure.
func (c *Client) CheckHealth(ctx context.Context) (Health, error) {
	ctx, cancel := context.WithTimeout(ctx, preflightTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+healthPath, nil)
	if err != nil {
		return Health{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Health{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Health{}, fmt.Errorf("bad status: %s", resp.Status)
	}

	var h Health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return Health{}, fmt.Errorf("invalid health response: %w", err)
	}
	return h, nil
}

// SolveResult carries the measured outcome of one solve call.
// Err is empty on success and a stable classification string otherwise.
type SolveResult struct {
	StatusCode int
	Duration   time.Duration
	Err        string
}

// Solve posts one optimization request and measures wall-clock response
// time. The timeout is the scenario's solver time limit plus the grace
// period. Failures are classified, never raised: benchmarking continues
// regardless of individual call outcomes.
func (c *Client) Solve(ctx context.Context, p payload.Request, timeout time.Duration) SolveResult {
	body, err := json.Marshal(p)
	if err != nil {
		// Payloads are built from validated scenarios; this indicates a bug.
		return SolveResult{Err: fmt.Sprintf("encode payload: %v", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+solvePath, bytes.NewReader(body))
	if err != nil {
		return SolveResult{Err: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return SolveResult{Duration: elapsed, Err: errTimeout}
		}
		return SolveResult{Duration: elapsed, Err: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	// Reading the body is part of the measured call: the solver streams
	// the solution back and a benchmark that stops at headers undercounts.
	elapsed = time.Since(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return SolveResult{StatusCode: resp.StatusCode, Duration: elapsed, Err: errTimeout}
		}
		return SolveResult{StatusCode: resp.StatusCode, Duration: elapsed, Err: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return SolveResult{
			StatusCode: resp.StatusCode,
			Duration:   elapsed,
			Err:        fmt.Sprintf("http %d: %s", resp.StatusCode, truncate(respBody, 200)),
		}
	}

	// Any JSON is accepted as success; the solution is not interpreted.
	if !json.Valid(respBody) {
		return SolveResult{
			StatusCode: resp.StatusCode,
			Duration:   elapsed,
			Err:        fmt.Sprintf("malformed response: not valid JSON (%s)", truncate(respBody, 80)),
		}
	}

	return SolveResult{StatusCode: resp.StatusCode, Duration: elapsed}
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
