package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuopt-oci/fleet-bench/internal/model"
	"github.com/cuopt-oci/fleet-bench/internal/payload"
)

func solvePayload() payload.Request {
	return payload.Build(model.Scenario{
		Name:             "Smoke-2v",
		Vehicles:         2,
		Locations:        5,
		TimeLimitSeconds: 1,
		Repetitions:      1,
	}, 0)
}

func TestCheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cuopt/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "RUNNING", "version": "25.05"}`))
	}))
	defer srv.Close()

	health, err := NewClient(srv.URL, 1).CheckHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RUNNING", health.Status)
	assert.Equal(t, "25.05", health.Version)
}

func TestCheckHealthBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no gpu", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 1).CheckHealth(context.Background())
	assert.Error(t, err)
}

func TestCheckHealthInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("starting up"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 1).CheckHealth(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid health response")
}

func TestCheckHealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := NewClient(srv.URL, 1).CheckHealth(context.Background())
	assert.Error(t, err)
}

func TestSolveSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cuopt/cuopt", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"response": {"solver_response": {"status": 0}}}`))
	}))
	defer srv.Close()

	res := NewClient(srv.URL, 1).Solve(context.Background(), solvePayload(), 5*time.Second)
	assert.Empty(t, res.Err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Greater(t, res.Duration, time.Duration(0))
}

func TestSolveNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "solver exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	res := NewClient(srv.URL, 1).Solve(context.Background(), solvePayload(), 5*time.Second)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Contains(t, res.Err, "http 500")
}

func TestSolveMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	res := NewClient(srv.URL, 1).Solve(context.Background(), solvePayload(), 5*time.Second)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Err, "malformed response")
}

func TestSolveTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	res := NewClient(srv.URL, 1).Solve(context.Background(), solvePayload(), 50*time.Millisecond)
	assert.Equal(t, errTimeout, res.Err)
	assert.GreaterOrEqual(t, res.Duration, 50*time.Millisecond)
}

func TestSolveTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	res := NewClient(srv.URL, 1).Solve(context.Background(), solvePayload(), time.Second)
	assert.False(t, res.Err == "")
	assert.Contains(t, res.Err, "request failed")
}
