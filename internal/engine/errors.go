/*
PURPOSE:
  Error taxonomy for the benchmark engine.
  Only connectivity failures are fatal; everything else is captured
  into the sample stream.

REQUIREMENTS:
  User-specified:
  - Preflight failure aborts the run before any scenario executes.
  - Per-call failures (non-2xx, transport, timeout, malformed body)
    never abort the run.

  Implementation-discovered:
  - Sample error strings surface in CSV/JSONL artifacts, so they must
    be stable. Timeouts are recorded as exactly "timeout".

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine/client.go, internal/engine/runner.go
  - Surfaced to: internal/cli (fatal path), output artifacts (sample path)

ERROR HANDLING:
  - ConnectivityError wraps the underlying cause for %w chains.

IMPLEMENTATION RULES:
  - errors.As-friendly: ConnectivityError is a pointer type with Unwrap.

USAGE:
  var ce *engine.ConnectivityError
  if errors.As(err, &ce) { ... }

RELATED FILES:
  - internal/engine/client.go

MAINTENANCE:
  - Extend when new fatal error classes appear.
*/

package engine

import (
	"fmt"
)

// errTimeout is the stable sample error string for calls that exceed
// their deadline. Downstream analysis matches on it verbatim.
const errTimeout = "timeout"

// ConnectivityError means the cuOpt endpoint failed the preflight health
// check. It is the only error class that aborts a run.
type ConnectivityError struct {
	Endpoint string
	Err      error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cuOpt endpoint %s is unreachable: %v", e.Endpoint, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}
