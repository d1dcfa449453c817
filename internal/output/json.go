/*
PURPOSE:
  JSON artifacts: a JSON Lines stream of per-call samples (append-friendly,
  crash-resilient) and the final run report document.

REQUIREMENTS:
  User-specified:
  - The run report must be a stable, parseable artifact; downstream
    chart generation consumes it.

  Implementation-discovered:
  - JSON Lines is better for streaming/logging than a single large array
    (append-friendly): a run killed mid-scenario still leaves usable
    sample data on disk.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Sample, internal/model.RunReport

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - Thread-safe.

USAGE:
  w, err := output.NewJSONWriter("samples.jsonl")
  w.Write(sample)
  w.Close()
  output.WriteReport("report.json", report)

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update if the report schema changes (coordinate with chart tooling).
*/

package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/cuopt-oci/fleet-bench/internal/model"
)

// JSONWriter handles writing samples to a JSON Lines file.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Write writes a single sample as a JSON line.
func (jw *JSONWriter) Write(s model.Sample) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(s)
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}

// WriteReport writes the run report as an indented JSON document.
func WriteReport(path string, report *model.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
