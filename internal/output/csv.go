/*
PURPOSE:
  Writes per-call samples to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Output to CSV alongside the JSON artifacts.

  Implementation-discovered:
  - A benchmark run against large fleets can take hours; flushing per
    record keeps partial data usable after a crash.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Sample

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).
  - Use Mutex; the engine may run with concurrency > 1.

USAGE:
  w, err := output.NewCSVWriter("samples.csv")
  w.Write(sample)
  w.Close()

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when the Sample struct changes.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/cuopt-oci/fleet-bench/internal/model"
)

// CSVWriter handles writing samples to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := []string{
		"scenario", "attempt", "timestamp",
		"response_time_ms", "status_code", "success", "error",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single sample to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(s model.Sample) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		s.ScenarioName,
		strconv.Itoa(s.Attempt),
		s.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		fmt.Sprintf("%.2f", s.ResponseTimeMS()),
		strconv.Itoa(s.StatusCode),
		strconv.FormatBool(s.Success),
		s.Error,
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
