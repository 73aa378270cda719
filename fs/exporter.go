// Package fs provides file-based exporters for business records.
package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/bizscan"
)

// StdoutPath is the output path that selects standard output.
const StdoutPath = "-"

// ExporterOption configures a file exporter.
type ExporterOption func(*exporter)

// WithStdout sets the writer used when the output path is StdoutPath.
func WithStdout(w io.Writer) ExporterOption {
	return func(e *exporter) {
		e.stdout = w
	}
}

type encodeFunc func(w io.Writer, records []*bizscan.BusinessRecord) error

// exporter writes encoded records either to stdout or atomically to a file.
type exporter struct {
	path   string
	stdout io.Writer
	encode encodeFunc
}

func newExporter(path string, encode encodeFunc, opts []ExporterOption) *exporter {
	e := &exporter{
		path:   path,
		stdout: os.Stdout,
		encode: encode,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *exporter) export(ctx context.Context, records []*bizscan.BusinessRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.path == "" || e.path == StdoutPath {
		return e.encode(e.stdout, records)
	}
	return writeAtomic(e.path, func(w io.Writer) error {
		return e.encode(w, records)
	})
}

// writeAtomic writes to a temporary file next to path and renames it into
// place, so readers never observe a partially written file.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Ensure JSONExporter implements bizscan.Exporter at compile time.
var _ bizscan.Exporter = (*JSONExporter)(nil)

// JSONExporter writes records as one indented JSON array.
type JSONExporter struct {
	*exporter
}

// NewJSONExporter creates a JSONExporter writing to path.
func NewJSONExporter(path string, opts ...ExporterOption) *JSONExporter {
	return &JSONExporter{exporter: newExporter(path, encodeJSON, opts)}
}

// Export writes records as a JSON array.
func (e *JSONExporter) Export(ctx context.Context, records []*bizscan.BusinessRecord) error {
	return e.export(ctx, records)
}

func encodeJSON(w io.Writer, records []*bizscan.BusinessRecord) error {
	if records == nil {
		records = []*bizscan.BusinessRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Ensure JSONLExporter implements bizscan.Exporter at compile time.
var _ bizscan.Exporter = (*JSONLExporter)(nil)

// JSONLExporter writes records as JSON Lines, one record per line.
type JSONLExporter struct {
	*exporter
}

// NewJSONLExporter creates a JSONLExporter writing to path.
func NewJSONLExporter(path string, opts ...ExporterOption) *JSONLExporter {
	return &JSONLExporter{exporter: newExporter(path, encodeJSONL, opts)}
}

// Export writes one JSON object per record.
func (e *JSONLExporter) Export(ctx context.Context, records []*bizscan.BusinessRecord) error {
	return e.export(ctx, records)
}

func encodeJSONL(w io.Writer, records []*bizscan.BusinessRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
