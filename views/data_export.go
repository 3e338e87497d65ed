package views

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// CSVWriter is a buffered CSV writer for one flight log.
//
// Rows are encoded into a bufio.Writer and reach the file on Flush or Close.
// Preamble lines that must not be quoted go through WriteRawRow.
type CSVWriter struct {
	mu   sync.Mutex
	path string
	file *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
	rows uint64
}

// NewCSVWriter creates (or truncates) path.
func NewCSVWriter(path string, bufSizeBytes int) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}

	if bufSizeBytes <= 0 {
		bufSizeBytes = 256 * 1024
	}

	bw := bufio.NewWriterSize(f, bufSizeBytes)
	return &CSVWriter{
		path: path,
		file: f,
		buf:  bw,
		csv:  csv.NewWriter(bw),
	}, nil
}

// Path returns the file being written.
func (w *CSVWriter) Path() string { return w.path }

// WriteHeader writes a CSV-encoded row that is not counted as data.
func (w *CSVWriter) WriteHeader(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("csv write header %s: %w", w.path, err)
	}
	return nil
}

// WriteRawRow joins cells with commas and writes them without any quoting.
// Not counted as data.
func (w *CSVWriter) WriteRawRow(cells []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("csv flush %s: %w", w.path, err)
	}
	if _, err := w.buf.WriteString(strings.Join(cells, ",") + "\n"); err != nil {
		return fmt.Errorf("csv write %s: %w", w.path, err)
	}
	return nil
}

// WriteRow appends a single data row.
func (w *CSVWriter) WriteRow(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("csv write %s: %w", w.path, err)
	}
	w.rows++
	return nil
}

// Flush pushes buffered data to the OS.
func (w *CSVWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

func (w *CSVWriter) flushLocked() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("csv flush %s: %w", w.path, err)
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("csv flush %s: %w", w.path, err)
	}
	return nil
}

// Close flushes remaining data and closes the file.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return errors.Join(w.flushLocked(), w.file.Close())
}

// Rows returns the number of data rows written (excludes the preamble).
func (w *CSVWriter) Rows() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}
