// Package journal provides a generic append-only record file. Records are
// stored one JSON document per line so the file survives process restarts
// and can be appended to again later.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Journal is an append-only sequence of records of type T backed by a file.
type Journal[T any] interface {
	Len() uint64
	Path() string
	Append(record T) error
	Get(index uint64) (T, error)
	Range(fn func(index uint64, record T) error) error
	Close() error
}

type fileJournal[T any] struct {
	path   string
	file   *os.File
	mu     sync.Mutex
	length uint64
}

// Open opens or creates the journal at path and counts its existing records.
func Open[T any](path string) (Journal[T], error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o640)
	if err != nil {
		slog.Error("failed to open journal", "path", path, "error", err)
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	j := &fileJournal[T]{path: path, file: file}

	length, err := j.countRecords()
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	j.length = length
	slog.Debug("opened journal", "path", path, "length", length)

	return j, nil
}

func (j *fileJournal[T]) countRecords() (uint64, error) {
	reader, err := os.Open(j.path)
	if err != nil {
		return 0, fmt.Errorf("failed to reopen journal for counting: %w", err)
	}

	defer func() {
		if err := reader.Close(); err != nil {
			slog.Error("failed to close journal reader", "path", j.path, "error", err)
		}
	}()

	var count uint64

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		if len(scanner.Bytes()) > 0 {
			count++
		}
	}

	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan journal: %w", err)
	}

	return count, nil
}

// Append implements Journal.
func (j *fileJournal[T]) Append(record T) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	line, err := json.Marshal(record)
	if err != nil {
		slog.Error("failed to encode record", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("failed to encode record: %w", err)
	}

	if _, err := j.file.Write(append(line, '\n')); err != nil {
		slog.Error("failed to write record", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("failed to write record: %w", err)
	}

	j.length++
	slog.Debug("appended record", "path", j.path, "index", j.length-1)

	return nil
}

// Path implements Journal.
func (j *fileJournal[T]) Path() string {
	return j.path
}

// Len implements Journal.
func (j *fileJournal[T]) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.length
}

// Get implements Journal.
func (j *fileJournal[T]) Get(index uint64) (T, error) {
	var record T

	found := false

	err := j.Range(func(i uint64, r T) error {
		if i == index {
			record = r
			found = true
		}

		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	if !found {
		var zero T

		slog.Warn("get index out of bounds", "path", j.path, "index", index)

		return zero, fmt.Errorf("index %d out of bounds (length %d)", index, j.Len())
	}

	return record, nil
}

// Range implements Journal.
func (j *fileJournal[T]) Range(fn func(index uint64, record T) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	reader, err := os.Open(j.path)
	if err != nil {
		slog.Error("failed to open journal for range", "path", j.path, "error", err)
		return fmt.Errorf("failed to open journal: %w", err)
	}

	defer func() {
		if err := reader.Close(); err != nil {
			slog.Error("failed to close journal reader", "path", j.path, "error", err)
		}
	}()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var index uint64

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record T
		if err := json.Unmarshal(line, &record); err != nil {
			slog.Error("failed to decode record", "path", j.path, "index", index, "error", err)
			return fmt.Errorf("failed to decode record at index %d: %w", index, err)
		}

		if err := fn(index, record); err != nil {
			slog.Warn("range callback error", "path", j.path, "index", index, "error", err)
			return err
		}

		index++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan journal: %w", err)
	}

	slog.Debug("range completed", "path", j.path, "count", index)

	return nil
}

// Close implements Journal.
func (j *fileJournal[T]) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file != nil {
		if err := j.file.Close(); err != nil {
			slog.Error("failed to close journal", "path", j.path, "error", err)
			return err
		}

		slog.Debug("closed journal", "path", j.path, "length", j.length)
	}

	return nil
}
