package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"talentGraph/internal/model"
	"talentGraph/internal/projection"
)

// JsonlStorage writes log records to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutLogBatch appends a batch of log records as JSON lines.
func (s *JsonlStorage) PutLogBatch(logs []model.LogRecord) error {
	if len(logs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := NewWriter(s.path, true)
	if err != nil {
		return err
	}
	for _, record := range logs {
		if err := w.Write(record); err != nil {
			w.Close()
			return fmt.Errorf("write log record: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// Writer emits one JSON document per line.
type Writer struct {
	file   *os.File
	writer *bufio.Writer
}

// NewWriter opens path for JSONL output, truncating unless appendMode is set.
func NewWriter(path string, appendMode bool) (*Writer, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	return &Writer{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

func (w *Writer) Write(value interface{}) error {
	line, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := w.writer.Write(line); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}

// Flush pushes buffered lines to the file.
func (w *Writer) Flush() error {
	if w == nil {
		return nil
	}
	return w.writer.Flush()
}

func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// FetchQueue appends content fetch registrations to a JSONL file for an
// external fetcher to drain.
type FetchQueue struct {
	mu sync.Mutex
	w  *Writer
}

func NewFetchQueue(path string) (*FetchQueue, error) {
	w, err := NewWriter(path, true)
	if err != nil {
		return nil, err
	}
	return &FetchQueue{w: w}, nil
}

// RegisterForFetch records cid with its context. Each line is flushed before
// returning.
func (q *FetchQueue) RegisterForFetch(_ context.Context, cid string, context map[string]string) error {
	if cid == "" {
		return fmt.Errorf("empty cid")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.w.Write(projection.Registration{CID: cid, Context: context}); err != nil {
		return err
	}
	return q.w.Flush()
}

func (q *FetchQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.w.Close()
}

// ContentKeywords is one line of the keyword file written by the content
// fetcher: the keywords extracted from the document behind CID.
type ContentKeywords struct {
	CID      string   `json:"cid"`
	Keywords []string `json:"keywords"`
}

// ReadKeywords calls fn for every line of the keyword file at path.
// A line that does not decode stops the read with its line number.
func ReadKeywords(path string, fn func(ContentKeywords) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open keywords: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec ContentKeywords
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("keywords line %d: %w", lineNo, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan keywords: %w", err)
	}
	return nil
}
