package results

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// JSONL appends records to a file, one JSON object per line.
type JSONL struct {
	path string
	mu   sync.Mutex
}

// OpenJSONL prepares a JSONL ledger at path, creating parent directories.
func OpenJSONL(path string) (*JSONL, error) {
	if err := hcerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}
	return &JSONL{path: path}, nil
}

// Path returns the ledger file.
func (l *JSONL) Path() string { return l.path }

// Append writes records and syncs the file.
func (l *JSONL) Append(ctx context.Context, records ...Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return f.Sync()
}

// List reads matching records in file order. Lines that do not decode are
// skipped.
func (l *JSONL) List(ctx context.Context, flt Filter) ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	var out []Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var r Record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			continue
		}
		if !flt.match(r) {
			continue
		}
		out = append(out, r)
		if flt.Limit > 0 && len(out) == flt.Limit {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return out, nil
}

// Close does nothing; files are opened per call.
func (l *JSONL) Close() error { return nil }

var _ Ledger = (*JSONL)(nil)
