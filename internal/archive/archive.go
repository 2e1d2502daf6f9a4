package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

const (
	plainExt      = ".json"
	compressedExt = ".json.zst"
)

// Record is the diagnostic trace of one analysis run.
type Record struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	State      string    `json:"state"` // "done" or "error"
	Notes      []string  `json:"notes,omitempty"`
	ReportPath string    `json:"report_path,omitempty"`
	Error      string    `json:"error,omitempty"`
	Prompt     string    `json:"prompt,omitempty"`
	Analysis   string    `json:"analysis,omitempty"`
}

// Store writes run records into Dir, one file per run.
type Store struct {
	Dir      string
	Compress bool
}

// Save writes rec to {Dir}/{rec.ID}.json.zst (or .json when Compress is off).
// Returns the written path.
func (s Store) Save(rec Record) (string, error) {
	if rec.ID == "" {
		return "", fmt.Errorf("record has no id")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	ext := plainExt
	if s.Compress {
		ext = compressedExt
	}
	destPath := filepath.Join(s.Dir, rec.ID+ext)

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create record: %w", err)
	}
	defer dest.Close()

	if !s.Compress {
		if _, err := dest.Write(data); err != nil {
			return "", fmt.Errorf("write record: %w", err)
		}
		return destPath, nil
	}

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if _, err := encoder.Write(data); err != nil {
		encoder.Close()
		return "", fmt.Errorf("compress: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}

	return destPath, nil
}

// Load reads a record written by Save, compressed or not.
func Load(path string) (Record, error) {
	var rec Record

	f, err := os.Open(path)
	if err != nil {
		return rec, fmt.Errorf("open record: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, compressedExt) {
		decoder, err := zstd.NewReader(f)
		if err != nil {
			return rec, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer decoder.Close()
		r = decoder
	}

	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return rec, fmt.Errorf("decode record %s: %w", filepath.Base(path), err)
	}
	return rec, nil
}

// List loads every record in Dir, oldest first. A missing Dir is empty.
// Unreadable files are skipped.
func (s Store) List() ([]Record, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []Record
	for _, e := range entries {
		if e.IsDir() || !isRecordFile(e.Name()) {
			continue
		}
		rec, err := Load(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.Before(records[j].StartedAt)
	})
	return records, nil
}

func isRecordFile(name string) bool {
	return strings.HasSuffix(name, compressedExt) || strings.HasSuffix(name, plainExt)
}
