package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter delivers pairings as date-stamped JSON files in a
// directory.
type FileWriter struct {
	dir string
}

// NewFileWriter creates a writer targeting dir, creating it if needed.
func NewFileWriter(dir string) (*FileWriter, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &FileWriter{dir: dir}, nil
}

// Name returns the name of the delivery channel.
func (f *FileWriter) Name() string { return "file" }

// Deliver writes the pairing as pretty-printed JSON. An existing file
// for the same date is overwritten.
func (f *FileWriter) Deliver(ctx context.Context, payload Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	path := filepath.Join(f.dir, fmt.Sprintf("pairing-%s.json", payload.Date.Format("2006-01-02")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
