package progress

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// RecordStore persists whole progress documents keyed by grade id. Reads
// and writes replace the full record. *store.SQLProgressRepo satisfies it.
type RecordStore interface {
	Get(ctx context.Context, grade string) (data []byte, ok bool, err error)
	Put(ctx context.Context, grade string, data []byte) error
}

// FileStore keeps one JSON file per grade in a directory.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Path returns the record file for a grade.
func (s *FileStore) Path(grade string) string {
	return filepath.Join(s.Dir, fmt.Sprintf("curriculum_progress_%s.json", grade))
}

func (s *FileStore) Get(_ context.Context, grade string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.Path(grade))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put writes to a temp file and renames it so a crash mid-write never
// leaves a truncated record.
func (s *FileStore) Put(_ context.Context, grade string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.Dir, ".progress-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path(grade))
}
