package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileContent struct {
	Screenings []*ScreeningRecord `json:"screenings"`
	Payroll    []*PayrollRecord   `json:"payroll"`
}

// FileStore keeps all records in a single JSON document.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

func (s *FileStore) SaveScreening(_ context.Context, record *ScreeningRecord) error {
	if record == nil {
		return errors.New("record is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := s.read()
	if err != nil {
		return err
	}

	stamp(&record.ID, &record.DateProcessed, s.now)
	content.Screenings = append(content.Screenings, record)

	return s.write(content)
}

func (s *FileStore) GetScreening(_ context.Context, id string) (*ScreeningRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := s.read()
	if err != nil {
		return nil, err
	}

	for _, record := range content.Screenings {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, fmt.Errorf("screening %q: %w", id, ErrNotFound)
}

func (s *FileStore) ListScreenings(_ context.Context) ([]*ScreeningRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := s.read()
	if err != nil {
		return nil, err
	}
	return content.Screenings, nil
}

func (s *FileStore) SavePayroll(_ context.Context, record *PayrollRecord) error {
	if record == nil {
		return errors.New("record is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := s.read()
	if err != nil {
		return err
	}

	stamp(&record.ID, &record.DateProcessed, s.now)
	content.Payroll = append(content.Payroll, record)

	return s.write(content)
}

func (s *FileStore) ListPayroll(_ context.Context) ([]*PayrollRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := s.read()
	if err != nil {
		return nil, err
	}
	return content.Payroll, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() (*fileContent, error) {
	content := &fileContent{}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return content, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}
	if len(data) == 0 {
		return content, nil
	}

	if err := json.Unmarshal(data, content); err != nil {
		return nil, fmt.Errorf("decode records file %s: %w", s.path, err)
	}
	return content, nil
}

// write replaces the file atomically through a temp file in the same directory.
func (s *FileStore) write(content *fileContent) error {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create records dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".records-*.json")
	if err != nil {
		return fmt.Errorf("create temp records file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp records file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp records file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace records file: %w", err)
	}
	return nil
}
