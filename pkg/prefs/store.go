package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

const (
	fileMode        = 0o600
	dirMode         = 0o700
	tempFilePattern = ".prefs-*.toml.tmp"
)

var (
	// ErrEmptyKey is returned when a preference key is empty.
	ErrEmptyKey = errors.New("empty preference key")
	// ErrCorruptFile is returned by FileStore.Get when the file is not a
	// valid preference document.
	ErrCorruptFile = errors.New("corrupt preference file")
)

// Store is a flat string key/value preference store.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// MemoryStore is a Store held in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// fileSchema is the TOML layout of a preference file.
type fileSchema struct {
	Preferences map[string]string `toml:"preferences"`
}

// FileStore is a Store persisted as a TOML file.
type FileStore struct {
	path string
	log  logrus.FieldLogger
	mu   sync.RWMutex
}

// NewFileStore returns a FileStore for path. The file is created on the
// first Set. A file that cannot be decoded is replaced by the next Set.
func NewFileStore(path string, log logrus.FieldLogger) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("preference path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve preference path: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FileStore{path: abs, log: log.WithField("path", abs)}, nil
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schema, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := schema.Preferences[key]
	return v, ok, nil
}

// Set stores value under key and rewrites the file.
func (s *FileStore) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	schema, err := s.read()
	if errors.Is(err, ErrCorruptFile) {
		s.log.WithError(err).Warn("discarding unreadable preferences")
		schema, err = fileSchema{Preferences: map[string]string{}}, nil
	}
	if err != nil {
		return err
	}
	schema.Preferences[key] = value
	return s.write(schema)
}

func (s *FileStore) read() (fileSchema, error) {
	schema := fileSchema{Preferences: map[string]string{}}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return schema, nil
	}
	if err != nil {
		return schema, fmt.Errorf("read preferences: %w", err)
	}

	if err := toml.Unmarshal(data, &schema); err != nil {
		return fileSchema{Preferences: map[string]string{}}, fmt.Errorf("%w: %w", ErrCorruptFile, err)
	}
	if schema.Preferences == nil {
		schema.Preferences = map[string]string{}
	}
	return schema, nil
}

func (s *FileStore) write(schema fileSchema) error {
	data, err := toml.Marshal(schema)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp preferences file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp preferences file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp preferences file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp preferences file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace preferences file: %w", err)
	}
	return nil
}
