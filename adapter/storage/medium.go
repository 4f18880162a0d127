package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("record not found")

// Medium is one storage tier. Record names may contain slashes; how a
// medium maps them onto the underlying layout is its own business.
type Medium interface {
	Name() string
	Available() bool
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}

// DirMedium keeps records as files under a base directory, preserving
// the hierarchical record names.
type DirMedium struct {
	base string
}

func NewDirMedium(base string) *DirMedium {
	return &DirMedium{base: base}
}

func (m *DirMedium) Name() string {
	return "dir:" + m.base
}

func (m *DirMedium) Available() bool {
	if m.base == "" {
		return false
	}
	if err := os.MkdirAll(m.base, 0o755); err != nil {
		return false
	}
	return true
}

func (m *DirMedium) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(m.base, filepath.FromSlash(name)))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

func (m *DirMedium) Write(name string, data []byte) error {
	path := filepath.Join(m.base, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// FlatMedium is the fallback tier: a single directory with record names
// flattened into file names, for media without directory support.
type FlatMedium struct {
	base string
}

func NewFlatMedium(base string) *FlatMedium {
	return &FlatMedium{base: base}
}

func (m *FlatMedium) Name() string {
	return "flat:" + m.base
}

func (m *FlatMedium) Available() bool {
	if m.base == "" {
		return false
	}
	if err := os.MkdirAll(m.base, 0o755); err != nil {
		return false
	}
	return true
}

func (m *FlatMedium) flatten(name string) string {
	return filepath.Join(m.base, strings.ReplaceAll(name, "/", "_"))
}

func (m *FlatMedium) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(m.flatten(name))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

func (m *FlatMedium) Write(name string, data []byte) error {
	return os.WriteFile(m.flatten(name), data, 0o644)
}

// MemoryMedium is the tier of last resort; state survives only as long
// as the process does.
type MemoryMedium struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{records: make(map[string][]byte)}
}

func (m *MemoryMedium) Name() string {
	return "memory"
}

func (m *MemoryMedium) Available() bool {
	return true
}

func (m *MemoryMedium) Read(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.records[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryMedium) Write(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]byte, len(data))
	copy(out, data)
	m.records[name] = out
	return nil
}
