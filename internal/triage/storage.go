package triage

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// Storage keys for persisted reviewer state.
const (
	KeySelections     = "selections"
	KeySessionIgnores = "session_ignores"
)

// Storage is the persistence port for reviewer state. Load returns
// (nil, nil) when the key has never been saved. Implementations replace
// the stored value wholesale on Save — there is no merge.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
}

// FileStore persists each key as a JSON file inside a state directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it on first
// use if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "create state directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

// Load reads the value for key, or (nil, nil) if none has been saved.
func (fs *FileStore) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(fs.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "load %s", key)
	}
	return data, nil
}

// Save replaces the value for key. The write goes through a temp file and
// rename so a crash mid-write cannot leave a half-written state file.
func (fs *FileStore) Save(key string, value []byte) error {
	target := fs.path(key)
	tmp, err := os.CreateTemp(fs.dir, key+"-*.tmp")
	if err != nil {
		return eris.Wrapf(err, "save %s", key)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return eris.Wrapf(err, "save %s", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "save %s", key)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "save %s", key)
	}
	return nil
}

// MemoryStore is an in-memory Storage for tests.
type MemoryStore struct {
	values map[string][]byte

	// SaveErr, when set, is returned from every Save to exercise
	// best-effort persistence paths.
	SaveErr error

	// Saves counts Save calls per key.
	Saves map[string]int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
		Saves:  make(map[string]int),
	}
}

// Load returns the stored value, or (nil, nil) when absent.
func (ms *MemoryStore) Load(key string) ([]byte, error) {
	return ms.values[key], nil
}

// Save replaces the stored value.
func (ms *MemoryStore) Save(key string, value []byte) error {
	ms.Saves[key]++
	if ms.SaveErr != nil {
		return ms.SaveErr
	}
	ms.values[key] = append([]byte(nil), value...)
	return nil
}

// Seed stores a value directly, bypassing Save accounting.
func (ms *MemoryStore) Seed(key string, value []byte) {
	ms.values[key] = []byte(value)
}
