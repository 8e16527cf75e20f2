package checkpoints

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store persists trainer snapshots keyed by experiment identifiers
type Store interface {
	Put(key string, data []byte) error
	Get(key string) ([]byte, error)
	List(prefix string) ([]string, error)
	Close() error
}

// FileStore keeps checkpoints as JSON files under a base directory. Keys
// may contain '/' to create subdirectories.
type FileStore struct {
	dir string
}

var _ Store = &FileStore{}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, filepath.FromSlash(key)+".json")
}

func (f *FileStore) Put(key string, data []byte) error {
	p := f.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0644)
}

func (f *FileStore) Get(key string) ([]byte, error) {
	return os.ReadFile(f.path(key))
}

func (f *FileStore) List(prefix string) ([]string, error) {
	keys := make([]string, 0)
	root := f.dir
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(strings.TrimSuffix(rel, ".json"))
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return keys, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing checkpoints: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *FileStore) Close() error {
	return nil
}
