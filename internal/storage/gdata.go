package storage

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/quasilyte/gdata"
)

// LocalStore keeps items in the per-user application data directory.
type LocalStore struct {
	m *gdata.Manager
}

// OpenLocal opens the data directory of the named application.
func OpenLocal(appName string) (*LocalStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open local data: %w", err)
	}
	return &LocalStore{m: m}, nil
}

// LoadItem returns the stored value, or nil if the key is absent or cleared.
func (s *LocalStore) LoadItem(key string) ([]byte, error) {
	data, err := s.m.LoadItem(key)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load %q: %w", key, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// SaveItem writes the value. Nil data deletes the item.
func (s *LocalStore) SaveItem(key string, data []byte) error {
	if data == nil {
		if err := s.m.DeleteItem(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("storage: cannot delete %q: %w", key, err)
		}
		return nil
	}
	if err := s.m.SaveItem(key, data); err != nil {
		return fmt.Errorf("storage: cannot save %q: %w", key, err)
	}
	return nil
}
