package settingsstore

import (
	"smartaccount_playground/internal/app/port"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps settings for the lifetime of the process.
type MemoryStore struct {
	items *cache.Cache
}

var _ port.SettingsStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := s.items.Get(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.items.Set(key, value, cache.NoExpiration)
	return nil
}

// Snapshot copies every stored key.
func (s *MemoryStore) Snapshot() map[string]string {
	items := s.items.Items()
	out := make(map[string]string, len(items))
	for k, item := range items {
		out[k] = item.Object.(string)
	}
	return out
}
