// Package volume persists the last-used playback volume and tracks whether it has been hydrated from storage.
package volume

import (
	"github.com/melodeck/melodeck/log"
	"github.com/melodeck/melodeck/util"
)

// Key is the well-known storage key of the persisted volume.
const Key = "__volume"

// KeyValueStore is the durable key-value area the volume is persisted in.
type KeyValueStore interface {
	// Get returns the stored value and whether one exists.
	Get(key string) (float64, bool, error)
	Set(key string, value float64) error
}

// Volume is the current volume together with its hydration flag.
// Hydrated is false until the persisted value has been read or confirmed absent.
type Volume struct {
	Hydrated bool
	Value    float64
}

// Store exposes the single persisted volume scalar.
type Store struct {
	kv         KeyValueStore
	volume     Volume
	onHydrated []func(float64)
}

// NewStore creates a store that reports defaultValue until it is hydrated.
func NewStore(kv KeyValueStore, defaultValue float64) *Store {
	return &Store{
		kv:     kv,
		volume: Volume{Value: util.Clamp(defaultValue, 0, 1)},
	}
}

// Volume returns a snapshot of the current volume.
func (s *Store) Volume() Volume {
	return s.volume
}

// Hydrated reports whether the persisted value has been read.
func (s *Store) Hydrated() bool {
	return s.volume.Hydrated
}

// OnHydrated registers fn to run once the store is hydrated. If it already is, fn runs immediately.
func (s *Store) OnHydrated(fn func(float64)) {
	if s.volume.Hydrated {
		fn(s.volume.Value)
		return
	}
	s.onHydrated = append(s.onHydrated, fn)
}

// Hydrate reads the persisted value. It takes effect once per store; later calls are no-ops.
// A missing value or an unavailable storage keeps the default, and both count as hydrated.
func (s *Store) Hydrate() Volume {
	if s.volume.Hydrated {
		return s.volume
	}

	value, found, err := s.kv.Get(Key)
	switch {
	case err != nil:
		log.Warnf("volume storage unavailable, using default %.2f: %v", s.volume.Value, err)
	case found:
		s.volume.Value = util.Clamp(value, 0, 1)
	}
	s.volume.Hydrated = true

	callbacks := s.onHydrated
	s.onHydrated = nil
	for _, fn := range callbacks {
		fn(s.volume.Value)
	}

	return s.volume
}

// Set updates the value and writes it through. Write failures are logged and otherwise ignored.
func (s *Store) Set(value float64) {
	s.volume.Value = util.Clamp(value, 0, 1)
	if err := s.kv.Set(Key, s.volume.Value); err != nil {
		log.Warnf("persist volume: %v", err)
	}
}
