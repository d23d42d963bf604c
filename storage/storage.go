// Package storage provides durable and in-memory key-value areas for small scalar settings.
package storage

import (
	"sync"

	"github.com/melodeck/melodeck/filesystem"
	"github.com/melodeck/melodeck/where"
	"github.com/metafates/gache"
)

// Gache is a JSON-file backed key-value area stored under where.Storage().
type Gache struct {
	cacher *gache.Cache[map[string]float64]
}

// NewGache opens the key-value area at path. An empty path selects where.Storage().
func NewGache(path string) *Gache {
	if path == "" {
		path = where.Storage()
	}

	return &Gache{
		cacher: gache.New[map[string]float64](
			&gache.Options{
				Path:       path,
				FileSystem: &filesystem.GacheFs{},
			},
		),
	}
}

// Get returns the value stored under key and whether it exists.
func (g *Gache) Get(key string) (float64, bool, error) {
	values, err := g.load()
	if err != nil {
		return 0, false, err
	}

	value, ok := values[key]
	return value, ok, nil
}

// Set stores value under key, keeping every other entry.
func (g *Gache) Set(key string, value float64) error {
	values, err := g.load()
	if err != nil {
		return err
	}

	values[key] = value
	return g.cacher.Set(values)
}

func (g *Gache) load() (map[string]float64, error) {
	cached, expired, err := g.cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]float64), nil
	}
	return cached, nil
}

// Memory is a process-local key-value area; values are lost on exit.
type Memory struct {
	mu     sync.Mutex
	values map[string]float64
}

// NewMemory creates an empty in-memory area.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]float64)}
}

func (m *Memory) Get(key string) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *Memory) Set(key string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
