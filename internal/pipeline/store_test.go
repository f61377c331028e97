package pipeline

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/dgallion1/dirgest/internal/pathstore"
)

var errStoreDown = errors.New("store down")

// memStore is an in-memory Store. Keys matching failPrefix reject writes.
type memStore struct {
	mu         sync.Mutex
	nodes      map[string]any
	links      []pathstore.LinkRequest
	failPrefix string
	listErr    error
}

func newMemStore() *memStore {
	return &memStore{nodes: make(map[string]any)}
}

func (m *memStore) PutNode(_ context.Context, key string, req pathstore.NodeRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPrefix != "" && strings.HasPrefix(key, m.failPrefix) {
		return errStoreDown
	}
	m.nodes[key] = req.Value
	return nil
}

func (m *memStore) GetNode(_ context.Context, key string) (*pathstore.NodeResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.nodes[key]
	if !ok {
		return nil, nil
	}
	return &pathstore.NodeResponse{Key: key, Value: v}, nil
}

func (m *memStore) DeleteNode(_ context.Context, key string, recursive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.nodes {
		if k == key || (recursive && strings.HasPrefix(k, key+"/")) {
			delete(m.nodes, k)
		}
	}
	return nil
}

func (m *memStore) ListChildren(_ context.Context, key string, limit int) ([]pathstore.ListChildrenResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var keys []string
	for k := range m.nodes {
		if strings.HasPrefix(k, key+"/") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	out := make([]pathstore.ListChildrenResponse, 0, len(keys))
	for _, k := range keys {
		out = append(out, pathstore.ListChildrenResponse{Key: k, Value: m.nodes[k]})
	}
	return out, nil
}

func (m *memStore) PutLink(_ context.Context, req pathstore.LinkRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = append(m.links, req)
	return nil
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.nodes[key]
	return ok
}

func (m *memStore) count(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.nodes {
		if strings.HasPrefix(k, prefix) {
			n++
		}
	}
	return n
}
