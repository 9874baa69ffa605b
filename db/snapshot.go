package db

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// snapshotStore is the flat fallback used when the document engine is
// unavailable: all collections live in memory and every write rewrites the
// whole state as a single JSON blob. Slow, but nothing is lost.
type snapshotStore struct {
	mu          sync.Mutex
	file        string
	collections map[string]map[string]json.RawMessage
	initialized bool
}

type snapshotBlob struct {
	Collections map[string]map[string]json.RawMessage `json:"collections"`
	Initialized bool                                  `json:"initialized"`
}

// openSnapshotStore loads an existing snapshot file when present.
// An empty file path keeps the store memory-only.
func openSnapshotStore(file string) (Provider, error) {
	s := &snapshotStore{
		file:        file,
		collections: map[string]map[string]json.RawMessage{},
	}
	if file == "" {
		return s, nil
	}
	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read snapshot file")
	}
	var blob snapshotBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, errors.Wrap(err, "snapshot file is corrupt")
	}
	if blob.Collections != nil {
		s.collections = blob.Collections
	}
	s.initialized = blob.Initialized
	return s, nil
}

// persist writes the full snapshot. Callers hold s.mu.
func (s *snapshotStore) persist() error {
	if s.file == "" {
		return nil
	}
	blob := snapshotBlob{Collections: s.collections, Initialized: s.initialized}
	data, err := json.Marshal(blob)
	if err != nil {
		return errors.Wrap(err, "failed to serialize snapshot")
	}
	if err := os.MkdirAll(filepath.Dir(s.file), 0o755); err != nil {
		return errors.Wrap(err, "failed to create snapshot directory")
	}
	tmp := s.file + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write snapshot file")
	}
	return errors.Wrap(os.Rename(tmp, s.file), "failed to replace snapshot file")
}

func (s *snapshotStore) collection(name string) map[string]json.RawMessage {
	c, ok := s.collections[name]
	if !ok {
		c = map[string]json.RawMessage{}
		s.collections[name] = c
	}
	return c
}

func (s *snapshotStore) GetAll(collection string) ([]RawDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	docs := make([]RawDoc, 0, len(c))
	for id, data := range c {
		docs = append(docs, RawDoc{ID: id, Data: data})
	}
	return docs, nil
}

func (s *snapshotStore) Get(collection, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.collection(collection)[id]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (s *snapshotStore) Put(collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to serialize document")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(collection)[id] = data
	return s.persist()
}

func (s *snapshotStore) PutMany(collection string, docs []Doc) error {
	serialized := make(map[string]json.RawMessage, len(docs))
	for _, doc := range docs {
		data, err := json.Marshal(doc.Value)
		if err != nil {
			return errors.Wrap(err, "failed to serialize document")
		}
		serialized[doc.ID] = data
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	for id, data := range serialized {
		c[id] = data
	}
	return s.persist()
}

func (s *snapshotStore) Delete(collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collection(collection), id)
	return s.persist()
}

func (s *snapshotStore) Clear(collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = map[string]json.RawMessage{}
	return s.persist()
}

func (s *snapshotStore) IsInitialized() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized, nil
}

func (s *snapshotStore) MarkInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
	return s.persist()
}

func (s *snapshotStore) Close() error {
	return nil
}
