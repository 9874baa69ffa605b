package db

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestBadgerStore(t *testing.T) {
	newStore := func(t *testing.T) Provider {
		store, err := openBadgerStore("", true)
		require.Nil(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	}

	t.Run(`put and get roundtrip`, func(t *testing.T) {
		store := newStore(t)
		err := store.Put(CollectionJobs, "j1", testDoc{Name: "backend", Count: 2})
		require.Nil(t, err)

		data, err := store.Get(CollectionJobs, "j1")
		require.Nil(t, err)
		var doc testDoc
		require.Nil(t, json.Unmarshal(data, &doc))
		require.Equal(t, "backend", doc.Name)
		require.Equal(t, 2, doc.Count)
	})

	t.Run(`get absent id returns nil without error`, func(t *testing.T) {
		store := newStore(t)
		data, err := store.Get(CollectionJobs, "missing")
		require.Nil(t, err)
		require.Nil(t, data)
	})

	t.Run(`collections are independent keyspaces`, func(t *testing.T) {
		store := newStore(t)
		require.Nil(t, store.Put(CollectionJobs, "same-id", testDoc{Name: "job"}))
		require.Nil(t, store.Put(CollectionCandidates, "same-id", testDoc{Name: "candidate"}))

		require.Nil(t, store.Clear(CollectionJobs))

		data, err := store.Get(CollectionJobs, "same-id")
		require.Nil(t, err)
		require.Nil(t, data)

		data, err = store.Get(CollectionCandidates, "same-id")
		require.Nil(t, err)
		require.NotNil(t, data)
	})

	t.Run(`put many and get all`, func(t *testing.T) {
		store := newStore(t)
		err := store.PutMany(CollectionCandidates, []Doc{
			{ID: "c1", Value: testDoc{Name: "one"}},
			{ID: "c2", Value: testDoc{Name: "two"}},
			{ID: "c3", Value: testDoc{Name: "three"}},
		})
		require.Nil(t, err)

		docs, err := store.GetAll(CollectionCandidates)
		require.Nil(t, err)
		require.Len(t, docs, 3)
	})

	t.Run(`delete removes a single document`, func(t *testing.T) {
		store := newStore(t)
		require.Nil(t, store.Put(CollectionJobs, "j1", testDoc{Name: "a"}))
		require.Nil(t, store.Put(CollectionJobs, "j2", testDoc{Name: "b"}))
		require.Nil(t, store.Delete(CollectionJobs, "j1"))

		docs, err := store.GetAll(CollectionJobs)
		require.Nil(t, err)
		require.Len(t, docs, 1)
		require.Equal(t, "j2", docs[0].ID)
	})

	t.Run(`initialized flag`, func(t *testing.T) {
		store := newStore(t)
		ok, err := store.IsInitialized()
		require.Nil(t, err)
		require.Equal(t, false, ok)

		require.Nil(t, store.MarkInitialized())

		ok, err = store.IsInitialized()
		require.Nil(t, err)
		require.Equal(t, true, ok)
	})
}

func TestSnapshotStore(t *testing.T) {
	t.Run(`state survives reopen`, func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "snapshot.json")
		store, err := openSnapshotStore(file)
		require.Nil(t, err)
		require.Nil(t, store.Put(CollectionJobs, "j1", testDoc{Name: "persisted"}))
		require.Nil(t, store.MarkInitialized())

		reopened, err := openSnapshotStore(file)
		require.Nil(t, err)
		data, err := reopened.Get(CollectionJobs, "j1")
		require.Nil(t, err)
		var doc testDoc
		require.Nil(t, json.Unmarshal(data, &doc))
		require.Equal(t, "persisted", doc.Name)

		ok, err := reopened.IsInitialized()
		require.Nil(t, err)
		require.Equal(t, true, ok)
	})

	t.Run(`empty file path keeps store memory-only`, func(t *testing.T) {
		store, err := openSnapshotStore("")
		require.Nil(t, err)
		require.Nil(t, store.Put(CollectionJobs, "j1", testDoc{Name: "volatile"}))
		data, err := store.Get(CollectionJobs, "j1")
		require.Nil(t, err)
		require.NotNil(t, data)
	})
}

// flakyStore delegates to the embedded engine until failWrites is set, after
// which every write errors.
type flakyStore struct {
	Provider
	failWrites bool
}

func (f *flakyStore) Put(collection, id string, doc interface{}) error {
	if f.failWrites {
		return errors.New("engine failure")
	}
	return f.Provider.Put(collection, id, doc)
}

func TestFailover(t *testing.T) {
	t.Run(`write failure migrates state and retries on the fallback`, func(t *testing.T) {
		engine, err := openBadgerStore("", true)
		require.Nil(t, err)
		flaky := &flakyStore{Provider: engine}
		require.Nil(t, flaky.Put(CollectionJobs, "j1", testDoc{Name: "before-failure"}))
		require.Nil(t, flaky.MarkInitialized())

		store := &failoverStore{
			engine:       flaky,
			snapshotFile: filepath.Join(t.TempDir(), "snapshot.json"),
		}
		flaky.failWrites = true

		// the failing write itself lands on the fallback
		require.Nil(t, store.Put(CollectionJobs, "j2", testDoc{Name: "after-failure"}))

		// pre-failure state was migrated
		data, err := store.Get(CollectionJobs, "j1")
		require.Nil(t, err)
		var doc testDoc
		require.Nil(t, json.Unmarshal(data, &doc))
		require.Equal(t, "before-failure", doc.Name)

		ok, err := store.IsInitialized()
		require.Nil(t, err)
		require.Equal(t, true, ok)

		docs, err := store.GetAll(CollectionJobs)
		require.Nil(t, err)
		require.Len(t, docs, 2)
	})
}
