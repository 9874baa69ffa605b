package db

import (
	"bytes"
	"encoding/json"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

const initializedKey = "meta/initialized"

// badgerStore keeps one document per key, under "<collection>/<id>".
// Every Put/PutMany/Clear runs in a single transaction, so readers never see
// a partially applied write.
type badgerStore struct {
	db *badger.DB
}

func openBadgerStore(dir string, inMemory bool) (Provider, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open document store")
	}
	return &badgerStore{db: bdb}, nil
}

func docKey(collection, id string) []byte {
	return []byte(collection + "/" + id)
}

func (s *badgerStore) GetAll(collection string) ([]RawDoc, error) {
	prefix := []byte(collection + "/")
	docs := []RawDoc{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			id := string(bytes.TrimPrefix(item.Key(), prefix))
			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			docs = append(docs, RawDoc{ID: id, Data: data})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read collection %s", collection)
	}
	return docs, nil
}

func (s *badgerStore) Get(collection, id string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(collection, id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s/%s", collection, id)
	}
	return data, nil
}

func (s *badgerStore) Put(collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to serialize document")
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(docKey(collection, id), data)
	})
	return errors.Wrapf(err, "failed to write %s/%s", collection, id)
}

func (s *badgerStore) PutMany(collection string, docs []Doc) error {
	if len(docs) == 0 {
		return nil
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, doc := range docs {
			data, err := json.Marshal(doc.Value)
			if err != nil {
				return errors.Wrap(err, "failed to serialize document")
			}
			if err := txn.Set(docKey(collection, doc.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrapf(err, "failed to bulk-write collection %s", collection)
}

func (s *badgerStore) Delete(collection, id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(docKey(collection, id))
	})
	return errors.Wrapf(err, "failed to delete %s/%s", collection, id)
}

func (s *badgerStore) Clear(collection string) error {
	err := s.db.DropPrefix([]byte(collection + "/"))
	return errors.Wrapf(err, "failed to clear collection %s", collection)
}

func (s *badgerStore) IsInitialized() (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(initializedKey))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to read initialized flag")
	}
	return true, nil
}

func (s *badgerStore) MarkInitialized() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(initializedKey), []byte("true"))
	})
	return errors.Wrap(err, "failed to mark store initialized")
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
