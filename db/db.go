package db

import (
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"

	"talentflow-backend/apperrors"
)

// Collection names. Collections are independent keyspaces; a Put/PutMany is
// atomic with respect to its collection.
const (
	CollectionJobs        = "jobs"
	CollectionCandidates  = "candidates"
	CollectionTimeline    = "timeline"
	CollectionAssessments = "assessments"
	CollectionResponses   = "assessment_responses"
)

// Doc pairs a document id with its serializable value for bulk writes.
type Doc struct {
	ID    string
	Value interface{}
}

// RawDoc is a stored document as returned by reads.
type RawDoc struct {
	ID   string
	Data []byte
}

// Provider is the durable document store underneath every entity store.
// Get returns (nil, nil) for an absent id. The initialized flag gates seeding
// and is persisted separately from entity data.
type Provider interface {
	GetAll(collection string) ([]RawDoc, error)
	Get(collection, id string) ([]byte, error)
	Put(collection, id string, doc interface{}) error
	PutMany(collection string, docs []Doc) error
	Delete(collection, id string) error
	Clear(collection string) error
	IsInitialized() (bool, error)
	MarkInitialized() error
	Close() error
}

var Store Provider

// NewInMemory opens a throwaway in-memory engine.
func NewInMemory() (Provider, error) {
	return openBadgerStore("", true)
}

// Connect opens the primary engine and installs the snapshot fallback.
// When the engine cannot be opened at all the snapshot store takes over
// immediately so no write is ever lost to an unavailable engine.
func Connect(dir string, inMemory bool, snapshotFile string) error {
	primary, err := openBadgerStore(dir, inMemory)
	if err != nil {
		log.WithError(err).Error("document store engine unavailable, switching to snapshot fallback")
		fallback, ferr := openSnapshotStore(snapshotFile)
		if ferr != nil {
			return apperrors.NewPersistenceUnavailable(ferr)
		}
		Store = fallback
		return nil
	}
	Store = &failoverStore{engine: primary, snapshotFile: snapshotFile}
	return nil
}

// failoverStore delegates to the engine and, on an engine failure, migrates
// whatever is still readable into the snapshot store and retries the
// operation there. After the first failover all traffic stays on the snapshot.
type failoverStore struct {
	mu           sync.Mutex
	engine       Provider
	snapshotFile string
	degraded     bool
}

func (s *failoverStore) failover(cause error) (Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.degraded {
		return s.engine, nil
	}
	log.WithError(cause).Error("document store engine failed, switching to snapshot fallback")
	fallback, err := openSnapshotStore(s.snapshotFile)
	if err != nil {
		return nil, apperrors.NewPersistenceUnavailable(err)
	}
	migrateReadable(s.engine, fallback)
	_ = s.engine.Close()
	s.engine = fallback
	s.degraded = true
	return s.engine, nil
}

func (s *failoverStore) current() Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine
}

// migrateReadable copies every collection that can still be read so the
// fallback starts from the last durable state instead of empty.
func migrateReadable(from, to Provider) {
	for _, collection := range []string{
		CollectionJobs, CollectionCandidates, CollectionTimeline,
		CollectionAssessments, CollectionResponses,
	} {
		raw, err := from.GetAll(collection)
		if err != nil {
			log.WithError(err).WithField("collection", collection).Warn("collection not readable during failover")
			continue
		}
		docs := make([]Doc, 0, len(raw))
		for _, d := range raw {
			docs = append(docs, Doc{ID: d.ID, Value: json.RawMessage(d.Data)})
		}
		if err := to.PutMany(collection, docs); err != nil {
			log.WithError(err).WithField("collection", collection).Warn("collection not writable during failover")
		}
	}
	if ok, err := from.IsInitialized(); err == nil && ok {
		_ = to.MarkInitialized()
	}
}

func (s *failoverStore) GetAll(collection string) ([]RawDoc, error) {
	res, err := s.current().GetAll(collection)
	if err == nil {
		return res, nil
	}
	engine, ferr := s.failover(err)
	if ferr != nil {
		return nil, ferr
	}
	return engine.GetAll(collection)
}

func (s *failoverStore) Get(collection, id string) ([]byte, error) {
	res, err := s.current().Get(collection, id)
	if err == nil {
		return res, nil
	}
	engine, ferr := s.failover(err)
	if ferr != nil {
		return nil, ferr
	}
	return engine.Get(collection, id)
}

func (s *failoverStore) Put(collection, id string, doc interface{}) error {
	err := s.current().Put(collection, id, doc)
	if err == nil {
		return nil
	}
	engine, ferr := s.failover(err)
	if ferr != nil {
		return ferr
	}
	return engine.Put(collection, id, doc)
}

func (s *failoverStore) PutMany(collection string, docs []Doc) error {
	err := s.current().PutMany(collection, docs)
	if err == nil {
		return nil
	}
	engine, ferr := s.failover(err)
	if ferr != nil {
		return ferr
	}
	return engine.PutMany(collection, docs)
}

func (s *failoverStore) Delete(collection, id string) error {
	err := s.current().Delete(collection, id)
	if err == nil {
		return nil
	}
	engine, ferr := s.failover(err)
	if ferr != nil {
		return ferr
	}
	return engine.Delete(collection, id)
}

func (s *failoverStore) Clear(collection string) error {
	err := s.current().Clear(collection)
	if err == nil {
		return nil
	}
	engine, ferr := s.failover(err)
	if ferr != nil {
		return ferr
	}
	return engine.Clear(collection)
}

func (s *failoverStore) IsInitialized() (bool, error) {
	ok, err := s.current().IsInitialized()
	if err == nil {
		return ok, nil
	}
	engine, ferr := s.failover(err)
	if ferr != nil {
		return false, ferr
	}
	return engine.IsInitialized()
}

func (s *failoverStore) MarkInitialized() error {
	err := s.current().MarkInitialized()
	if err == nil {
		return nil
	}
	engine, ferr := s.failover(err)
	if ferr != nil {
		return ferr
	}
	return engine.MarkInitialized()
}

func (s *failoverStore) Close() error {
	return s.current().Close()
}
