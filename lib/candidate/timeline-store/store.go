package timelinestore

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"

	"talentflow-backend/db"
	dbmodels "talentflow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.TimelineEntry) (id string, err error)
	CreateMany(recs []dbmodels.TimelineEntry) error
	ListByCandidate(candidateID string) (list []dbmodels.TimelineEntry, err error)
}

func NewInstance(store db.Provider) Provider {
	return &impl{
		store: store,
	}
}

type impl struct {
	store db.Provider
}

func (i impl) Create(rec dbmodels.TimelineEntry) (string, error) {
	if err := i.store.Put(db.CollectionTimeline, rec.ID, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) CreateMany(recs []dbmodels.TimelineEntry) error {
	docs := make([]db.Doc, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, db.Doc{ID: rec.ID, Value: rec})
	}
	return i.store.PutMany(db.CollectionTimeline, docs)
}

// ListByCandidate returns the candidate's entries ascending by timestamp.
func (i impl) ListByCandidate(candidateID string) ([]dbmodels.TimelineEntry, error) {
	docs, err := i.store.GetAll(db.CollectionTimeline)
	if err != nil {
		return nil, err
	}
	list := []dbmodels.TimelineEntry{}
	for _, doc := range docs {
		rec := dbmodels.TimelineEntry{}
		if err := json.Unmarshal(doc.Data, &rec); err != nil {
			return nil, errors.Wrap(err, "failed to decode timeline entry")
		}
		if rec.CandidateID == candidateID {
			list = append(list, rec)
		}
	}
	sort.SliceStable(list, func(a, b int) bool { return list[a].Timestamp.Before(list[b].Timestamp) })
	return list, nil
}
