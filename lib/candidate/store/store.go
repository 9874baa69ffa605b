package candidatestore

import (
	"encoding/json"

	"github.com/pkg/errors"

	"talentflow-backend/db"
	dbmodels "talentflow-backend/models/db"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.Candidate, err error)
	List() (list []dbmodels.Candidate, err error)
	Count() (count int, err error)
	Save(rec dbmodels.Candidate) error
	SaveMany(recs []dbmodels.Candidate) error
}

func NewInstance(store db.Provider) Provider {
	return &impl{
		store: store,
	}
}

type impl struct {
	store db.Provider
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	data, err := i.store.Get(db.CollectionCandidates, id)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	rec := dbmodels.Candidate{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(err, "failed to decode candidate record")
	}
	return &rec, nil
}

func (i impl) List() ([]dbmodels.Candidate, error) {
	docs, err := i.store.GetAll(db.CollectionCandidates)
	if err != nil {
		return nil, err
	}
	list := make([]dbmodels.Candidate, 0, len(docs))
	for _, doc := range docs {
		rec := dbmodels.Candidate{}
		if err := json.Unmarshal(doc.Data, &rec); err != nil {
			return nil, errors.Wrap(err, "failed to decode candidate record")
		}
		list = append(list, rec)
	}
	return list, nil
}

func (i impl) Count() (int, error) {
	docs, err := i.store.GetAll(db.CollectionCandidates)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (i impl) Save(rec dbmodels.Candidate) error {
	return i.store.Put(db.CollectionCandidates, rec.ID, rec)
}

func (i impl) SaveMany(recs []dbmodels.Candidate) error {
	docs := make([]db.Doc, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, db.Doc{ID: rec.ID, Value: rec})
	}
	return i.store.PutMany(db.CollectionCandidates, docs)
}
