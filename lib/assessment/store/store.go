package assessmentstore

import (
	"encoding/json"

	"github.com/pkg/errors"

	"talentflow-backend/db"
	dbmodels "talentflow-backend/models/db"
)

type Provider interface {
	GetByJobID(jobID string) (rec *dbmodels.Assessment, err error)
	List() (list []dbmodels.Assessment, err error)
	Save(rec dbmodels.Assessment) error
	SaveMany(recs []dbmodels.Assessment) error
}

func NewInstance(store db.Provider) Provider {
	return &impl{
		store: store,
	}
}

type impl struct {
	store db.Provider
}

// GetByJobID relies on the singleton invariant: at most one assessment
// exists per job, so the first match is the only match.
func (i impl) GetByJobID(jobID string) (*dbmodels.Assessment, error) {
	list, err := i.List()
	if err != nil {
		return nil, err
	}
	for idx := range list {
		if list[idx].JobID == jobID {
			return &list[idx], nil
		}
	}
	return nil, nil
}

func (i impl) List() ([]dbmodels.Assessment, error) {
	docs, err := i.store.GetAll(db.CollectionAssessments)
	if err != nil {
		return nil, err
	}
	list := make([]dbmodels.Assessment, 0, len(docs))
	for _, doc := range docs {
		rec := dbmodels.Assessment{}
		if err := json.Unmarshal(doc.Data, &rec); err != nil {
			return nil, errors.Wrap(err, "failed to decode assessment record")
		}
		list = append(list, rec)
	}
	return list, nil
}

func (i impl) Save(rec dbmodels.Assessment) error {
	return i.store.Put(db.CollectionAssessments, rec.ID, rec)
}

func (i impl) SaveMany(recs []dbmodels.Assessment) error {
	docs := make([]db.Doc, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, db.Doc{ID: rec.ID, Value: rec})
	}
	return i.store.PutMany(db.CollectionAssessments, docs)
}
