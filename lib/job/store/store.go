package jobstore

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"

	"talentflow-backend/db"
	dbmodels "talentflow-backend/models/db"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.Job, err error)
	GetBySlug(slug string) (rec *dbmodels.Job, err error)
	List() (list []dbmodels.Job, err error)
	Count() (count int, err error)
	Save(rec dbmodels.Job) error
	SaveMany(recs []dbmodels.Job) error
}

func NewInstance(store db.Provider) Provider {
	return &impl{
		store: store,
	}
}

type impl struct {
	store db.Provider
}

func (i impl) GetByID(id string) (*dbmodels.Job, error) {
	data, err := i.store.Get(db.CollectionJobs, id)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	rec := dbmodels.Job{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(err, "failed to decode job record")
	}
	return &rec, nil
}

func (i impl) GetBySlug(slug string) (*dbmodels.Job, error) {
	list, err := i.List()
	if err != nil {
		return nil, err
	}
	for idx := range list {
		if list[idx].Slug == slug {
			return &list[idx], nil
		}
	}
	return nil, nil
}

// List returns the whole collection sorted ascending by order.
func (i impl) List() ([]dbmodels.Job, error) {
	docs, err := i.store.GetAll(db.CollectionJobs)
	if err != nil {
		return nil, err
	}
	list := make([]dbmodels.Job, 0, len(docs))
	for _, doc := range docs {
		rec := dbmodels.Job{}
		if err := json.Unmarshal(doc.Data, &rec); err != nil {
			return nil, errors.Wrap(err, "failed to decode job record")
		}
		list = append(list, rec)
	}
	sort.SliceStable(list, func(a, b int) bool { return list[a].Order < list[b].Order })
	return list, nil
}

func (i impl) Count() (int, error) {
	docs, err := i.store.GetAll(db.CollectionJobs)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (i impl) Save(rec dbmodels.Job) error {
	return i.store.Put(db.CollectionJobs, rec.ID, rec)
}

func (i impl) SaveMany(recs []dbmodels.Job) error {
	docs := make([]db.Doc, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, db.Doc{ID: rec.ID, Value: rec})
	}
	return i.store.PutMany(db.CollectionJobs, docs)
}
