package responsestore

import (
	"encoding/json"

	"github.com/pkg/errors"

	"talentflow-backend/db"
	dbmodels "talentflow-backend/models/db"
)

// Provider stores responses under the composite (candidateId, assessmentId)
// key, so a resubmission overwrites the earlier record.
type Provider interface {
	Get(candidateID, assessmentID string) (rec *dbmodels.AssessmentResponse, err error)
	Save(rec dbmodels.AssessmentResponse) error
}

func NewInstance(store db.Provider) Provider {
	return &impl{
		store: store,
	}
}

type impl struct {
	store db.Provider
}

func (i impl) Get(candidateID, assessmentID string) (*dbmodels.AssessmentResponse, error) {
	data, err := i.store.Get(db.CollectionResponses, dbmodels.ResponseKey(candidateID, assessmentID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	rec := dbmodels.AssessmentResponse{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(err, "failed to decode assessment response")
	}
	return &rec, nil
}

func (i impl) Save(rec dbmodels.AssessmentResponse) error {
	return i.store.Put(db.CollectionResponses, dbmodels.ResponseKey(rec.CandidateID, rec.AssessmentID), rec)
}
