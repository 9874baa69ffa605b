package candidatehandler

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"talentflow-backend/apperrors"
	"talentflow-backend/db"
	candidatestore "talentflow-backend/lib/candidate/store"
	timelinestore "talentflow-backend/lib/candidate/timeline-store"
	xlsexport "talentflow-backend/lib/export/xls"
	jobstore "talentflow-backend/lib/job/store"
	"talentflow-backend/lib/query"
	"talentflow-backend/lib/simnet"
	"talentflow-backend/models"
	candidateapimodels "talentflow-backend/models/api/candidate"
	dbmodels "talentflow-backend/models/db"
)

type Provider interface {
	List(ctx context.Context, filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, pagination query.Pagination, err error)
	GetByID(ctx context.Context, id string) (rec dbmodels.Candidate, err error)
	Create(ctx context.Context, data candidateapimodels.CandidateData) (rec dbmodels.Candidate, err error)
	Update(ctx context.Context, id string, patch candidateapimodels.CandidatePatch) (rec dbmodels.Candidate, err error)
	GetTimeline(ctx context.Context, id string) (list []dbmodels.TimelineEntry, err error)
	ExportToXls(ctx context.Context, filter candidateapimodels.CandidateFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         candidatestore.NewInstance(db.Store),
		timelineStore: timelinestore.NewInstance(db.Store),
		jobStore:      jobstore.NewInstance(db.Store),
	}
}

type impl struct {
	store         candidatestore.Provider
	timelineStore timelinestore.Provider
	jobStore      jobstore.Provider
}

const defaultPageSize = 50

func (i impl) List(ctx context.Context, filter candidateapimodels.CandidateFilter) ([]dbmodels.Candidate, query.Pagination, error) {
	var list []dbmodels.Candidate
	var pagination query.Pagination
	err := simnet.Do(ctx, simnet.Read, func() error {
		all, err := i.store.List()
		if err != nil {
			return err
		}
		filtered := FilterCandidates(all, filter)
		page, pageSize := filter.GetPage(defaultPageSize)
		list, pagination = query.Paginate(filtered, page, pageSize)
		return nil
	})
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return list, pagination, nil
}

// FilterCandidates applies the filter and the default most-recently-updated
// ordering without paginating, so batch loaders and the XLS export see the
// same subset the paged list serves.
func FilterCandidates(all []dbmodels.Candidate, filter candidateapimodels.CandidateFilter) []dbmodels.Candidate {
	preds := []func(dbmodels.Candidate) bool{}
	if filter.Search != "" {
		preds = append(preds, func(c dbmodels.Candidate) bool {
			return query.ContainsFold(filter.Search, c.Name, c.Email)
		})
	}
	if filter.Stage != "" {
		preds = append(preds, func(c dbmodels.Candidate) bool { return c.Stage == filter.Stage })
	}
	if filter.JobID != "" {
		preds = append(preds, func(c dbmodels.Candidate) bool { return c.JobID == filter.JobID })
	}
	filtered := query.Filter(all, preds...)
	query.SortStable(filtered, func(a, b dbmodels.Candidate) bool { return a.UpdatedAt.After(b.UpdatedAt) })
	return filtered
}

func (i impl) GetByID(ctx context.Context, id string) (dbmodels.Candidate, error) {
	var rec dbmodels.Candidate
	err := simnet.Do(ctx, simnet.Read, func() error {
		found, err := i.store.GetByID(id)
		if err != nil {
			return err
		}
		if found == nil {
			return apperrors.NewNotFound("candidate %s not found", id)
		}
		rec = *found
		return nil
	})
	return rec, err
}

func (i impl) Create(ctx context.Context, data candidateapimodels.CandidateData) (dbmodels.Candidate, error) {
	var rec dbmodels.Candidate
	err := simnet.Do(ctx, simnet.Write, func() error {
		stage := data.Stage
		if stage == "" {
			stage = models.CandidateStageApplied
		}
		now := time.Now()
		rec = dbmodels.Candidate{
			ID:        uuid.NewString(),
			Name:      data.Name,
			Email:     data.Email,
			Stage:     stage,
			JobID:     data.JobID,
			AppliedAt: now,
			UpdatedAt: now,
		}
		if err := i.store.Save(rec); err != nil {
			return err
		}
		_, err := i.timelineStore.Create(dbmodels.TimelineEntry{
			ID:          uuid.NewString(),
			CandidateID: rec.ID,
			Stage:       rec.Stage,
			Timestamp:   now,
			Notes:       "application received",
		})
		return err
	})
	if err != nil {
		return dbmodels.Candidate{}, err
	}
	log.WithField("candidate_id", rec.ID).WithField("job_id", rec.JobID).Info("candidate created")
	return rec, nil
}

// Update merges the patch; a stage change additionally appends exactly one
// timeline entry carrying the new stage.
func (i impl) Update(ctx context.Context, id string, patch candidateapimodels.CandidatePatch) (dbmodels.Candidate, error) {
	var rec dbmodels.Candidate
	err := simnet.Do(ctx, simnet.Write, func() error {
		found, err := i.store.GetByID(id)
		if err != nil {
			return err
		}
		if found == nil {
			return apperrors.NewNotFound("candidate %s not found", id)
		}
		rec = *found
		if patch.Name != nil {
			rec.Name = *patch.Name
		}
		if patch.Email != nil {
			rec.Email = *patch.Email
		}
		if patch.JobID != nil {
			rec.JobID = *patch.JobID
		}
		now := time.Now()
		stageChanged := patch.Stage != nil && *patch.Stage != rec.Stage
		if stageChanged {
			rec.Stage = *patch.Stage
		}
		if patch.Note != nil {
			author := patch.Note.Author
			if author == "" {
				author = "HR Team"
			}
			rec.Notes = append(rec.Notes, dbmodels.CandidateNote{
				ID:        uuid.NewString(),
				Content:   patch.Note.Content,
				CreatedAt: now,
				Author:    author,
			})
		}
		rec.UpdatedAt = now
		if err := i.store.Save(rec); err != nil {
			return err
		}
		if stageChanged {
			_, err := i.timelineStore.Create(dbmodels.TimelineEntry{
				ID:          uuid.NewString(),
				CandidateID: rec.ID,
				Stage:       rec.Stage,
				Timestamp:   now,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return dbmodels.Candidate{}, err
	}
	return rec, nil
}

// ExportToXls exports every candidate matching the filter, ignoring
// pagination: the spreadsheet carries the full filtered set.
func (i impl) ExportToXls(ctx context.Context, filter candidateapimodels.CandidateFilter) (*bytes.Buffer, error) {
	var list []dbmodels.Candidate
	jobTitles := map[string]string{}
	err := simnet.Do(ctx, simnet.Read, func() error {
		all, err := i.store.List()
		if err != nil {
			return err
		}
		list = FilterCandidates(all, filter)
		jobs, err := i.jobStore.List()
		if err != nil {
			return err
		}
		for _, job := range jobs {
			jobTitles[job.ID] = job.Title
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportCandidateList(list, jobTitles)
}

func (i impl) GetTimeline(ctx context.Context, id string) ([]dbmodels.TimelineEntry, error) {
	var list []dbmodels.TimelineEntry
	err := simnet.Do(ctx, simnet.Read, func() error {
		found, err := i.store.GetByID(id)
		if err != nil {
			return err
		}
		if found == nil {
			return apperrors.NewNotFound("candidate %s not found", id)
		}
		list, err = i.timelineStore.ListByCandidate(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
