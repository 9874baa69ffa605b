package jobhandler

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"talentflow-backend/apperrors"
	"talentflow-backend/db"
	jobstore "talentflow-backend/lib/job/store"
	"talentflow-backend/lib/query"
	"talentflow-backend/lib/simnet"
	"talentflow-backend/lib/utils/helpers"
	"talentflow-backend/models"
	jobapimodels "talentflow-backend/models/api/job"
	dbmodels "talentflow-backend/models/db"
)

type Provider interface {
	List(ctx context.Context, filter jobapimodels.JobFilter) (list []dbmodels.Job, pagination query.Pagination, err error)
	GetByID(ctx context.Context, id string) (rec dbmodels.Job, err error)
	Create(ctx context.Context, data jobapimodels.JobData) (rec dbmodels.Job, err error)
	Update(ctx context.Context, id string, patch jobapimodels.JobPatch) (rec dbmodels.Job, err error)
	Reorder(ctx context.Context, items []jobapimodels.ReorderItem) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: jobstore.NewInstance(db.Store),
	}
}

type impl struct {
	store jobstore.Provider
}

const defaultPageSize = 10

func (i impl) List(ctx context.Context, filter jobapimodels.JobFilter) ([]dbmodels.Job, query.Pagination, error) {
	var list []dbmodels.Job
	var pagination query.Pagination
	err := simnet.Do(ctx, simnet.Read, func() error {
		all, err := i.store.List()
		if err != nil {
			return err
		}
		preds := []func(dbmodels.Job) bool{}
		if filter.Search != "" {
			preds = append(preds, func(j dbmodels.Job) bool {
				fields := append([]string{j.Title}, j.Tags...)
				return query.ContainsFold(filter.Search, fields...)
			})
		}
		if filter.Status != "" {
			preds = append(preds, func(j dbmodels.Job) bool { return j.Status == filter.Status })
		}
		filtered := query.Filter(all, preds...)
		sortJobs(filtered, filter.Sort)
		page, pageSize := filter.GetPage(defaultPageSize)
		list, pagination = query.Paginate(filtered, page, pageSize)
		return nil
	})
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return list, pagination, nil
}

// sortJobs applies a "field:direction" expression; the default is the dense
// display order.
func sortJobs(list []dbmodels.Job, expr string) {
	if expr == "" {
		expr = "order"
	}
	field, desc := query.ParseSort(expr)
	var less func(a, b dbmodels.Job) bool
	switch field {
	case "title":
		less = func(a, b dbmodels.Job) bool { return a.Title < b.Title }
	case "createdAt":
		less = func(a, b dbmodels.Job) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "updatedAt":
		less = func(a, b dbmodels.Job) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		less = func(a, b dbmodels.Job) bool { return a.Order < b.Order }
	}
	if desc {
		inner := less
		less = func(a, b dbmodels.Job) bool { return inner(b, a) }
	}
	query.SortStable(list, less)
}

func (i impl) GetByID(ctx context.Context, id string) (dbmodels.Job, error) {
	var rec dbmodels.Job
	err := simnet.Do(ctx, simnet.Read, func() error {
		found, err := i.store.GetByID(id)
		if err != nil {
			return err
		}
		if found == nil {
			return apperrors.NewNotFound("job %s not found", id)
		}
		rec = *found
		return nil
	})
	return rec, err
}

func (i impl) Create(ctx context.Context, data jobapimodels.JobData) (dbmodels.Job, error) {
	var rec dbmodels.Job
	err := simnet.Do(ctx, simnet.Write, func() error {
		list, err := i.store.List()
		if err != nil {
			return err
		}
		slug := data.Slug
		if slug == "" {
			slug = helpers.Slugify(data.Title)
		}
		slug = helpers.UniqueSlug(slug, slugTaken(list, ""))
		status := data.Status
		if status == "" {
			status = models.JobStatusActive
		}
		now := time.Now()
		rec = dbmodels.Job{
			BaseModel: dbmodels.BaseModel{
				ID:        uuid.NewString(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Title:        data.Title,
			Slug:         slug,
			Status:       status,
			Tags:         data.Tags,
			Order:        len(list),
			Description:  data.Description,
			Requirements: data.Requirements,
		}
		if rec.Tags == nil {
			rec.Tags = []string{}
		}
		return i.store.Save(rec)
	})
	if err != nil {
		return dbmodels.Job{}, err
	}
	log.WithField("job_id", rec.ID).WithField("slug", rec.Slug).Info("job created")
	return rec, nil
}

func (i impl) Update(ctx context.Context, id string, patch jobapimodels.JobPatch) (dbmodels.Job, error) {
	var rec dbmodels.Job
	err := simnet.Do(ctx, simnet.Write, func() error {
		found, err := i.store.GetByID(id)
		if err != nil {
			return err
		}
		if found == nil {
			return apperrors.NewNotFound("job %s not found", id)
		}
		rec = *found
		titleChanged := false
		if patch.Title != nil && *patch.Title != rec.Title {
			rec.Title = *patch.Title
			titleChanged = true
		}
		if patch.Status != nil {
			rec.Status = *patch.Status
		}
		if patch.Tags != nil {
			rec.Tags = *patch.Tags
		}
		if patch.Description != nil {
			rec.Description = *patch.Description
		}
		if patch.Requirements != nil {
			rec.Requirements = *patch.Requirements
		}
		if patch.Slug != nil || titleChanged {
			slug := rec.Slug
			if patch.Slug != nil && *patch.Slug != "" {
				slug = *patch.Slug
			} else if titleChanged {
				slug = helpers.Slugify(rec.Title)
			}
			list, err := i.store.List()
			if err != nil {
				return err
			}
			rec.Slug = helpers.UniqueSlug(slug, slugTaken(list, rec.ID))
		}
		rec.UpdatedAt = time.Now()
		return i.store.Save(rec)
	})
	if err != nil {
		return dbmodels.Job{}, err
	}
	return rec, nil
}

// Reorder bulk-assigns new order values and re-sequences the whole collection
// so orders stay dense and unique. Unknown ids are ignored; a job list with a
// dangling reference is a display problem, not a write failure.
func (i impl) Reorder(ctx context.Context, items []jobapimodels.ReorderItem) error {
	return simnet.Do(ctx, simnet.Write, func() error {
		list, err := i.store.List()
		if err != nil {
			return err
		}
		byID := make(map[string]int, len(list))
		for idx := range list {
			byID[list[idx].ID] = idx
		}
		for _, item := range items {
			idx, ok := byID[item.ID]
			if !ok {
				log.WithField("job_id", item.ID).Warn("reorder references unknown job")
				continue
			}
			list[idx].Order = item.Order
		}
		sort.SliceStable(list, func(a, b int) bool { return list[a].Order < list[b].Order })
		now := time.Now()
		for idx := range list {
			if list[idx].Order != idx {
				list[idx].UpdatedAt = now
			}
			list[idx].Order = idx
		}
		return i.store.SaveMany(list)
	})
}

func slugTaken(list []dbmodels.Job, excludeID string) func(string) bool {
	return func(slug string) bool {
		for _, j := range list {
			if j.ID != excludeID && j.Slug == slug {
				return true
			}
		}
		return false
	}
}
