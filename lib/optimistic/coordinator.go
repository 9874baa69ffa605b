// Package optimistic keeps the client-facing view state: mutations are
// applied to the local copy immediately, the API call runs afterwards, and a
// failed call restores the exact pre-change snapshot.
package optimistic

import (
	"context"
	"sync"

	"talentflow-backend/apperrors"
	candidatehandler "talentflow-backend/lib/candidate"
	jobhandler "talentflow-backend/lib/job"
	"talentflow-backend/models"
	candidateapimodels "talentflow-backend/models/api/candidate"
	jobapimodels "talentflow-backend/models/api/job"
	dbmodels "talentflow-backend/models/db"
)

const jobsKey = "jobs"

// mutation tracks one in-flight optimistic change. When a second mutation
// targets the same key before the first settles, the newer one supersedes it:
// the snapshot of the oldest unconfirmed change is retained, so a rollback
// lands on the state before the whole chain started.
type mutation struct {
	generation   uint64
	jobSnapshot  []dbmodels.Job
	candSnapshot *dbmodels.Candidate
}

type Coordinator struct {
	mu         sync.Mutex
	jobs       jobhandler.Provider
	candidates candidatehandler.Provider

	viewJobs       []dbmodels.Job
	viewCandidates map[string]dbmodels.Candidate
	inflight       map[string]*mutation
}

func New(jobs jobhandler.Provider, candidates candidatehandler.Provider) *Coordinator {
	return &Coordinator{
		jobs:           jobs,
		candidates:     candidates,
		viewCandidates: map[string]dbmodels.Candidate{},
		inflight:       map[string]*mutation{},
	}
}

// LoadJobs batch-fetches every page into the view. If the collection total
// shifts mid-loop (a write landed between pages) the loop restarts so the
// view never mixes two generations of the collection.
func (c *Coordinator) LoadJobs(ctx context.Context, filter jobapimodels.JobFilter) error {
	for {
		var all []dbmodels.Job
		filter.Page = 1
		if filter.PageSize == 0 {
			filter.PageSize = 100
		}
		restart := false
		total := -1
		for {
			page, pagination, err := c.jobs.List(ctx, filter)
			if err != nil {
				return err
			}
			if total >= 0 && pagination.Total != total {
				restart = true
				break
			}
			total = pagination.Total
			all = append(all, page...)
			if filter.Page >= pagination.TotalPages || pagination.TotalPages == 0 {
				break
			}
			filter.Page++
		}
		if restart {
			continue
		}
		c.mu.Lock()
		c.viewJobs = all
		c.mu.Unlock()
		return nil
	}
}

func (c *Coordinator) LoadCandidates(ctx context.Context, filter candidateapimodels.CandidateFilter) error {
	list, _, err := c.candidates.List(ctx, filter)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range list {
		c.viewCandidates[rec.ID] = rec
	}
	return nil
}

// Jobs returns a copy of the current job view in display order.
func (c *Coordinator) Jobs() []dbmodels.Job {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneJobs(c.viewJobs)
}

func (c *Coordinator) Candidate(id string) (dbmodels.Candidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.viewCandidates[id]
	return rec, ok
}

// MoveJob moves the job to a new position in the view, re-sequencing every
// order value, and confirms the move through the API. On a rejected write
// the entire view (all affected orders, not just the moved job) reverts.
func (c *Coordinator) MoveJob(ctx context.Context, jobID string, toIndex int) error {
	c.mu.Lock()
	from := -1
	for idx := range c.viewJobs {
		if c.viewJobs[idx].ID == jobID {
			from = idx
			break
		}
	}
	if from < 0 {
		c.mu.Unlock()
		return apperrors.NewNotFound("job %s is not in the current view", jobID)
	}
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex >= len(c.viewJobs) {
		toIndex = len(c.viewJobs) - 1
	}
	m := c.begin(jobsKey, cloneJobs(c.viewJobs), nil)
	gen := m.generation

	c.viewJobs = arrayMove(c.viewJobs, from, toIndex)
	items := make([]jobapimodels.ReorderItem, 0, len(c.viewJobs))
	for idx := range c.viewJobs {
		c.viewJobs[idx].Order = idx
		items = append(items, jobapimodels.ReorderItem{ID: c.viewJobs[idx].ID, Order: idx})
	}
	c.mu.Unlock()

	err := c.jobs.Reorder(ctx, items)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.settle(jobsKey, gen) {
		// superseded by a newer move; its settle decides the outcome
		return err
	}
	if err != nil {
		if ctx.Err() == nil && shouldRollback(err) {
			c.viewJobs = m.jobSnapshot
		}
		return err
	}
	return nil
}

// SetStage changes a candidate's stage optimistically. On success the view
// adopts the authoritative record (server-assigned updatedAt); on a rejected
// write the pre-change record is restored.
func (c *Coordinator) SetStage(ctx context.Context, candidateID string, stage models.CandidateStage) error {
	c.mu.Lock()
	rec, ok := c.viewCandidates[candidateID]
	if !ok {
		c.mu.Unlock()
		return apperrors.NewNotFound("candidate %s is not in the current view", candidateID)
	}
	snapshot := rec
	m := c.begin("candidate/"+candidateID, nil, &snapshot)
	gen := m.generation
	rec.Stage = stage
	c.viewCandidates[candidateID] = rec
	c.mu.Unlock()

	updated, err := c.candidates.Update(ctx, candidateID, candidateapimodels.CandidatePatch{Stage: &stage})

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.settle("candidate/"+candidateID, gen) {
		return err
	}
	if err != nil {
		if ctx.Err() == nil && shouldRollback(err) {
			c.viewCandidates[candidateID] = *m.candSnapshot
		}
		return err
	}
	if ctx.Err() == nil {
		c.viewCandidates[candidateID] = updated
	}
	return nil
}

// begin registers an in-flight mutation for the key. An existing entry is
// superseded: its snapshot survives, its generation is bumped so the older
// caller's settle becomes a no-op. Callers hold c.mu.
func (c *Coordinator) begin(key string, jobSnapshot []dbmodels.Job, candSnapshot *dbmodels.Candidate) *mutation {
	if existing, ok := c.inflight[key]; ok {
		existing.generation++
		return existing
	}
	m := &mutation{jobSnapshot: jobSnapshot, candSnapshot: candSnapshot}
	c.inflight[key] = m
	return m
}

// settle reports whether this caller still owns the mutation; when it does,
// the entry is cleared. Callers hold c.mu.
func (c *Coordinator) settle(key string, generation uint64) bool {
	m, ok := c.inflight[key]
	if !ok || m.generation != generation {
		return false
	}
	delete(c.inflight, key)
	return true
}

// shouldRollback limits rollback to the failures the API surface reports as
// rejected requests; infrastructure-level errors are handled below this
// layer and must not silently rewrite the view.
func shouldRollback(err error) bool {
	return apperrors.IsSimulatedNetwork(err) || apperrors.IsValidation(err)
}

func cloneJobs(list []dbmodels.Job) []dbmodels.Job {
	out := make([]dbmodels.Job, len(list))
	copy(out, list)
	return out
}

// arrayMove removes the element at from and reinserts it at to.
func arrayMove(list []dbmodels.Job, from, to int) []dbmodels.Job {
	out := make([]dbmodels.Job, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)
	out = append(out[:to], append([]dbmodels.Job{list[from]}, out[to:]...)...)
	return out
}
