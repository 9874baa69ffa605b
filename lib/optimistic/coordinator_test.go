package optimistic

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"talentflow-backend/apperrors"
	"talentflow-backend/lib/query"
	"talentflow-backend/models"
	candidateapimodels "talentflow-backend/models/api/candidate"
	jobapimodels "talentflow-backend/models/api/job"
	dbmodels "talentflow-backend/models/db"
)

type fakeJobs struct {
	jobs       []dbmodels.Job
	reorderErr error
	reorders   [][]jobapimodels.ReorderItem
}

func (f *fakeJobs) List(ctx context.Context, filter jobapimodels.JobFilter) ([]dbmodels.Job, query.Pagination, error) {
	n := len(f.jobs)
	return f.jobs, query.Pagination{Page: 1, PageSize: n, Total: n, TotalPages: 1}, nil
}

func (f *fakeJobs) GetByID(ctx context.Context, id string) (dbmodels.Job, error) {
	return dbmodels.Job{}, apperrors.NewNotFound("job %s not found", id)
}

func (f *fakeJobs) Create(ctx context.Context, data jobapimodels.JobData) (dbmodels.Job, error) {
	return dbmodels.Job{}, nil
}

func (f *fakeJobs) Update(ctx context.Context, id string, patch jobapimodels.JobPatch) (dbmodels.Job, error) {
	return dbmodels.Job{}, nil
}

func (f *fakeJobs) Reorder(ctx context.Context, items []jobapimodels.ReorderItem) error {
	f.reorders = append(f.reorders, items)
	return f.reorderErr
}

type fakeCandidates struct {
	list      []dbmodels.Candidate
	updateErr error
	updated   dbmodels.Candidate
}

func (f *fakeCandidates) List(ctx context.Context, filter candidateapimodels.CandidateFilter) ([]dbmodels.Candidate, query.Pagination, error) {
	n := len(f.list)
	return f.list, query.Pagination{Page: 1, PageSize: n, Total: n, TotalPages: 1}, nil
}

func (f *fakeCandidates) GetByID(ctx context.Context, id string) (dbmodels.Candidate, error) {
	return dbmodels.Candidate{}, apperrors.NewNotFound("candidate %s not found", id)
}

func (f *fakeCandidates) Create(ctx context.Context, data candidateapimodels.CandidateData) (dbmodels.Candidate, error) {
	return dbmodels.Candidate{}, nil
}

func (f *fakeCandidates) Update(ctx context.Context, id string, patch candidateapimodels.CandidatePatch) (dbmodels.Candidate, error) {
	if f.updateErr != nil {
		return dbmodels.Candidate{}, f.updateErr
	}
	return f.updated, nil
}

func (f *fakeCandidates) GetTimeline(ctx context.Context, id string) ([]dbmodels.TimelineEntry, error) {
	return nil, nil
}

func (f *fakeCandidates) ExportToXls(ctx context.Context, filter candidateapimodels.CandidateFilter) (*bytes.Buffer, error) {
	return &bytes.Buffer{}, nil
}

func testJobs(ids ...string) []dbmodels.Job {
	jobs := make([]dbmodels.Job, 0, len(ids))
	for i, id := range ids {
		jobs = append(jobs, dbmodels.Job{BaseModel: dbmodels.BaseModel{ID: id}, Order: i})
	}
	return jobs
}

func viewIDs(jobs []dbmodels.Job) []string {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return ids
}

func TestMoveJob(t *testing.T) {
	ctx := context.Background()

	t.Run(`move updates the view and sends a dense ordering`, func(t *testing.T) {
		jobs := &fakeJobs{jobs: testJobs("a", "b", "c", "d")}
		c := New(jobs, &fakeCandidates{})
		require.Nil(t, c.LoadJobs(ctx, jobapimodels.JobFilter{}))

		require.Nil(t, c.MoveJob(ctx, "d", 1))

		require.Equal(t, []string{"a", "d", "b", "c"}, viewIDs(c.Jobs()))
		for i, j := range c.Jobs() {
			require.Equal(t, i, j.Order)
		}
		require.Len(t, jobs.reorders, 1)
		require.Len(t, jobs.reorders[0], 4)
		require.Equal(t, "d", jobs.reorders[0][1].ID)
		require.Equal(t, 1, jobs.reorders[0][1].Order)
	})

	t.Run(`rejected write restores the whole previous ordering`, func(t *testing.T) {
		jobs := &fakeJobs{
			jobs:       testJobs("a", "b", "c", "d"),
			reorderErr: apperrors.NewSimulatedNetwork(500, "simulated network failure"),
		}
		c := New(jobs, &fakeCandidates{})
		require.Nil(t, c.LoadJobs(ctx, jobapimodels.JobFilter{}))

		err := c.MoveJob(ctx, "a", 3)
		require.NotNil(t, err)
		require.Equal(t, true, apperrors.IsSimulatedNetwork(err))
		require.Equal(t, []string{"a", "b", "c", "d"}, viewIDs(c.Jobs()))
	})

	t.Run(`infrastructure errors do not rewrite the view`, func(t *testing.T) {
		jobs := &fakeJobs{
			jobs:       testJobs("a", "b", "c"),
			reorderErr: errors.New("connection reset"),
		}
		c := New(jobs, &fakeCandidates{})
		require.Nil(t, c.LoadJobs(ctx, jobapimodels.JobFilter{}))

		err := c.MoveJob(ctx, "c", 0)
		require.NotNil(t, err)
		require.Equal(t, []string{"c", "a", "b"}, viewIDs(c.Jobs()))
	})

	t.Run(`target index is clamped to the view`, func(t *testing.T) {
		jobs := &fakeJobs{jobs: testJobs("a", "b", "c")}
		c := New(jobs, &fakeCandidates{})
		require.Nil(t, c.LoadJobs(ctx, jobapimodels.JobFilter{}))

		require.Nil(t, c.MoveJob(ctx, "a", 99))
		require.Equal(t, []string{"b", "c", "a"}, viewIDs(c.Jobs()))
	})

	t.Run(`moving an unknown job is a not-found`, func(t *testing.T) {
		c := New(&fakeJobs{jobs: testJobs("a")}, &fakeCandidates{})
		require.Nil(t, c.LoadJobs(ctx, jobapimodels.JobFilter{}))
		err := c.MoveJob(ctx, "ghost", 0)
		require.Equal(t, true, apperrors.IsNotFound(err))
	})
}

func TestSetStage(t *testing.T) {
	ctx := context.Background()

	seedView := func(t *testing.T, fc *fakeCandidates) *Coordinator {
		fc.list = []dbmodels.Candidate{{ID: "cand-1", Name: "Jane", Stage: models.CandidateStageApplied}}
		c := New(&fakeJobs{}, fc)
		require.Nil(t, c.LoadCandidates(ctx, candidateapimodels.CandidateFilter{}))
		return c
	}

	t.Run(`confirmed change adopts the authoritative record`, func(t *testing.T) {
		fc := &fakeCandidates{updated: dbmodels.Candidate{ID: "cand-1", Name: "Jane", Stage: models.CandidateStageScreen}}
		c := seedView(t, fc)

		require.Nil(t, c.SetStage(ctx, "cand-1", models.CandidateStageScreen))
		rec, ok := c.Candidate("cand-1")
		require.Equal(t, true, ok)
		require.Equal(t, models.CandidateStageScreen, rec.Stage)
	})

	t.Run(`rejected change rolls the record back`, func(t *testing.T) {
		fc := &fakeCandidates{updateErr: apperrors.NewSimulatedNetwork(500, "simulated network failure")}
		c := seedView(t, fc)

		err := c.SetStage(ctx, "cand-1", models.CandidateStageOffer)
		require.NotNil(t, err)
		rec, _ := c.Candidate("cand-1")
		require.Equal(t, models.CandidateStageApplied, rec.Stage)
	})

	t.Run(`unknown candidate is a not-found`, func(t *testing.T) {
		c := New(&fakeJobs{}, &fakeCandidates{})
		err := c.SetStage(ctx, "ghost", models.CandidateStageScreen)
		require.Equal(t, true, apperrors.IsNotFound(err))
	})
}

func TestSupersede(t *testing.T) {
	t.Run(`a newer mutation keeps the oldest snapshot and disowns the older caller`, func(t *testing.T) {
		c := New(&fakeJobs{}, &fakeCandidates{})

		c.mu.Lock()
		first := c.begin("jobs", testJobs("a", "b"), nil)
		firstGen := first.generation
		second := c.begin("jobs", testJobs("b", "a"), nil)
		secondGen := second.generation
		c.mu.Unlock()

		require.Equal(t, first, second)
		require.Equal(t, []string{"a", "b"}, viewIDs(second.jobSnapshot))
		require.NotEqual(t, firstGen, secondGen)

		c.mu.Lock()
		defer c.mu.Unlock()
		require.Equal(t, false, c.settle("jobs", firstGen))
		require.Equal(t, true, c.settle("jobs", secondGen))
		require.Equal(t, false, c.settle("jobs", secondGen))
	})
}
