package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"talentflow-backend/db"
	responsestore "talentflow-backend/lib/assessment/response-store"
	assessmentstore "talentflow-backend/lib/assessment/store"
	candidatestore "talentflow-backend/lib/candidate/store"
	timelinestore "talentflow-backend/lib/candidate/timeline-store"
	jobstore "talentflow-backend/lib/job/store"
	"talentflow-backend/lib/utils/helpers"
	"talentflow-backend/models"
	dbmodels "talentflow-backend/models/db"
)

type Provider interface {
	EnsureSeeded() error
}

var Instance Provider

func NewHandler(jobs, candidates, assessments int) {
	Instance = &impl{
		jobCount:        jobs,
		candidateCount:  candidates,
		assessmentCount: assessments,
		store:           db.Store,
		jobStore:        jobstore.NewInstance(db.Store),
		candidateStore:  candidatestore.NewInstance(db.Store),
		timelineStore:   timelinestore.NewInstance(db.Store),
		assessmentStore: assessmentstore.NewInstance(db.Store),
		responseStore:   responsestore.NewInstance(db.Store),
		rnd:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type impl struct {
	jobCount        int
	candidateCount  int
	assessmentCount int
	store           db.Provider
	jobStore        jobstore.Provider
	candidateStore  candidatestore.Provider
	timelineStore   timelinestore.Provider
	assessmentStore assessmentstore.Provider
	responseStore   responsestore.Provider
	rnd             *rand.Rand
}

var jobTitles = []string{
	"Senior Frontend Developer", "Backend Engineer", "Full Stack Developer",
	"DevOps Engineer", "Product Manager", "UX Designer", "Data Scientist",
	"Mobile Developer", "QA Engineer", "Technical Writer", "Sales Manager",
	"Marketing Specialist", "Customer Success Manager", "HR Business Partner",
	"Financial Analyst", "Operations Manager", "Security Engineer",
	"Cloud Architect", "Machine Learning Engineer", "Business Analyst",
	"Project Manager", "Scrum Master", "Content Creator",
	"Social Media Manager", "Growth Hacker",
}

var jobTags = []string{
	"Remote", "Full-time", "Part-time", "Contract", "Senior", "Junior",
	"Mid-level", "Urgent", "New",
}

var firstNames = []string{
	"John", "Jane", "Michael", "Sarah", "David", "Emily", "Chris", "Lisa",
	"Robert", "Amanda",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez",
}

// EnsureSeeded populates an empty store. It is a no-op when the job
// collection already holds data or the initialized flag is set, so repeated
// startups never duplicate the dataset.
func (i *impl) EnsureSeeded() error {
	initialized, err := i.store.IsInitialized()
	if err != nil {
		return err
	}
	if initialized {
		return nil
	}
	count, err := i.jobStore.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return i.store.MarkInitialized()
	}

	jobs := i.generateJobs()
	if err := i.jobStore.SaveMany(jobs); err != nil {
		return err
	}
	candidates, timeline := i.generateCandidates(jobs)
	if err := i.candidateStore.SaveMany(candidates); err != nil {
		return err
	}
	if err := i.timelineStore.CreateMany(timeline); err != nil {
		return err
	}
	assessments := i.generateAssessments(jobs)
	if err := i.assessmentStore.SaveMany(assessments); err != nil {
		return err
	}
	if err := i.store.MarkInitialized(); err != nil {
		return err
	}
	log.WithField("jobs", len(jobs)).
		WithField("candidates", len(candidates)).
		WithField("assessments", len(assessments)).
		Info("store seeded")
	return nil
}

func (i *impl) generateJobs() []dbmodels.Job {
	jobs := make([]dbmodels.Job, 0, i.jobCount)
	usedSlugs := map[string]bool{}
	now := time.Now()
	for idx := 0; idx < i.jobCount; idx++ {
		title := jobTitles[idx%len(jobTitles)]
		slug := helpers.UniqueSlug(helpers.Slugify(title), func(s string) bool { return usedSlugs[s] })
		usedSlugs[slug] = true
		status := models.JobStatusActive
		if i.rnd.Float64() < 0.3 {
			status = models.JobStatusArchived
		}
		tags := []string{}
		for _, tag := range jobTags {
			if len(tags) < 3 && i.rnd.Float64() < 0.3 {
				tags = append(tags, tag)
			}
		}
		createdAt := now.Add(-time.Duration(i.rnd.Intn(30*24)) * time.Hour)
		jobs = append(jobs, dbmodels.Job{
			BaseModel: dbmodels.BaseModel{
				ID:        uuid.NewString(),
				CreatedAt: createdAt,
				UpdatedAt: now.Add(-time.Duration(i.rnd.Intn(7*24)) * time.Hour),
			},
			Title:       title,
			Slug:        slug,
			Status:      status,
			Tags:        tags,
			Order:       idx,
			Description: fmt.Sprintf("We are looking for a talented %s to join our growing team.", title),
			Requirements: []string{
				fmt.Sprintf("3+ years of experience as %s", title),
				"Strong problem-solving skills",
				"Excellent communication abilities",
				"Team player with leadership potential",
			},
		})
	}
	return jobs
}

func (i *impl) generateCandidates(jobs []dbmodels.Job) ([]dbmodels.Candidate, []dbmodels.TimelineEntry) {
	candidates := make([]dbmodels.Candidate, 0, i.candidateCount)
	timeline := make([]dbmodels.TimelineEntry, 0, i.candidateCount)
	now := time.Now()
	for idx := 0; idx < i.candidateCount; idx++ {
		first := firstNames[i.rnd.Intn(len(firstNames))]
		last := lastNames[i.rnd.Intn(len(lastNames))]
		job := jobs[i.rnd.Intn(len(jobs))]
		stage := models.CandidateStages[i.rnd.Intn(len(models.CandidateStages))]
		appliedAt := now.Add(-time.Duration(i.rnd.Intn(60*24)) * time.Hour)
		updatedAt := appliedAt.Add(time.Duration(i.rnd.Intn(30*24)) * time.Hour)
		rec := dbmodels.Candidate{
			ID:        uuid.NewString(),
			Name:      first + " " + last,
			Email:     fmt.Sprintf("%s.%s%d@example.com", lower(first), lower(last), idx),
			Stage:     stage,
			JobID:     job.ID,
			AppliedAt: appliedAt,
			UpdatedAt: updatedAt,
		}
		if i.rnd.Float64() < 0.3 {
			rec.Notes = []dbmodels.CandidateNote{{
				ID:        uuid.NewString(),
				Content:   "Great candidate with strong technical skills.",
				CreatedAt: updatedAt,
				Author:    "HR Team",
			}}
		}
		candidates = append(candidates, rec)
		timeline = append(timeline, dbmodels.TimelineEntry{
			ID:          uuid.NewString(),
			CandidateID: rec.ID,
			Stage:       stage,
			Timestamp:   appliedAt,
			Notes:       "application received",
		})
	}
	return candidates, timeline
}

// generateAssessments builds one assessment per selected active job: two
// sections, ten questions covering every question type, one of them
// conditionally shown.
func (i *impl) generateAssessments(jobs []dbmodels.Job) []dbmodels.Assessment {
	assessments := []dbmodels.Assessment{}
	now := time.Now()
	for _, job := range jobs {
		if len(assessments) >= i.assessmentCount {
			break
		}
		if job.Status != models.JobStatusActive {
			continue
		}
		experienceID := uuid.NewString()
		sections := []dbmodels.AssessmentSection{
			{
				ID:          uuid.NewString(),
				Title:       "Technical Skills",
				Description: "Evaluate technical competencies",
				Questions: []dbmodels.Question{
					{
						ID:       experienceID,
						Type:     models.QuestionTypeSingleChoice,
						Title:    "How many years of experience do you have?",
						Required: true,
						Options:  []string{"0-1 years", "2-3 years", "4-5 years", "6+ years"},
					},
					{
						ID:       uuid.NewString(),
						Type:     models.QuestionTypeMultiChoice,
						Title:    "Which technologies are you proficient in?",
						Required: true,
						Options:  []string{"JavaScript", "TypeScript", "React", "Node.js", "Python", "Go"},
					},
					{
						ID:         uuid.NewString(),
						Type:       models.QuestionTypeLongText,
						Title:      "Describe a challenging project you worked on",
						Required:   true,
						Validation: &dbmodels.QuestionValidation{MinLength: intPtr(100), MaxLength: intPtr(1000)},
						ConditionalLogic: &dbmodels.ConditionalLogic{
							DependsOn: experienceID,
							ShowWhen:  "2-3 years",
						},
					},
					{
						ID:      uuid.NewString(),
						Type:    models.QuestionTypeShortText,
						Title:   "What is your preferred tech stack?",
						Options: nil,
					},
					{
						ID:         uuid.NewString(),
						Type:       models.QuestionTypeNumeric,
						Title:      "How many production systems have you operated?",
						Validation: &dbmodels.QuestionValidation{Min: floatPtr(0), Max: floatPtr(100)},
					},
				},
			},
			{
				ID:          uuid.NewString(),
				Title:       "Behavioral Questions",
				Description: "Assess cultural fit and soft skills",
				Questions: []dbmodels.Question{
					{
						ID:         uuid.NewString(),
						Type:       models.QuestionTypeShortText,
						Title:      "Why are you interested in this position?",
						Required:   true,
						Validation: &dbmodels.QuestionValidation{MaxLength: intPtr(500)},
					},
					{
						ID:         uuid.NewString(),
						Type:       models.QuestionTypeNumeric,
						Title:      "Rate your communication skills (1-10)",
						Required:   true,
						Validation: &dbmodels.QuestionValidation{Min: floatPtr(1), Max: floatPtr(10)},
					},
					{
						ID:    uuid.NewString(),
						Type:  models.QuestionTypeLongText,
						Title: "Describe your ideal working environment",
					},
					{
						ID:       uuid.NewString(),
						Type:     models.QuestionTypeSingleChoice,
						Title:    "Are you willing to relocate?",
						Required: true,
						Options:  []string{"Yes", "No", "Depends on the offer"},
					},
					{
						ID:    uuid.NewString(),
						Type:  models.QuestionTypeFileUpload,
						Title: "Upload your portfolio or relevant work samples",
					},
				},
			},
		}
		assessments = append(assessments, dbmodels.Assessment{
			BaseModel: dbmodels.BaseModel{
				ID:        uuid.NewString(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			JobID:       job.ID,
			Title:       job.Title + " Assessment",
			Description: fmt.Sprintf("Technical and behavioral assessment for the %s position", job.Title),
			Sections:    sections,
		})
	}
	return assessments
}

func lower(s string) string {
	return helpers.Slugify(s)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
