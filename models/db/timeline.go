package dbmodels

import (
	"time"

	"talentflow-backend/models"
)

// TimelineEntry is the audit record of a candidate's stage history.
// One entry is written at candidate creation and one per stage change;
// entries are immutable once written.
type TimelineEntry struct {
	ID          string                `json:"id"`
	CandidateID string                `json:"candidateId"`
	Stage       models.CandidateStage `json:"stage"`
	Timestamp   time.Time             `json:"timestamp"`
	Notes       string                `json:"notes,omitempty"`
}
