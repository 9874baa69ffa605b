package models

type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusArchived JobStatus = "archived"
)

func (s JobStatus) IsValid() bool {
	return s == JobStatusActive || s == JobStatusArchived
}

type CandidateStage string

const (
	CandidateStageApplied  CandidateStage = "applied"
	CandidateStageScreen   CandidateStage = "screen"
	CandidateStageTech     CandidateStage = "tech"
	CandidateStageOffer    CandidateStage = "offer"
	CandidateStageHired    CandidateStage = "hired"
	CandidateStageRejected CandidateStage = "rejected"
)

// CandidateStages lists the pipeline stages in display order.
// Transitions between stages are unrestricted.
var CandidateStages = []CandidateStage{
	CandidateStageApplied,
	CandidateStageScreen,
	CandidateStageTech,
	CandidateStageOffer,
	CandidateStageHired,
	CandidateStageRejected,
}

func (s CandidateStage) IsValid() bool {
	for _, stage := range CandidateStages {
		if s == stage {
			return true
		}
	}
	return false
}

type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "single-choice"
	QuestionTypeMultiChoice  QuestionType = "multi-choice"
	QuestionTypeShortText    QuestionType = "short-text"
	QuestionTypeLongText     QuestionType = "long-text"
	QuestionTypeNumeric      QuestionType = "numeric"
	QuestionTypeFileUpload   QuestionType = "file-upload"
)

var QuestionTypes = []QuestionType{
	QuestionTypeSingleChoice,
	QuestionTypeMultiChoice,
	QuestionTypeShortText,
	QuestionTypeLongText,
	QuestionTypeNumeric,
	QuestionTypeFileUpload,
}

func (t QuestionType) IsValid() bool {
	for _, qt := range QuestionTypes {
		if t == qt {
			return true
		}
	}
	return false
}

func (t QuestionType) IsChoice() bool {
	return t == QuestionTypeSingleChoice || t == QuestionTypeMultiChoice
}

func (t QuestionType) IsText() bool {
	return t == QuestionTypeShortText || t == QuestionTypeLongText
}
