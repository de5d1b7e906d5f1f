package entity

import (
	"time"

	"gorm.io/gorm"
)

// Grading record kinds.
const (
	GradingKindAnswer  = "answer"
	GradingKindSummary = "summary"
)

// GradingRecord - a persisted LLM-assisted score for one free-text submission.
// The natural key is (UserID, ContentID, QuestionID); a resubmission replaces
// the prior record. QuestionID is 0 for summary gradings, where ContentID is
// the report being summarized.
type GradingRecord struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        string         `gorm:"size:100;not null;index:idx_grading_records_key,unique" json:"user_id"`
	ContentID     uint           `gorm:"not null;index:idx_grading_records_key,unique" json:"content_id"`
	QuestionID    uint           `gorm:"not null;index:idx_grading_records_key,unique" json:"question_id"`
	Kind          string         `gorm:"size:20;not null" json:"kind"` // answer, summary
	SubmittedText string         `gorm:"type:text;not null" json:"submitted_text"`
	Score         int            `gorm:"not null" json:"score"`
	Strengths     string         `gorm:"type:text" json:"strengths"`    // JSON array of strings
	Improvements  string         `gorm:"type:text" json:"improvements"` // JSON array of strings
	Feedback      string         `gorm:"type:text" json:"feedback"`
	WordCount     int            `gorm:"default:0" json:"word_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (GradingRecord) TableName() string {
	return "grading_records"
}

// DiscussionQuestion - a question attached to a content item, graded against
// its sample answer.
type DiscussionQuestion struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	ContentID    uint           `gorm:"not null;index" json:"content_id"`
	Prompt       string         `gorm:"type:text;not null" json:"prompt"`
	SampleAnswer string         `gorm:"type:text;not null" json:"sample_answer"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (DiscussionQuestion) TableName() string {
	return "discussion_questions"
}

// Report - long-form content whose body is the reference for summary grading.
type Report struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

// ContentProgress - coarse per-user flags set as a side effect of grading.
type ContentProgress struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     string         `gorm:"size:100;not null;index:idx_content_progress_key,unique" json:"user_id"`
	ContentID  uint           `gorm:"not null;index:idx_content_progress_key,unique" json:"content_id"`
	Answered   bool           `gorm:"default:false" json:"answered"`
	Summarized bool           `gorm:"default:false" json:"summarized"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContentProgress) TableName() string {
	return "content_progress"
}
