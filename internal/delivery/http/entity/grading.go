package entity

// Request untuk menilai jawaban diskusi
type GradeAnswerRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	QuestionID uint   `json:"question_id" validate:"required"`
	AnswerText string `json:"answer_text" validate:"required"`
}

// Request untuk menilai ringkasan report
type GradeSummaryRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	ReportID    uint   `json:"report_id" validate:"required"`
	SummaryText string `json:"summary_text" validate:"required"`
}

// Hasil penilaian untuk satu submission
type GradingView struct {
	UserID       string   `json:"user_id"`
	ContentID    uint     `json:"content_id"`
	QuestionID   uint     `json:"question_id,omitempty"`
	Kind         string   `json:"kind"`
	Score        int      `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Feedback     string   `json:"feedback"`
	WordCount    int      `json:"word_count,omitempty"`
}
