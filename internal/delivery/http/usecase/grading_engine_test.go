package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	apiEntity "github.com/fluentup/fluentup-be/internal/delivery/http/entity"
	internalEntity "github.com/fluentup/fluentup-be/internal/entity"
	"github.com/fluentup/fluentup-be/internal/pkg/apperr"
	"github.com/fluentup/fluentup-be/internal/pkg/llm"
	"gorm.io/gorm"
)

// fakeOracle replays a canned reply or failure.
type fakeOracle struct {
	reply string
	err   error

	lastUserPrompt string
}

func (f *fakeOracle) Complete(_ context.Context, _ string, userPrompt string, _ llm.Options) (string, error) {
	f.lastUserPrompt = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type gradingKey struct {
	userID     string
	contentID  uint
	questionID uint
}

// fakeGradingRepo keeps records in memory keyed the same way the unique
// index keys them.
type fakeGradingRepo struct {
	questions map[uint]internalEntity.DiscussionQuestion
	reports   map[uint]internalEntity.Report
	records   map[gradingKey]internalEntity.GradingRecord
	progress  map[string]internalEntity.ContentProgress
}

func newFakeGradingRepo() *fakeGradingRepo {
	return &fakeGradingRepo{
		questions: make(map[uint]internalEntity.DiscussionQuestion),
		reports:   make(map[uint]internalEntity.Report),
		records:   make(map[gradingKey]internalEntity.GradingRecord),
		progress:  make(map[string]internalEntity.ContentProgress),
	}
}

func (f *fakeGradingRepo) FindQuestionByID(_ *gorm.DB, questionID uint) (*internalEntity.DiscussionQuestion, error) {
	q, ok := f.questions[questionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &q, nil
}

func (f *fakeGradingRepo) FindReportByID(_ *gorm.DB, reportID uint) (*internalEntity.Report, error) {
	r, ok := f.reports[reportID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (f *fakeGradingRepo) UpsertGradingRecord(_ *gorm.DB, record *internalEntity.GradingRecord) error {
	key := gradingKey{userID: record.UserID, contentID: record.ContentID, questionID: record.QuestionID}
	if existing, ok := f.records[key]; ok {
		record.ID = existing.ID
	} else {
		record.ID = uint(len(f.records) + 1)
	}
	f.records[key] = *record
	return nil
}

func (f *fakeGradingRepo) FindGradingRecord(_ *gorm.DB, userID string, contentID, questionID uint) (*internalEntity.GradingRecord, error) {
	record, ok := f.records[gradingKey{userID: userID, contentID: contentID, questionID: questionID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &record, nil
}

func (f *fakeGradingRepo) MarkAnswered(_ *gorm.DB, userID string, contentID uint) error {
	p := f.progress[userID]
	p.UserID = userID
	p.ContentID = contentID
	p.Answered = true
	f.progress[userID] = p
	return nil
}

func (f *fakeGradingRepo) MarkSummarized(_ *gorm.DB, userID string, contentID uint) error {
	p := f.progress[userID]
	p.UserID = userID
	p.ContentID = contentID
	p.Summarized = true
	f.progress[userID] = p
	return nil
}

func newGradingTestFixture(oracle *fakeOracle) (GradingEngine, *fakeGradingRepo) {
	repo := newFakeGradingRepo()
	repo.questions[1] = internalEntity.DiscussionQuestion{
		ID:           1,
		ContentID:    10,
		Prompt:       "Do you prefer working remotely?",
		SampleAnswer: "I prefer remote work because it removes my commute.",
	}
	repo.reports[10] = internalEntity.Report{
		ID:    10,
		Title: "The Rise of Remote Work",
		Body:  "Remote work has grown steadily over the past decade.",
	}

	engine := NewGradingEngine(GradingEngineConfig{
		Log:        testLogger(),
		Oracle:     oracle,
		Repository: repo,
	})
	return engine, repo
}

func TestGradeAnswer(t *testing.T) {
	oracle := &fakeOracle{reply: `{"score": 85, "strengths": ["clear thesis"], "improvements": ["vary sentence length"], "feedback": "Well argued."}`}
	engine, repo := newGradingTestFixture(oracle)

	view, err := engine.GradeAnswer(context.Background(), apiEntity.GradeAnswerRequest{
		UserID:     "user-1",
		QuestionID: 1,
		AnswerText: "I strongly prefer remote work.",
	})
	if err != nil {
		t.Fatalf("GradeAnswer: %v", err)
	}
	if view.Score != 85 {
		t.Errorf("expected score 85, got %d", view.Score)
	}
	if len(view.Strengths) != 1 || view.Strengths[0] != "clear thesis" {
		t.Errorf("unexpected strengths: %v", view.Strengths)
	}
	if view.Kind != internalEntity.GradingKindAnswer {
		t.Errorf("expected kind %q, got %q", internalEntity.GradingKindAnswer, view.Kind)
	}
	if !strings.Contains(oracle.lastUserPrompt, "I strongly prefer remote work.") {
		t.Error("learner's answer missing from oracle prompt")
	}
	if !repo.progress["user-1"].Answered {
		t.Error("expected content to be marked answered")
	}
}

func TestGradeAnswerFallsBackOnMalformedOutput(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"plain prose", "The answer was quite good, I would give it a B."},
		{"truncated json", `{"score": 85, "strengths": ["cl`},
		{"missing score", `{"strengths": ["good"], "improvements": []}`},
		{"empty output", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := newGradingTestFixture(&fakeOracle{reply: tt.reply})

			view, err := engine.GradeAnswer(context.Background(), apiEntity.GradeAnswerRequest{
				UserID:     "user-1",
				QuestionID: 1,
				AnswerText: "Some answer.",
			})
			if err != nil {
				t.Fatalf("expected fallback grading, got error: %v", err)
			}
			if view.Score != 70 {
				t.Errorf("expected fallback score 70, got %d", view.Score)
			}
			if len(view.Strengths) != 0 || len(view.Improvements) != 0 {
				t.Errorf("expected empty lists, got strengths=%v improvements=%v", view.Strengths, view.Improvements)
			}
			if view.Feedback == "" {
				t.Error("expected a non-empty fallback feedback text")
			}
		})
	}
}

func TestGradeAnswerOracleFailure(t *testing.T) {
	engine, repo := newGradingTestFixture(&fakeOracle{err: errors.New("connection refused")})

	_, err := engine.GradeAnswer(context.Background(), apiEntity.GradeAnswerRequest{
		UserID:     "user-1",
		QuestionID: 1,
		AnswerText: "Some answer.",
	})
	if !apperr.IsKind(err, apperr.KindUpstreamUnavailable) {
		t.Fatalf("expected upstream_unavailable, got %v", err)
	}
	// A transport failure must not fabricate a fallback record.
	if len(repo.records) != 0 {
		t.Errorf("expected no persisted records, got %d", len(repo.records))
	}
}

func TestGradeAnswerMissingQuestion(t *testing.T) {
	engine, _ := newGradingTestFixture(&fakeOracle{reply: `{"score": 80}`})

	_, err := engine.GradeAnswer(context.Background(), apiEntity.GradeAnswerRequest{
		UserID:     "user-1",
		QuestionID: 42,
		AnswerText: "Some answer.",
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestGradeSummaryUpsertIsIdempotent(t *testing.T) {
	oracle := &fakeOracle{reply: `{"score": 60, "feedback": "Covers the main points."}`}
	engine, repo := newGradingTestFixture(oracle)

	req := apiEntity.GradeSummaryRequest{
		UserID:      "user-1",
		ReportID:    10,
		SummaryText: "Remote work keeps growing.",
	}

	first, err := engine.GradeSummary(context.Background(), req)
	if err != nil {
		t.Fatalf("first GradeSummary: %v", err)
	}
	if first.WordCount != 4 {
		t.Errorf("expected word count 4, got %d", first.WordCount)
	}

	oracle.reply = `{"score": 90, "feedback": "Much improved."}`
	second, err := engine.GradeSummary(context.Background(), req)
	if err != nil {
		t.Fatalf("second GradeSummary: %v", err)
	}
	if second.Score != 90 {
		t.Errorf("expected updated score 90, got %d", second.Score)
	}
	if len(repo.records) != 1 {
		t.Errorf("expected a single record after regrade, got %d", len(repo.records))
	}
	if !repo.progress["user-1"].Summarized {
		t.Error("expected content to be marked summarized")
	}
}

func TestGradeSummaryRegradeToZeroReplacesScore(t *testing.T) {
	oracle := &fakeOracle{reply: `{"score": 85, "feedback": "Strong summary."}`}
	engine, repo := newGradingTestFixture(oracle)

	req := apiEntity.GradeSummaryRequest{
		UserID:      "user-1",
		ReportID:    10,
		SummaryText: "Remote work keeps growing.",
	}

	if _, err := engine.GradeSummary(context.Background(), req); err != nil {
		t.Fatalf("first GradeSummary: %v", err)
	}

	// A negative oracle score clamps to exactly 0, which must still replace
	// the stored 85 on resubmission.
	oracle.reply = `{"score": -5, "feedback": "Off topic."}`
	second, err := engine.GradeSummary(context.Background(), req)
	if err != nil {
		t.Fatalf("second GradeSummary: %v", err)
	}
	if second.Score != 0 {
		t.Errorf("resubmission did not replace the score: got %d, want 0", second.Score)
	}

	stored, err := repo.FindGradingRecord(nil, "user-1", 10, 0)
	if err != nil {
		t.Fatalf("FindGradingRecord: %v", err)
	}
	if stored.Score != 0 {
		t.Errorf("stored score = %d, want 0", stored.Score)
	}
	if stored.Feedback != "Off topic." {
		t.Errorf("stored feedback = %q, want the regrade's", stored.Feedback)
	}
}

func TestParseGradingResponseClampsScore(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  int
	}{
		{"above range", `{"score": 150}`, 100},
		{"below range", `{"score": -5}`, 0},
		{"fractional", `{"score": 87.6}`, 87},
		{"fenced json", "```json\n{\"score\": 42}\n```", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback, ok := parseGradingResponse(tt.reply, 70)
			if !ok {
				t.Fatal("expected output to parse")
			}
			if feedback.Score != tt.want {
				t.Errorf("expected score %d, got %d", tt.want, feedback.Score)
			}
		})
	}
}

func TestParseGradingResponseSecondaryFeedback(t *testing.T) {
	feedback, ok := parseGradingResponse(`{"score": 75, "language_feedback": "Watch your articles.", "content_feedback": "Solid argument."}`, 70)
	if !ok {
		t.Fatal("expected output to parse")
	}
	if feedback.Feedback != "Watch your articles. Solid argument." {
		t.Errorf("unexpected merged feedback: %q", feedback.Feedback)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"remote  work \t keeps\ngrowing", 4},
	}

	for _, tt := range tests {
		if got := countWords(tt.text); got != tt.want {
			t.Errorf("countWords(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("héllo wörld", 5); got != "héllo" {
		t.Errorf("expected rune-safe truncation, got %q", got)
	}
	if got := truncateRunes("short", 100); got != "short" {
		t.Errorf("expected text under the limit unchanged, got %q", got)
	}
}
