package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	apiEntity "github.com/fluentup/fluentup-be/internal/delivery/http/entity"
	"github.com/fluentup/fluentup-be/internal/delivery/http/repository"
	internalEntity "github.com/fluentup/fluentup-be/internal/entity"
	"github.com/fluentup/fluentup-be/internal/pkg/apperr"
	"github.com/fluentup/fluentup-be/internal/pkg/llm"
	"github.com/fluentup/fluentup-be/internal/pkg/mapper"
	"github.com/fluentup/fluentup-be/internal/pkg/scoring"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Oracle is the LLM judge. Its output is untrusted and validated on receipt.
type Oracle interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string, opts llm.Options) (string, error)
}

type GradingEngine interface {
	GradeAnswer(ctx context.Context, req apiEntity.GradeAnswerRequest) (*apiEntity.GradingView, error)
	GradeSummary(ctx context.Context, req apiEntity.GradeSummaryRequest) (*apiEntity.GradingView, error)
}

type GradingEngineConfig struct {
	DB         *gorm.DB
	Log        *logrus.Logger
	Oracle     Oracle
	Repository repository.GradingRepository

	// Timeout bounds a single oracle call. A timeout or transport failure
	// surfaces as a retryable upstream error; the fallback record is
	// reserved for malformed-but-received output.
	Timeout           time.Duration
	FallbackScore     int
	ReferenceMaxChars int
}

type gradingEngine struct {
	cfg GradingEngineConfig
}

func NewGradingEngine(cfg GradingEngineConfig) GradingEngine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.FallbackScore <= 0 {
		cfg.FallbackScore = 70
	}
	if cfg.ReferenceMaxChars <= 0 {
		cfg.ReferenceMaxChars = 4000
	}
	return &gradingEngine{cfg: cfg}
}

func (u *gradingEngine) dbCtx(ctx context.Context) *gorm.DB {
	if u.cfg.DB == nil {
		return nil
	}
	return u.cfg.DB.WithContext(ctx)
}

func (u *gradingEngine) GradeAnswer(ctx context.Context, req apiEntity.GradeAnswerRequest) (*apiEntity.GradingView, error) {
	db := u.dbCtx(ctx)

	question, err := u.cfg.Repository.FindQuestionByID(db, req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("question_missing", fmt.Sprintf("question %d does not exist", req.QuestionID))
		}
		return nil, fmt.Errorf("failed to load question: %w", err)
	}

	userPrompt := buildAnswerPrompt(question.Prompt, question.SampleAnswer, req.AnswerText)
	feedback, err := u.judge(ctx, userPrompt)
	if err != nil {
		return nil, err
	}

	record, err := u.buildRecord(req.UserID, question.ContentID, question.ID, internalEntity.GradingKindAnswer, req.AnswerText, feedback, 0)
	if err != nil {
		return nil, err
	}

	if err := u.cfg.Repository.UpsertGradingRecord(db, record); err != nil {
		return nil, fmt.Errorf("failed to persist grading record: %w", err)
	}
	if err := u.cfg.Repository.MarkAnswered(db, req.UserID, question.ContentID); err != nil {
		u.cfg.Log.WithError(err).Warn("failed to mark content as answered")
	}

	view := mapper.ToGradingView(record)
	return &view, nil
}

func (u *gradingEngine) GradeSummary(ctx context.Context, req apiEntity.GradeSummaryRequest) (*apiEntity.GradingView, error) {
	db := u.dbCtx(ctx)

	report, err := u.cfg.Repository.FindReportByID(db, req.ReportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("report_missing", fmt.Sprintf("report %d does not exist", req.ReportID))
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	reference := truncateRunes(report.Body, u.cfg.ReferenceMaxChars)
	userPrompt := buildSummaryPrompt(report.Title, reference, req.SummaryText)
	feedback, err := u.judge(ctx, userPrompt)
	if err != nil {
		return nil, err
	}

	wordCount := countWords(req.SummaryText)
	record, err := u.buildRecord(req.UserID, report.ID, 0, internalEntity.GradingKindSummary, req.SummaryText, feedback, wordCount)
	if err != nil {
		return nil, err
	}

	if err := u.cfg.Repository.UpsertGradingRecord(db, record); err != nil {
		return nil, fmt.Errorf("failed to persist grading record: %w", err)
	}
	if err := u.cfg.Repository.MarkSummarized(db, req.UserID, report.ID); err != nil {
		u.cfg.Log.WithError(err).Warn("failed to mark content as summarized")
	}

	view := mapper.ToGradingView(record)
	return &view, nil
}

// judge runs the oracle with a bounded timeout and reconciles its raw output
// into validated feedback. Transport failures surface as retryable upstream
// errors; malformed output degrades to the deterministic fallback.
func (u *gradingEngine) judge(ctx context.Context, userPrompt string) (gradingFeedback, error) {
	callCtx, cancel := context.WithTimeout(ctx, u.cfg.Timeout)
	defer cancel()

	text, err := u.cfg.Oracle.Complete(callCtx, gradingSystemPrompt, userPrompt, llm.Options{
		Temperature: 0.3,
		MaxTokens:   2048,
		JSONMode:    true,
	})
	if err != nil {
		return gradingFeedback{}, apperr.UpstreamUnavailable("oracle_unavailable", "grading service did not respond", err)
	}

	feedback, ok := parseGradingResponse(text, u.cfg.FallbackScore)
	if !ok {
		u.cfg.Log.WithField("raw_length", len(text)).Warn("oracle output failed validation, using fallback grading")
	}
	return feedback, nil
}

func (u *gradingEngine) buildRecord(userID string, contentID, questionID uint, kind, submitted string, feedback gradingFeedback, wordCount int) (*internalEntity.GradingRecord, error) {
	strengthsJSON, err := json.Marshal(feedback.Strengths)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal strengths: %w", err)
	}
	improvementsJSON, err := json.Marshal(feedback.Improvements)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal improvements: %w", err)
	}

	return &internalEntity.GradingRecord{
		UserID:        userID,
		ContentID:     contentID,
		QuestionID:    questionID,
		Kind:          kind,
		SubmittedText: submitted,
		Score:         feedback.Score,
		Strengths:     string(strengthsJSON),
		Improvements:  string(improvementsJSON),
		Feedback:      feedback.Feedback,
		WordCount:     wordCount,
	}, nil
}

// gradingFeedback is the validated result of one oracle judgment.
type gradingFeedback struct {
	Score        int
	Strengths    []string
	Improvements []string
	Feedback     string
}

type oracleGradingJSON struct {
	Score            *float64 `json:"score"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	Feedback         string   `json:"feedback"`
	LanguageFeedback string   `json:"language_feedback"`
	ContentFeedback  string   `json:"content_feedback"`
}

const fallbackFeedbackText = "Good effort! Keep practicing and your writing will keep improving."

// parseGradingResponse validates the oracle's raw output. The second return
// value is false when the output was malformed or missing its score and the
// deterministic fallback was substituted. The score is clamped to [0,100]
// instead of trusting the oracle to stay in range.
func parseGradingResponse(text string, fallbackScore int) (gradingFeedback, bool) {
	fallback := gradingFeedback{
		Score:        fallbackScore,
		Strengths:    []string{},
		Improvements: []string{},
		Feedback:     fallbackFeedbackText,
	}

	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var parsed oracleGradingJSON
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return fallback, false
	}
	if parsed.Score == nil {
		return fallback, false
	}

	feedback := gradingFeedback{
		Score:        scoring.Clamp(int(*parsed.Score), 0, 100),
		Strengths:    parsed.Strengths,
		Improvements: parsed.Improvements,
		Feedback:     parsed.Feedback,
	}
	if feedback.Strengths == nil {
		feedback.Strengths = []string{}
	}
	if feedback.Improvements == nil {
		feedback.Improvements = []string{}
	}
	if feedback.Feedback == "" {
		feedback.Feedback = strings.TrimSpace(strings.Join(nonEmpty(parsed.LanguageFeedback, parsed.ContentFeedback), " "))
	}

	return feedback, true
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// countWords tokenizes on whitespace.
func countWords(text string) int {
	return len(strings.Fields(text))
}

// truncateRunes bounds the reference text passed to the oracle.
func truncateRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

const gradingSystemPrompt = `You are an experienced English teacher grading a learner's written submission.

Evaluate the submission against the provided reference material. Consider grammar, vocabulary, coherence and how well the content addresses the task.

Return ONLY a valid JSON object, NO markdown, NO code blocks, with these fields:
{"score": 0-100, "strengths": ["..."], "improvements": ["..."], "feedback": "short encouraging commentary"}

The score must be an integer between 0 and 100. Keep the feedback concise, specific and encouraging.`

func buildAnswerPrompt(question, sampleAnswer, submission string) string {
	return fmt.Sprintf(`Discussion question:
%s

Reference answer:
%s

Learner's answer:
%s`, question, sampleAnswer, submission)
}

func buildSummaryPrompt(title, reference, submission string) string {
	return fmt.Sprintf(`The learner read the report %q and wrote a summary of it.

Report content (may be truncated):
%s

Learner's summary:
%s

Grade how accurately and clearly the summary captures the report.`, title, reference, submission)
}
