package mapper

import (
	"encoding/json"

	apiEntity "github.com/fluentup/fluentup-be/internal/delivery/http/entity"
	dbEntity "github.com/fluentup/fluentup-be/internal/entity"
)

// DecodeHistory - parse persisted history JSON into entries
func DecodeHistory(raw string) ([]dbEntity.HistoryEntry, error) {
	if raw == "" {
		return []dbEntity.HistoryEntry{}, nil
	}
	var entries []dbEntity.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EncodeHistory - serialize history entries for persistence
func EncodeHistory(entries []dbEntity.HistoryEntry) (string, error) {
	if entries == nil {
		entries = []dbEntity.HistoryEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func ToHistoryViews(entries []dbEntity.HistoryEntry) []apiEntity.HistoryEntry {
	views := make([]apiEntity.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		views = append(views, apiEntity.HistoryEntry{
			NodeKey:    e.NodeKey,
			OptionID:   e.OptionID,
			OptionText: e.OptionText,
			Points:     e.Points,
		})
	}
	return views
}

func FromHistoryViews(views []apiEntity.HistoryEntry) []dbEntity.HistoryEntry {
	entries := make([]dbEntity.HistoryEntry, 0, len(views))
	for _, v := range views {
		entries = append(entries, dbEntity.HistoryEntry{
			NodeKey:    v.NodeKey,
			OptionID:   v.OptionID,
			OptionText: v.OptionText,
			Points:     v.Points,
		})
	}
	return entries
}

func ToOptionViews(options []dbEntity.ResponseOption) []apiEntity.OptionView {
	views := make([]apiEntity.OptionView, 0, len(options))
	for _, o := range options {
		views = append(views, apiEntity.OptionView{
			ID:    o.ID,
			Text:  o.Text,
			Score: o.Score,
		})
	}
	return views
}

func ToScenarioViews(scenarios []dbEntity.Scenario) []apiEntity.ScenarioView {
	views := make([]apiEntity.ScenarioView, 0, len(scenarios))
	for _, s := range scenarios {
		views = append(views, apiEntity.ScenarioView{
			ID:         s.ID,
			Slug:       s.Slug,
			Title:      s.Title,
			Difficulty: s.Difficulty,
			Context:    s.Context,
		})
	}
	return views
}

// ToSessionView - convert a persisted session plus its current node state into
// the API shape. History JSON that fails to parse degrades to an empty list.
func ToSessionView(session *dbEntity.ScenarioSession, nodeContent string, options []dbEntity.ResponseOption) apiEntity.SessionView {
	entries, err := DecodeHistory(session.History)
	if err != nil {
		entries = []dbEntity.HistoryEntry{}
	}

	return apiEntity.SessionView{
		SessionID:      session.ID,
		UserID:         session.UserID,
		ScenarioID:     session.ScenarioID,
		CurrentNodeKey: session.CurrentNodeKey,
		NodeContent:    nodeContent,
		Options:        ToOptionViews(options),
		History:        ToHistoryViews(entries),
		TotalScore:     session.TotalScore,
		Completed:      session.Completed,
	}
}

func ToResultView(result *dbEntity.SessionResult) apiEntity.SessionResultView {
	entries, err := DecodeHistory(result.History)
	if err != nil {
		entries = []dbEntity.HistoryEntry{}
	}

	return apiEntity.SessionResultView{
		SessionID:       result.SessionID,
		TotalScore:      result.TotalScore,
		TurnCount:       result.TurnCount,
		GrammarScore:    result.GrammarScore,
		ExpressionScore: result.ExpressionScore,
		OutcomeScore:    result.OutcomeScore,
		FinalOutcome:    result.FinalOutcome,
		Summary:         result.Summary,
		History:         ToHistoryViews(entries),
	}
}

// ToGradingView - convert a grading record, parsing the JSON list columns.
func ToGradingView(record *dbEntity.GradingRecord) apiEntity.GradingView {
	var strengths, improvements []string
	if record.Strengths != "" {
		_ = json.Unmarshal([]byte(record.Strengths), &strengths)
	}
	if record.Improvements != "" {
		_ = json.Unmarshal([]byte(record.Improvements), &improvements)
	}
	if strengths == nil {
		strengths = []string{}
	}
	if improvements == nil {
		improvements = []string{}
	}

	return apiEntity.GradingView{
		UserID:       record.UserID,
		ContentID:    record.ContentID,
		QuestionID:   record.QuestionID,
		Kind:         record.Kind,
		Score:        record.Score,
		Strengths:    strengths,
		Improvements: improvements,
		Feedback:     record.Feedback,
		WordCount:    record.WordCount,
	}
}
