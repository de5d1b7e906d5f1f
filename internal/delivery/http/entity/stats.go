package entity

// Ringkasan statistik per user
type UserStats struct {
	TotalSessions     int64 `json:"total_sessions"`
	CompletedSessions int64 `json:"completed_sessions"`
	AverageScore      int   `json:"average_score"`
	BestOutcomeCount  int64 `json:"best_outcome_count"`
}
