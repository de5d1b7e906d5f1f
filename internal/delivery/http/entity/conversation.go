package entity

// Request untuk memulai session percakapan skenario
type StartSessionRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	ScenarioID uint   `json:"scenario_id" validate:"required"`
}

// Request untuk memilih response option pada node saat ini
type ApplyChoiceRequest struct {
	OptionID uint `json:"option_id" validate:"required"`
}

// Request untuk menyelesaikan session dan menurunkan hasil akhir
type FinalizeRequest struct {
	FinalOutcome string `json:"final_outcome" validate:"required"`
}

// HistoryEntry pada payload API (mirror dari history yang dipersist)
type HistoryEntry struct {
	NodeKey    string `json:"node_key"`
	OptionID   uint   `json:"option_id"`
	OptionText string `json:"option_text"`
	Points     int    `json:"points"`
}

// Request untuk menyimpan hasil session yang sudah selesai di sisi client
type SaveResultRequest struct {
	UserID       string         `json:"user_id" validate:"required"`
	ScenarioID   uint           `json:"scenario_id" validate:"required"`
	TotalScore   int            `json:"total_score"`
	Turns        int            `json:"turns" validate:"required,min=1"`
	FinalOutcome string         `json:"final_outcome" validate:"required"`
	History      []HistoryEntry `json:"history"`
}

// Response option yang ditampilkan ke learner
type OptionView struct {
	ID    uint   `json:"id"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Scenario item untuk list dashboard
type ScenarioView struct {
	ID         uint   `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Context    string `json:"context"`
}

// State session setelah start/apply choice
type SessionView struct {
	SessionID      uint           `json:"session_id"`
	UserID         string         `json:"user_id"`
	ScenarioID     uint           `json:"scenario_id"`
	CurrentNodeKey string         `json:"current_node_key"`
	NodeContent    string         `json:"node_content"`
	Options        []OptionView   `json:"options"`
	History        []HistoryEntry `json:"history"`
	TotalScore     int            `json:"total_score"`
	Completed      bool           `json:"completed"`
}

// Hasil akhir session
type SessionResultView struct {
	SessionID       uint           `json:"session_id"`
	TotalScore      int            `json:"total_score"`
	TurnCount       int            `json:"turn_count"`
	GrammarScore    int            `json:"grammar_score"`
	ExpressionScore int            `json:"expression_score"`
	OutcomeScore    int            `json:"outcome_score"`
	FinalOutcome    string         `json:"final_outcome"`
	Summary         string         `json:"summary"`
	History         []HistoryEntry `json:"history"`
}
