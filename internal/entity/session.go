package entity

import (
	"time"

	"gorm.io/gorm"
)

// HistoryEntry is one element of a session's persisted history JSON.
type HistoryEntry struct {
	NodeKey    string `json:"node_key"`
	OptionID   uint   `json:"option_id"`
	OptionText string `json:"option_text"`
	Points     int    `json:"points"`
}

// ScenarioSession - one learner's traversal of a scenario graph.
// History holds a JSON array of history entries (node visited, option chosen,
// points awarded) and is append-only. Version backs optimistic concurrency on
// updates: a write carrying a stale version matches zero rows.
type ScenarioSession struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         string         `gorm:"size:100;not null;index" json:"user_id"`
	ScenarioID     uint           `gorm:"not null;index" json:"scenario_id"`
	CurrentNodeKey string         `gorm:"size:100;not null" json:"current_node_key"`
	History        string         `gorm:"type:text;not null;default:'[]'" json:"history"` // JSON array of HistoryEntry
	TotalScore     int            `gorm:"default:0" json:"total_score"`
	Completed      bool           `gorm:"default:false;index" json:"completed"`
	Version        int            `gorm:"default:0" json:"version"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ScenarioSession) TableName() string {
	return "scenario_sessions"
}

// SessionResult - the finalized scoring record derived once per completed
// session. Facet scores are in [0,100]; History is the full audit copy.
type SessionResult struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	SessionID       uint           `gorm:"uniqueIndex;not null" json:"session_id"`
	UserID          string         `gorm:"size:100;not null;index" json:"user_id"`
	ScenarioID      uint           `gorm:"not null;index" json:"scenario_id"`
	TotalScore      int            `gorm:"not null" json:"total_score"`
	TurnCount       int            `gorm:"not null" json:"turn_count"`
	GrammarScore    int            `gorm:"not null" json:"grammar_score"`
	ExpressionScore int            `gorm:"not null" json:"expression_score"`
	OutcomeScore    int            `gorm:"not null" json:"outcome_score"`
	FinalOutcome    string         `gorm:"size:50;not null;index" json:"final_outcome"`
	Summary         string         `gorm:"type:text" json:"summary"`
	History         string         `gorm:"type:text" json:"history"` // JSON array of HistoryEntry
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SessionResult) TableName() string {
	return "session_results"
}
