package entity

import (
	"time"

	"gorm.io/gorm"
)

// StartNodeKey is the reserved node key every scenario graph must contain
// exactly once.
const StartNodeKey = "start"

// TerminalNodeKey marks a response option that ends the conversation.
const TerminalNodeKey = "end"

// Scenario - a conversation template with a branching dialogue graph
type Scenario struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Slug       string         `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Title      string         `gorm:"size:200;not null" json:"title"`
	Difficulty string         `gorm:"size:20;not null;index" json:"difficulty"` // easy, medium, hard
	Context    string         `gorm:"type:text" json:"context"`                 // free-text situation shown before the first turn
	Active     bool           `gorm:"default:true;index" json:"active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Scenario) TableName() string {
	return "scenarios"
}

// DialogueNode - one turn's displayed content within a scenario graph
type DialogueNode struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ScenarioID uint           `gorm:"not null;index:idx_dialogue_nodes_scenario_key,unique" json:"scenario_id"`
	NodeKey    string         `gorm:"size:100;not null;index:idx_dialogue_nodes_scenario_key,unique" json:"node_key"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (DialogueNode) TableName() string {
	return "dialogue_nodes"
}

// ResponseOption - a selectable learner reply hanging off a dialogue node.
// Score is an open-range quality score, higher is better. NextNodeKey is the
// key of the node the option leads to, or TerminalNodeKey / empty for a
// conversation-ending option.
type ResponseOption struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	NodeID      uint           `gorm:"not null;index" json:"node_id"`
	Text        string         `gorm:"type:text;not null" json:"text"`
	Score       int            `gorm:"not null" json:"score"`
	NextNodeKey string         `gorm:"size:100" json:"next_node_key"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ResponseOption) TableName() string {
	return "response_options"
}
