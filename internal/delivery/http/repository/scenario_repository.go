package repository

import (
	"github.com/fluentup/fluentup-be/internal/entity"
	"gorm.io/gorm"
)

type (
	// ScenarioRepository is the read-only access layer over the dialogue
	// graph: scenarios, their nodes and the options hanging off each node.
	ScenarioRepository interface {
		FindActiveScenarios(db *gorm.DB) ([]entity.Scenario, error)
		FindScenarioByID(db *gorm.DB, scenarioID uint) (*entity.Scenario, error)

		// FindStartNode returns the node with the reserved "start" key.
		FindStartNode(db *gorm.DB, scenarioID uint) (*entity.DialogueNode, error)
		FindNode(db *gorm.DB, scenarioID uint, nodeKey string) (*entity.DialogueNode, error)

		// FindOptionsByNodeID returns options ordered by score descending,
		// ties broken by insertion order. Empty result marks a terminal node.
		FindOptionsByNodeID(db *gorm.DB, nodeID uint) ([]entity.ResponseOption, error)
		FindOptionByID(db *gorm.DB, optionID uint) (*entity.ResponseOption, error)
	}

	scenarioRepository struct {
		db *gorm.DB
	}
)

func NewScenarioRepository(db *gorm.DB) ScenarioRepository {
	return &scenarioRepository{db: db}
}

func (r *scenarioRepository) FindActiveScenarios(db *gorm.DB) ([]entity.Scenario, error) {
	if db == nil {
		db = r.db
	}
	var scenarios []entity.Scenario
	err := db.Where("active = ?", true).Order("id ASC").Find(&scenarios).Error
	return scenarios, err
}

func (r *scenarioRepository) FindScenarioByID(db *gorm.DB, scenarioID uint) (*entity.Scenario, error) {
	if db == nil {
		db = r.db
	}
	var scenario entity.Scenario
	err := db.Where("id = ?", scenarioID).First(&scenario).Error
	if err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (r *scenarioRepository) FindStartNode(db *gorm.DB, scenarioID uint) (*entity.DialogueNode, error) {
	return r.FindNode(db, scenarioID, entity.StartNodeKey)
}

func (r *scenarioRepository) FindNode(db *gorm.DB, scenarioID uint, nodeKey string) (*entity.DialogueNode, error) {
	if db == nil {
		db = r.db
	}
	var node entity.DialogueNode
	err := db.Where("scenario_id = ? AND node_key = ?", scenarioID, nodeKey).First(&node).Error
	if err != nil {
		return nil, err
	}
	return &node, nil
}

func (r *scenarioRepository) FindOptionsByNodeID(db *gorm.DB, nodeID uint) ([]entity.ResponseOption, error) {
	if db == nil {
		db = r.db
	}
	var options []entity.ResponseOption
	err := db.Where("node_id = ?", nodeID).Order("score DESC, id ASC").Find(&options).Error
	return options, err
}

func (r *scenarioRepository) FindOptionByID(db *gorm.DB, optionID uint) (*entity.ResponseOption, error) {
	if db == nil {
		db = r.db
	}
	var option entity.ResponseOption
	err := db.Where("id = ?", optionID).First(&option).Error
	if err != nil {
		return nil, err
	}
	return &option, nil
}
