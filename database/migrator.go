package database

import (
	"github.com/fluentup/fluentup-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Scenario{},
		&entity.DialogueNode{},
		&entity.ResponseOption{},
		&entity.ScenarioSession{},
		&entity.SessionResult{},
		&entity.GradingRecord{},
		&entity.DiscussionQuestion{},
		&entity.Report{},
		&entity.ContentProgress{},
	)
	return err
}
