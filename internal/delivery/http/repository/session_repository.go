package repository

import (
	"github.com/fluentup/fluentup-be/internal/entity"
	"gorm.io/gorm"
)

type (
	SessionRepository interface {
		CreateSession(db *gorm.DB, session *entity.ScenarioSession) error
		FindSessionByID(db *gorm.DB, sessionID uint) (*entity.ScenarioSession, error)
		FindIncompleteSession(db *gorm.DB, userID string, scenarioID uint) (*entity.ScenarioSession, error)

		// UpdateSessionVersioned persists the session only when the stored
		// version still matches expectedVersion, bumping the version on
		// success. Returns the number of rows updated (0 = stale write).
		UpdateSessionVersioned(db *gorm.DB, session *entity.ScenarioSession, expectedVersion int) (int64, error)

		// CompleteSession closes a session with its final history and total,
		// keeping the session row consistent with its result.
		CompleteSession(db *gorm.DB, sessionID uint, history string, totalScore int) error

		CreateResult(db *gorm.DB, result *entity.SessionResult) error
		FindResultBySessionID(db *gorm.DB, sessionID uint) (*entity.SessionResult, error)

		// Stats sub-queries; each is independent and read-only.
		CountSessionsByUserID(db *gorm.DB, userID string) (int64, error)
		CountCompletedSessionsByUserID(db *gorm.DB, userID string) (int64, error)
		FindResultScoresByUserID(db *gorm.DB, userID string) ([]int, error)
		CountResultsByOutcomes(db *gorm.DB, userID string, outcomes []string) (int64, error)
	}

	sessionRepository struct {
		db *gorm.DB
	}
)

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateSession(db *gorm.DB, session *entity.ScenarioSession) error {
	if db == nil {
		db = r.db
	}
	return db.Create(session).Error
}

func (r *sessionRepository) FindSessionByID(db *gorm.DB, sessionID uint) (*entity.ScenarioSession, error) {
	if db == nil {
		db = r.db
	}
	var session entity.ScenarioSession
	err := db.Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindIncompleteSession(db *gorm.DB, userID string, scenarioID uint) (*entity.ScenarioSession, error) {
	if db == nil {
		db = r.db
	}
	var session entity.ScenarioSession
	err := db.Where("user_id = ? AND scenario_id = ? AND completed = ?", userID, scenarioID, false).
		Order("id DESC").First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) UpdateSessionVersioned(db *gorm.DB, session *entity.ScenarioSession, expectedVersion int) (int64, error) {
	if db == nil {
		db = r.db
	}
	result := db.Model(&entity.ScenarioSession{}).
		Where("id = ? AND version = ?", session.ID, expectedVersion).
		Updates(map[string]any{
			"current_node_key": session.CurrentNodeKey,
			"history":          session.History,
			"total_score":      session.TotalScore,
			"completed":        session.Completed,
			"version":          expectedVersion + 1,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *sessionRepository) CompleteSession(db *gorm.DB, sessionID uint, history string, totalScore int) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.ScenarioSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]any{
			"completed":   true,
			"history":     history,
			"total_score": totalScore,
		}).Error
}

func (r *sessionRepository) CreateResult(db *gorm.DB, result *entity.SessionResult) error {
	if db == nil {
		db = r.db
	}
	return db.Create(result).Error
}

func (r *sessionRepository) FindResultBySessionID(db *gorm.DB, sessionID uint) (*entity.SessionResult, error) {
	if db == nil {
		db = r.db
	}
	var result entity.SessionResult
	err := db.Where("session_id = ?", sessionID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *sessionRepository) CountSessionsByUserID(db *gorm.DB, userID string) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&entity.ScenarioSession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *sessionRepository) CountCompletedSessionsByUserID(db *gorm.DB, userID string) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&entity.ScenarioSession{}).
		Where("user_id = ? AND completed = ?", userID, true).Count(&count).Error
	return count, err
}

func (r *sessionRepository) FindResultScoresByUserID(db *gorm.DB, userID string) ([]int, error) {
	if db == nil {
		db = r.db
	}
	var scores []int
	err := db.Model(&entity.SessionResult{}).
		Where("user_id = ?", userID).Pluck("total_score", &scores).Error
	return scores, err
}

func (r *sessionRepository) CountResultsByOutcomes(db *gorm.DB, userID string, outcomes []string) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&entity.SessionResult{}).
		Where("user_id = ? AND final_outcome IN ?", userID, outcomes).Count(&count).Error
	return count, err
}
