package repository

import (
	"github.com/fluentup/fluentup-be/internal/entity"
	"gorm.io/gorm"
)

type (
	GradingRepository interface {
		FindQuestionByID(db *gorm.DB, questionID uint) (*entity.DiscussionQuestion, error)
		FindReportByID(db *gorm.DB, reportID uint) (*entity.Report, error)

		// UpsertGradingRecord replaces any prior record with the same
		// (user, content, question) key.
		UpsertGradingRecord(db *gorm.DB, record *entity.GradingRecord) error
		FindGradingRecord(db *gorm.DB, userID string, contentID, questionID uint) (*entity.GradingRecord, error)

		MarkAnswered(db *gorm.DB, userID string, contentID uint) error
		MarkSummarized(db *gorm.DB, userID string, contentID uint) error
	}

	gradingRepository struct {
		db *gorm.DB
	}
)

func NewGradingRepository(db *gorm.DB) GradingRepository {
	return &gradingRepository{db: db}
}

func (r *gradingRepository) FindQuestionByID(db *gorm.DB, questionID uint) (*entity.DiscussionQuestion, error) {
	if db == nil {
		db = r.db
	}
	var question entity.DiscussionQuestion
	err := db.Where("id = ?", questionID).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *gradingRepository) FindReportByID(db *gorm.DB, reportID uint) (*entity.Report, error) {
	if db == nil {
		db = r.db
	}
	var report entity.Report
	err := db.Where("id = ?", reportID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *gradingRepository) UpsertGradingRecord(db *gorm.DB, record *entity.GradingRecord) error {
	if db == nil {
		db = r.db
	}
	// Upsert: update if exists, create if not. Assign takes a map so zero
	// values (a score of 0, an empty word count) still replace the stored
	// row; a struct Assign would skip them.
	return db.Where("user_id = ? AND content_id = ? AND question_id = ?",
		record.UserID, record.ContentID, record.QuestionID).
		Assign(map[string]any{
			"kind":           record.Kind,
			"submitted_text": record.SubmittedText,
			"score":          record.Score,
			"strengths":      record.Strengths,
			"improvements":   record.Improvements,
			"feedback":       record.Feedback,
			"word_count":     record.WordCount,
		}).FirstOrCreate(record).Error
}

func (r *gradingRepository) FindGradingRecord(db *gorm.DB, userID string, contentID, questionID uint) (*entity.GradingRecord, error) {
	if db == nil {
		db = r.db
	}
	var record entity.GradingRecord
	err := db.Where("user_id = ? AND content_id = ? AND question_id = ?",
		userID, contentID, questionID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *gradingRepository) MarkAnswered(db *gorm.DB, userID string, contentID uint) error {
	return r.upsertProgress(db, userID, contentID, map[string]any{"answered": true})
}

func (r *gradingRepository) MarkSummarized(db *gorm.DB, userID string, contentID uint) error {
	return r.upsertProgress(db, userID, contentID, map[string]any{"summarized": true})
}

func (r *gradingRepository) upsertProgress(db *gorm.DB, userID string, contentID uint, flags map[string]any) error {
	if db == nil {
		db = r.db
	}
	progress := entity.ContentProgress{UserID: userID, ContentID: contentID}
	return db.Where("user_id = ? AND content_id = ?", userID, contentID).
		Assign(flags).FirstOrCreate(&progress).Error
}
