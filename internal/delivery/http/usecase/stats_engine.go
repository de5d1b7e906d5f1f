package usecase

import (
	"context"

	apiEntity "github.com/fluentup/fluentup-be/internal/delivery/http/entity"
	"github.com/fluentup/fluentup-be/internal/delivery/http/repository"
	"github.com/fluentup/fluentup-be/internal/pkg/scoring"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type StatsEngine interface {
	GetStats(ctx context.Context, userID string) (*apiEntity.UserStats, error)
}

type StatsEngineConfig struct {
	DB       *gorm.DB
	Log      *logrus.Logger
	Sessions repository.SessionRepository
}

type statsEngine struct {
	cfg StatsEngineConfig
}

func NewStatsEngine(cfg StatsEngineConfig) StatsEngine {
	return &statsEngine{cfg: cfg}
}

func (u *statsEngine) dbCtx(ctx context.Context) *gorm.DB {
	if u.cfg.DB == nil {
		return nil
	}
	return u.cfg.DB.WithContext(ctx)
}

// GetStats runs the four independent sub-queries in parallel. A failing
// sub-query is logged and degrades to its zero value; the call itself never
// fails, favoring read availability over completeness.
func (u *statsEngine) GetStats(ctx context.Context, userID string) (*apiEntity.UserStats, error) {
	db := u.dbCtx(ctx)

	type result struct {
		apply func(*apiEntity.UserStats)
		name  string
		err   error
	}

	resultChan := make(chan result, 4)

	go func() {
		count, err := u.cfg.Sessions.CountSessionsByUserID(db, userID)
		resultChan <- result{name: "total_sessions", err: err, apply: func(s *apiEntity.UserStats) { s.TotalSessions = count }}
	}()
	go func() {
		count, err := u.cfg.Sessions.CountCompletedSessionsByUserID(db, userID)
		resultChan <- result{name: "completed_sessions", err: err, apply: func(s *apiEntity.UserStats) { s.CompletedSessions = count }}
	}()
	go func() {
		scores, err := u.cfg.Sessions.FindResultScoresByUserID(db, userID)
		avg := scoring.Average(scores)
		resultChan <- result{name: "average_score", err: err, apply: func(s *apiEntity.UserStats) { s.AverageScore = avg }}
	}()
	go func() {
		count, err := u.cfg.Sessions.CountResultsByOutcomes(db, userID, scoring.BestOutcomeLabels())
		resultChan <- result{name: "best_outcome_count", err: err, apply: func(s *apiEntity.UserStats) { s.BestOutcomeCount = count }}
	}()

	stats := &apiEntity.UserStats{}
	for i := 0; i < 4; i++ {
		r := <-resultChan
		if r.err != nil {
			u.cfg.Log.WithFields(logrus.Fields{
				"user_id": userID,
				"query":   r.name,
			}).WithError(r.err).Warn("stats sub-query failed, using zero value")
			continue
		}
		r.apply(stats)
	}

	return stats, nil
}
