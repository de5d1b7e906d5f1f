package usecase

import (
	"context"
	"errors"
	"testing"

	internalEntity "github.com/fluentup/fluentup-be/internal/entity"
	"gorm.io/gorm"
)

func seedStatsData(sessions *fakeSessionRepo) {
	sessions.sessions[1] = internalEntity.ScenarioSession{ID: 1, UserID: "user-1", ScenarioID: 1, Completed: true}
	sessions.sessions[2] = internalEntity.ScenarioSession{ID: 2, UserID: "user-1", ScenarioID: 1, Completed: true}
	sessions.sessions[3] = internalEntity.ScenarioSession{ID: 3, UserID: "user-1", ScenarioID: 2}
	sessions.sessions[4] = internalEntity.ScenarioSession{ID: 4, UserID: "someone-else", ScenarioID: 1, Completed: true}

	sessions.results[1] = internalEntity.SessionResult{SessionID: 1, UserID: "user-1", TotalScore: 80, FinalOutcome: "promotion"}
	sessions.results[2] = internalEntity.SessionResult{SessionID: 2, UserID: "user-1", TotalScore: 60, FinalOutcome: "neutral"}
	sessions.results[4] = internalEntity.SessionResult{SessionID: 4, UserID: "someone-else", TotalScore: 90, FinalOutcome: "success"}
}

func TestGetStats(t *testing.T) {
	sessions := newFakeSessionRepo()
	seedStatsData(sessions)

	engine := NewStatsEngine(StatsEngineConfig{
		Log:      testLogger(),
		Sessions: sessions,
	})

	stats, err := engine.GetStats(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalSessions != 3 {
		t.Errorf("total sessions = %d, want 3", stats.TotalSessions)
	}
	if stats.CompletedSessions != 2 {
		t.Errorf("completed sessions = %d, want 2", stats.CompletedSessions)
	}
	if stats.AverageScore != 70 {
		t.Errorf("average score = %d, want 70", stats.AverageScore)
	}
	if stats.BestOutcomeCount != 1 {
		t.Errorf("best outcome count = %d, want 1", stats.BestOutcomeCount)
	}
}

func TestGetStatsUnknownUser(t *testing.T) {
	sessions := newFakeSessionRepo()
	seedStatsData(sessions)

	engine := NewStatsEngine(StatsEngineConfig{
		Log:      testLogger(),
		Sessions: sessions,
	})

	stats, err := engine.GetStats(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalSessions != 0 || stats.CompletedSessions != 0 || stats.AverageScore != 0 || stats.BestOutcomeCount != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
}

// brokenScoresRepo fails the average-score sub-query only.
type brokenScoresRepo struct {
	*fakeSessionRepo
}

func (b *brokenScoresRepo) FindResultScoresByUserID(_ *gorm.DB, _ string) ([]int, error) {
	return nil, errors.New("relation does not exist")
}

func TestGetStatsDegradesOnSubQueryFailure(t *testing.T) {
	sessions := newFakeSessionRepo()
	seedStatsData(sessions)

	engine := NewStatsEngine(StatsEngineConfig{
		Log:      testLogger(),
		Sessions: &brokenScoresRepo{fakeSessionRepo: sessions},
	})

	stats, err := engine.GetStats(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetStats must not fail on a sub-query error, got %v", err)
	}
	if stats.AverageScore != 0 {
		t.Errorf("failing sub-query should degrade to 0, got %d", stats.AverageScore)
	}
	// The other sub-queries still contribute.
	if stats.TotalSessions != 3 || stats.CompletedSessions != 2 || stats.BestOutcomeCount != 1 {
		t.Errorf("unaffected sub-queries degraded too: %+v", stats)
	}
}
