package usecase

import (
	"context"
	"errors"
	"fmt"

	apiEntity "github.com/fluentup/fluentup-be/internal/delivery/http/entity"
	"github.com/fluentup/fluentup-be/internal/delivery/http/repository"
	internalEntity "github.com/fluentup/fluentup-be/internal/entity"
	"github.com/fluentup/fluentup-be/internal/pkg/apperr"
	"github.com/fluentup/fluentup-be/internal/pkg/mapper"
	"github.com/fluentup/fluentup-be/internal/pkg/scoring"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ConversationEngine interface {
	ListScenarios(ctx context.Context) ([]apiEntity.ScenarioView, error)
	StartSession(ctx context.Context, userID string, scenarioID uint) (*apiEntity.SessionView, error)
	ApplyChoice(ctx context.Context, sessionID uint, optionID uint) (*apiEntity.SessionView, error)
	Finalize(ctx context.Context, sessionID uint, finalOutcome string) (*apiEntity.SessionResultView, error)
	SaveResult(ctx context.Context, req apiEntity.SaveResultRequest) (*apiEntity.SessionResultView, error)
}

type ConversationEngineConfig struct {
	DB        *gorm.DB
	Log       *logrus.Logger
	Scenarios repository.ScenarioRepository
	Sessions  repository.SessionRepository
}

type conversationEngine struct {
	cfg ConversationEngineConfig
}

func NewConversationEngine(cfg ConversationEngineConfig) ConversationEngine {
	return &conversationEngine{cfg: cfg}
}

// dbCtx binds the request context to the shared handle. A nil handle stays
// nil so repositories fall back to their own.
func (u *conversationEngine) dbCtx(ctx context.Context) *gorm.DB {
	if u.cfg.DB == nil {
		return nil
	}
	return u.cfg.DB.WithContext(ctx)
}

func (u *conversationEngine) ListScenarios(ctx context.Context) ([]apiEntity.ScenarioView, error) {
	scenarios, err := u.cfg.Scenarios.FindActiveScenarios(u.dbCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	return mapper.ToScenarioViews(scenarios), nil
}

func (u *conversationEngine) StartSession(ctx context.Context, userID string, scenarioID uint) (*apiEntity.SessionView, error) {
	db := u.dbCtx(ctx)

	scenario, err := u.cfg.Scenarios.FindScenarioByID(db, scenarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("scenario_missing", fmt.Sprintf("scenario %d does not exist", scenarioID))
		}
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}

	startNode, err := u.cfg.Scenarios.FindStartNode(db, scenario.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("start_node_missing", fmt.Sprintf("scenario %d has no start node", scenarioID))
		}
		return nil, fmt.Errorf("failed to load start node: %w", err)
	}

	options, err := u.cfg.Scenarios.FindOptionsByNodeID(db, startNode.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load start options: %w", err)
	}

	// Multiple active sessions per (user, scenario) are permitted but worth
	// noticing in the logs.
	if existing, err := u.cfg.Sessions.FindIncompleteSession(db, userID, scenarioID); err == nil && existing != nil {
		u.cfg.Log.WithFields(logrus.Fields{
			"user_id":     userID,
			"scenario_id": scenarioID,
			"session_id":  existing.ID,
		}).Warn("starting a new session while an incomplete one exists")
	}

	session := &internalEntity.ScenarioSession{
		UserID:         userID,
		ScenarioID:     scenario.ID,
		CurrentNodeKey: internalEntity.StartNodeKey,
		History:        "[]",
		TotalScore:     0,
		Completed:      false,
	}
	if err := u.cfg.Sessions.CreateSession(db, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	view := mapper.ToSessionView(session, startNode.Content, options)
	return &view, nil
}

func (u *conversationEngine) ApplyChoice(ctx context.Context, sessionID uint, optionID uint) (*apiEntity.SessionView, error) {
	db := u.dbCtx(ctx)

	session, err := u.cfg.Sessions.FindSessionByID(db, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session_missing", fmt.Sprintf("session %d does not exist", sessionID))
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.Completed {
		return nil, apperr.InvalidState("session_completed", "session is already completed")
	}

	currentNode, err := u.cfg.Scenarios.FindNode(db, session.ScenarioID, session.CurrentNodeKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("node_missing", fmt.Sprintf("node %q does not exist in scenario %d", session.CurrentNodeKey, session.ScenarioID))
		}
		return nil, fmt.Errorf("failed to load current node: %w", err)
	}

	currentOptions, err := u.cfg.Scenarios.FindOptionsByNodeID(db, currentNode.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}

	// The chosen option must hang off the current node; anything else is a
	// stale or forged client state and must not touch the session.
	chosen := findOption(currentOptions, optionID)
	if chosen == nil {
		return nil, apperr.InvalidArgument("option_not_in_current_node", fmt.Sprintf("option %d does not belong to node %q", optionID, session.CurrentNodeKey))
	}

	history, err := mapper.DecodeHistory(session.History)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session history: %w", err)
	}
	history = append(history, internalEntity.HistoryEntry{
		NodeKey:    session.CurrentNodeKey,
		OptionID:   chosen.ID,
		OptionText: chosen.Text,
		Points:     chosen.Score,
	})

	var nextNode *internalEntity.DialogueNode
	var nextOptions []internalEntity.ResponseOption
	completed := isTerminalTarget(chosen.NextNodeKey)

	if !completed {
		nextNode, err = u.cfg.Scenarios.FindNode(db, session.ScenarioID, chosen.NextNodeKey)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("next_node_missing", fmt.Sprintf("node %q does not exist in scenario %d", chosen.NextNodeKey, session.ScenarioID))
			}
			return nil, fmt.Errorf("failed to load next node: %w", err)
		}
		nextOptions, err = u.cfg.Scenarios.FindOptionsByNodeID(db, nextNode.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load next options: %w", err)
		}
		// A node without outgoing options is terminal.
		if len(nextOptions) == 0 {
			completed = true
		}
		session.CurrentNodeKey = chosen.NextNodeKey
	}

	encoded, err := mapper.EncodeHistory(history)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session history: %w", err)
	}

	expectedVersion := session.Version
	session.History = encoded
	session.TotalScore += chosen.Score
	session.Completed = completed

	rows, err := u.cfg.Sessions.UpdateSessionVersioned(db, session, expectedVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	if rows == 0 {
		return nil, apperr.InvalidState("session_conflict", "session was modified concurrently, reload and retry")
	}
	session.Version = expectedVersion + 1

	nodeContent := ""
	if nextNode != nil {
		nodeContent = nextNode.Content
	}
	if completed {
		nextOptions = nil
	}

	view := mapper.ToSessionView(session, nodeContent, nextOptions)
	return &view, nil
}

func (u *conversationEngine) Finalize(ctx context.Context, sessionID uint, finalOutcome string) (*apiEntity.SessionResultView, error) {
	db := u.dbCtx(ctx)

	session, err := u.cfg.Sessions.FindSessionByID(db, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session_missing", fmt.Sprintf("session %d does not exist", sessionID))
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	// Finalize is idempotent per session.
	if existing, err := u.cfg.Sessions.FindResultBySessionID(db, sessionID); err == nil && existing != nil {
		view := mapper.ToResultView(existing)
		return &view, nil
	}

	if !session.Completed {
		return nil, apperr.InvalidState("session_not_completed", "session has not reached a terminal node")
	}

	history, err := mapper.DecodeHistory(session.History)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session history: %w", err)
	}
	if len(history) < 1 {
		return nil, apperr.InvalidState("session_has_no_turns", "cannot finalize a session without turns")
	}

	result, err := buildResult(session.UserID, session.ScenarioID, session.ID, session.TotalScore, len(history), finalOutcome, session.History)
	if err != nil {
		return nil, err
	}

	if err := u.cfg.Sessions.CreateResult(db, result); err != nil {
		return nil, fmt.Errorf("failed to persist session result: %w", err)
	}

	view := mapper.ToResultView(result)
	return &view, nil
}

func (u *conversationEngine) SaveResult(ctx context.Context, req apiEntity.SaveResultRequest) (*apiEntity.SessionResultView, error) {
	db := u.dbCtx(ctx)

	if req.Turns < 1 {
		return nil, apperr.InvalidArgument("turns_out_of_range", "turns must be at least 1")
	}

	if _, err := u.cfg.Scenarios.FindScenarioByID(db, req.ScenarioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("scenario_missing", fmt.Sprintf("scenario %d does not exist", req.ScenarioID))
		}
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}

	encoded, err := mapper.EncodeHistory(mapper.FromHistoryViews(req.History))
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}

	// Attach the result to the learner's open session when one exists,
	// otherwise record a completed session for the audit trail. The adopted
	// session takes the request's history and total so its row stays
	// consistent with the result.
	var sessionID uint
	if session, err := u.cfg.Sessions.FindIncompleteSession(db, req.UserID, req.ScenarioID); err == nil && session != nil {
		if err := u.cfg.Sessions.CompleteSession(db, session.ID, encoded, req.TotalScore); err != nil {
			return nil, fmt.Errorf("failed to complete session: %w", err)
		}
		sessionID = session.ID
	} else {
		session := &internalEntity.ScenarioSession{
			UserID:         req.UserID,
			ScenarioID:     req.ScenarioID,
			CurrentNodeKey: internalEntity.TerminalNodeKey,
			History:        encoded,
			TotalScore:     req.TotalScore,
			Completed:      true,
		}
		if err := u.cfg.Sessions.CreateSession(db, session); err != nil {
			return nil, fmt.Errorf("failed to record session: %w", err)
		}
		sessionID = session.ID
	}

	if existing, err := u.cfg.Sessions.FindResultBySessionID(db, sessionID); err == nil && existing != nil {
		view := mapper.ToResultView(existing)
		return &view, nil
	}

	result, err := buildResult(req.UserID, req.ScenarioID, sessionID, req.TotalScore, req.Turns, req.FinalOutcome, encoded)
	if err != nil {
		return nil, err
	}

	if err := u.cfg.Sessions.CreateResult(db, result); err != nil {
		return nil, fmt.Errorf("failed to persist session result: %w", err)
	}

	view := mapper.ToResultView(result)
	return &view, nil
}

// buildResult derives the facet scores and outcome tier for a finished
// traversal. turnCount must already be validated as >= 1.
func buildResult(userID string, scenarioID, sessionID uint, totalScore, turnCount int, finalOutcome, historyJSON string) (*internalEntity.SessionResult, error) {
	facets, err := scoring.DeriveFacetScores(totalScore, turnCount)
	if err != nil {
		return nil, apperr.InvalidState("session_has_no_turns", err.Error())
	}

	return &internalEntity.SessionResult{
		SessionID:       sessionID,
		UserID:          userID,
		ScenarioID:      scenarioID,
		TotalScore:      totalScore,
		TurnCount:       turnCount,
		GrammarScore:    facets.Grammar,
		ExpressionScore: facets.Expression,
		OutcomeScore:    scoring.OutcomeScore(finalOutcome),
		FinalOutcome:    finalOutcome,
		Summary:         buildResultSummary(totalScore, turnCount, finalOutcome),
		History:         historyJSON,
	}, nil
}

func buildResultSummary(totalScore, turnCount int, finalOutcome string) string {
	return fmt.Sprintf("Completed %d turns with a total score of %d and a %q outcome.", turnCount, totalScore, finalOutcome)
}

// findOption returns the option with the given id, or nil if it is not among
// the node's options.
func findOption(options []internalEntity.ResponseOption, optionID uint) *internalEntity.ResponseOption {
	for i := range options {
		if options[i].ID == optionID {
			return &options[i]
		}
	}
	return nil
}

// isTerminalTarget reports whether a transition target ends the conversation.
func isTerminalTarget(nextNodeKey string) bool {
	return nextNodeKey == "" || nextNodeKey == internalEntity.TerminalNodeKey
}
