package config

import (
	"time"

	"github.com/fluentup/fluentup-be/internal/delivery/http/handler"
	"github.com/fluentup/fluentup-be/internal/delivery/http/middleware"
	"github.com/fluentup/fluentup-be/internal/delivery/http/repository"
	"github.com/fluentup/fluentup-be/internal/delivery/http/route"
	"github.com/fluentup/fluentup-be/internal/delivery/http/usecase"
	"github.com/fluentup/fluentup-be/internal/pkg/llm"
	"github.com/fluentup/fluentup-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator
}

func Bootstrap(config *BootstrapConfig) {

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	apiKey := ""
	model := ""
	baseURL := ""
	timeoutSeconds := 0
	fallbackScore := 0
	referenceMaxChars := 0
	if config.Config != nil {
		apiKey = config.Config.GetString("llm.api_key")
		model = config.Config.GetString("llm.model")
		baseURL = config.Config.GetString("llm.base_url")
		timeoutSeconds = config.Config.GetInt("llm.timeout_seconds")
		fallbackScore = config.Config.GetInt("grading.fallback_score")
		referenceMaxChars = config.Config.GetInt("grading.reference_max_chars")
	}

	oracle := llm.NewClient(apiKey, model, baseURL)
	scenarioRepo := repository.NewScenarioRepository(config.DB)
	sessionRepo := repository.NewSessionRepository(config.DB)
	gradingRepo := repository.NewGradingRepository(config.DB)

	conversationEngine := usecase.NewConversationEngine(usecase.ConversationEngineConfig{
		DB:        config.DB,
		Log:       config.Log,
		Scenarios: scenarioRepo,
		Sessions:  sessionRepo,
	})
	gradingEngine := usecase.NewGradingEngine(usecase.GradingEngineConfig{
		DB:                config.DB,
		Log:               config.Log,
		Oracle:            oracle,
		Repository:        gradingRepo,
		Timeout:           time.Duration(timeoutSeconds) * time.Second,
		FallbackScore:     fallbackScore,
		ReferenceMaxChars: referenceMaxChars,
	})
	statsEngine := usecase.NewStatsEngine(usecase.StatsEngineConfig{
		DB:       config.DB,
		Log:      config.Log,
		Sessions: sessionRepo,
	})

	conversationHandler := handler.NewConversationHandler(config.Validator, config.Log, conversationEngine)
	gradingHandler := handler.NewGradingHandler(config.Validator, config.Log, gradingEngine)
	statsHandler := handler.NewStatsHandler(config.Log, statsEngine)

	route.Setup(&route.RouteConfig{
		Api:                 config.Api,
		Middleware:          mid,
		ConversationHandler: conversationHandler,
		GradingHandler:      gradingHandler,
		StatsHandler:        statsHandler,
	})

}
