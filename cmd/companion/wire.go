package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/career-companion/internal/adapters/llm"
	"github.com/PabloGalante/career-companion/internal/adapters/speech"
	"github.com/PabloGalante/career-companion/internal/adapters/storage/memory"
	"github.com/PabloGalante/career-companion/internal/app/conversation"
	"github.com/PabloGalante/career-companion/internal/app/jobs"
	"github.com/PabloGalante/career-companion/internal/app/tools"
	"github.com/PabloGalante/career-companion/internal/config"
	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/observability"
	"github.com/PabloGalante/career-companion/internal/transcode"
)

// loadConfig reads .env, environment and flags, then configures logging.
// quietLevel replaces the log level unless one was set explicitly.
func loadConfig(cmd *cobra.Command, logOut io.Writer, quietLevel string) (*config.Config, error) {
	config.LoadDotEnv()

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if quietLevel != "" && !cmd.Flags().Changed("log-level") && !envSet("COMPANION_LOG_LEVEL") {
		level = quietLevel
	}
	observability.Configure(level, logOut)
	return cfg, nil
}

func buildService(cfg *config.Config) *conversation.Service {
	var gateway domain.ModelGateway
	if cfg.UseMockLLM {
		observability.Logger().Info("using mock model gateway")
		gateway = llm.NewMockGateway()
	} else {
		observability.Logger().Info("using gemini model gateway", "model", cfg.ModelName)
		gateway = llm.NewGeminiGateway(cfg.APIKey, cfg.ModelName)
	}

	registry := tools.NewRegistry(
		tools.NewFindJobsTool(jobs.NewDirectory(nil)),
	)

	return conversation.NewService(
		gateway,
		registry,
		memory.NewMessageLog(),
		memory.NewSessionRegistry(),
		conversation.WithSpeaker(speech.NewCommandSpeaker(cfg.SpeechCommand)),
		conversation.WithDocumentEncoder(transcode.NewImageEncoder(cfg.MaxImageDimension)),
	)
}
