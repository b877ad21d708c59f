package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/career-companion/internal/adapters/llm"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "companion",
		Short:         "Career guidance and wellbeing assistant for job seekers",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.PersistentFlags()
	flags.String("language", "en", "conversation language: en, zu, xh or af")
	flags.Bool("use-mock-llm", false, "use the offline scripted model instead of Gemini")
	flags.String("model-name", llm.DefaultModelName, "Gemini model name")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("speech-command", "espeak-ng", "text-to-speech program used to read messages aloud")

	root.AddCommand(newServeCmd(), newChatCmd())
	return root
}
