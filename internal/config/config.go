package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/i18n"
	"github.com/PabloGalante/career-companion/internal/observability"
)

const envPrefix = "COMPANION"

type Config struct {
	Host string
	Port string

	APIKey    string
	ModelName string
	// UseMockLLM runs against the offline scripted gateway.
	UseMockLLM bool

	Language domain.LanguageCode

	SpeechCommand     string
	RecordCommand     string
	MaxImageDimension int

	LogLevel string
}

// Addr is the listen address of the HTTP bridge.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func defaults(v *viper.Viper) {
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", "8080")
	v.SetDefault("model_name", "gemini-2.5-flash")
	v.SetDefault("use_mock_llm", false)
	v.SetDefault("language", string(i18n.DefaultLanguage))
	v.SetDefault("speech_command", "espeak-ng")
	v.SetDefault("record_command", "arecord -q -f cd -t wav")
	v.SetDefault("max_image_dimension", 2048)
	v.SetDefault("log_level", "info")
}

// LoadDotEnv reads .env from the working directory when present.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		observability.Logger().Debug("no .env file loaded, using environment only", "error", err)
	}
}

// Load builds the config from defaults, COMPANION_* environment variables
// and, when flags is not nil, command line flags of the same name
// (dashes instead of underscores). The API key is also read from
// GEMINI_API_KEY and API_KEY.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api_key", envPrefix+"_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api key: %w", err)
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	cfg := &Config{
		Host:              v.GetString("host"),
		Port:              v.GetString("port"),
		APIKey:            strings.TrimSpace(v.GetString("api_key")),
		ModelName:         v.GetString("model_name"),
		UseMockLLM:        v.GetBool("use_mock_llm"),
		SpeechCommand:     v.GetString("speech_command"),
		RecordCommand:     v.GetString("record_command"),
		MaxImageDimension: v.GetInt("max_image_dimension"),
		LogLevel:          v.GetString("log_level"),
	}

	lang, ok := i18n.Normalize(v.GetString("language"))
	if !ok {
		return nil, fmt.Errorf("unsupported language %q", v.GetString("language"))
	}
	cfg.Language = lang

	if cfg.MaxImageDimension <= 0 {
		return nil, fmt.Errorf("max_image_dimension must be positive, got %d", cfg.MaxImageDimension)
	}

	return cfg, nil
}
