package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/nulzo/greencode-advisor/internal/llm"
	"github.com/nulzo/greencode-advisor/internal/llm/google"
	"github.com/spf13/viper"
)

const envPrefix = "ENV:"

type Config struct {
	Server    ServerConfig              `mapstructure:"server"`
	Log       LogConfig                 `mapstructure:"log"`
	OpenAI    OpenAIConfig              `mapstructure:"openai"`
	Gemini    GeminiConfig              `mapstructure:"gemini"`
	Mock      MockConfig                `mapstructure:"mock"`
	Analysis  AnalysisConfig            `mapstructure:"analysis"`
	HTTP      HTTPConfig                `mapstructure:"http"`
	Tracing   TracingConfig             `mapstructure:"tracing"`
	Updates   UpdatesConfig             `mapstructure:"updates"`
	Providers map[string]ProviderConfig `mapstructure:"providers"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" validate:"required"`
	Env  string `mapstructure:"env"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error fatal"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type OpenAIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Model   string `mapstructure:"model" validate:"required"`
}

type GeminiConfig struct {
	BaseURL         string            `mapstructure:"base_url" validate:"required,url"`
	Versions        []string          `mapstructure:"versions" validate:"min=1,dive,required"`
	PreferredModels []string          `mapstructure:"preferred_models"`
	Fallbacks       []google.Fallback `mapstructure:"fallbacks"`
}

type MockConfig struct {
	Delay time.Duration `mapstructure:"delay" validate:"gte=0"`
}

type AnalysisConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type UpdatesConfig struct {
	Check bool `mapstructure:"check"`
}

// ProviderConfig holds caller-side settings for one provider.
type ProviderConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// LoadConfig reads configuration from file or environment variables. The
// file named by CONFIG_FILE wins over ./config.yaml.
func LoadConfig() (*Config, error) {
	return LoadConfigFile(os.Getenv("CONFIG_FILE"))
}

// LoadConfigFile is LoadConfig with an explicit file. An empty path searches
// for config.yaml in . and ./config.
func LoadConfigFile(path string) (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	// Resolve API keys
	for name, p := range cfg.Providers {
		p.APIKey = resolve(v, p.APIKey)
		cfg.Providers[name] = p
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-3.5-turbo")

	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.versions", google.DefaultVersions)
	v.SetDefault("gemini.preferred_models", google.DefaultPreferredModels)
	v.SetDefault("gemini.fallbacks", fallbackDefaults())

	v.SetDefault("mock.delay", time.Second)
	v.SetDefault("analysis.timeout", 90*time.Second)
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("updates.check", true)

	// Known keys so PROVIDERS_OPENAI_API_KEY style overrides are picked up.
	v.SetDefault("providers.openai.api_key", envPrefix+"OPENAI_API_KEY")
	v.SetDefault("providers.gemini.api_key", envPrefix+"GEMINI_API_KEY")
}

func fallbackDefaults() []map[string]string {
	out := make([]map[string]string, 0, len(google.DefaultFallbacks))
	for _, f := range google.DefaultFallbacks {
		out = append(out, map[string]string{"version": f.Version, "model": f.Model})
	}
	return out
}

func resolve(v *viper.Viper, value string) string {
	if !strings.HasPrefix(value, envPrefix) {
		return value
	}
	envVar := strings.TrimPrefix(value, envPrefix)
	// Check process environment first (explicit override)
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return v.GetString(envVar)
}

// ProviderKey is the configuration key for a provider: "openai", "gemini",
// "grok" or "llama".
func ProviderKey(p llm.Provider) string {
	return strings.ToLower(strings.Fields(p.String())[0])
}

// DefaultKey returns the configured credential for p, or "".
func (c *Config) DefaultKey(p llm.Provider) string {
	return c.Providers[ProviderKey(p)].APIKey
}
