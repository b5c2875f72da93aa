package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server      Server      `mapstructure:"server"`
	Log         Log         `mapstructure:"log"`
	Ark         Ark         `mapstructure:"ark"`
	OpenRouter  OpenRouter  `mapstructure:"openrouter"`
	RemoveBG    RemoveBG    `mapstructure:"removebg"`
	Recognition Recognition `mapstructure:"recognition"`
}

type Server struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb" validate:"min=1"`
}

type Log struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Pretty bool   `mapstructure:"pretty"`
}

// Ark holds the Volcengine Ark credentials shared by image generation and recognition.
type Ark struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	ImageModel  string        `mapstructure:"image_model" validate:"required"`
	VisionModel string        `mapstructure:"vision_model" validate:"required"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type OpenRouter struct {
	APIKey      string `mapstructure:"api_key"`
	VisionModel string `mapstructure:"vision_model"`
}

type RemoveBG struct {
	APIKey  string        `mapstructure:"api_key"`
	URL     string        `mapstructure:"url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type Recognition struct {
	Provider             string `mapstructure:"provider" validate:"oneof=ark openrouter"`
	DefaultPrompt        string `mapstructure:"default_prompt"`
	ExposeUpstreamErrors bool   `mapstructure:"expose_upstream_errors"`
}

// MaxUploadBytes is the request body limit for upload routes.
func (s Server) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_upload_mb", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("ark.api_key", "")
	v.SetDefault("ark.base_url", "https://ark.cn-beijing.volces.com/api/v3")
	v.SetDefault("ark.image_model", "doubao-seedream-4-0-250828")
	v.SetDefault("ark.vision_model", "doubao-seed-1-6-vision-250815")
	v.SetDefault("ark.timeout", "90s")

	v.SetDefault("openrouter.api_key", "")
	v.SetDefault("openrouter.vision_model", "google/gemini-2.5-flash")

	v.SetDefault("removebg.api_key", "")
	v.SetDefault("removebg.url", "https://api.remove.bg/v1.0/removebg")
	v.SetDefault("removebg.timeout", "60s")

	v.SetDefault("recognition.provider", "ark")
	v.SetDefault("recognition.default_prompt", "")
	v.SetDefault("recognition.expose_upstream_errors", false)
}

// Load reads config.toml from the given directories, falling back to the working directory. The file is optional;
// every key can be set from the environment with dots replaced by underscores, e.g. ARK_API_KEY.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
