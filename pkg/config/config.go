package config

import (
	"log"
	"os"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Apify struct {
		Token   string `env:"APIFY_TOKEN"`
		BaseURL string `env:"APIFY_BASE_URL" env-default:"https://api.apify.com"`
		// Actor identifiers use the "~" form Apify expects in URL paths.
		PostsActor   string `env:"APIFY_POSTS_ACTOR" env-default:"louisdeconinck~instagram-profile-posts-scraper"`
		ProfileActor string `env:"APIFY_PROFILE_ACTOR" env-default:"apify~instagram-profile-scraper"`
	}
	OpenAI struct {
		ApiKey  string `env:"OPENAI_API_KEY"`
		BaseURL string `env:"OPENAI_BASE_URL"`
		Model   string `env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

// New reads the configuration from the environment exactly once.
// Service credentials (APIFY_TOKEN, OPENAI_API_KEY) are intentionally not
// validated here: their absence is reported by the client that first needs them.
func New() (*Config, error) {
	once.Do(func() {
		if _, err := os.Stat(".env"); err == nil {
			_ = godotenv.Load()
		}

		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
