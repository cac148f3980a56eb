// Package app_config holds the runtime configuration of the auto publisher.
// Everything is sourced from the environment so the same binary can run
// against dev and prod blogs by swapping .env files.
package app_config

import (
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type Config struct {
	// WordPress
	WordPressURL string
	Username     string
	AppPassword  string

	// Ollama (local text generation)
	OllamaBaseURL string
	OllamaModel   string

	// Blog settings
	DefaultCategoryID int
	AuthorID          int
	PostStatus        string

	// Content generation
	MinWordCount int
	MaxWordCount int
	PostsPerDay  int
	PostTime     string

	// Image services
	PexelsAPIKey string

	// Post tracker storage
	TrackerFile string
}

// FromEnv builds a Config from environment variables, falling back to the
// documented defaults for everything except credentials.
func FromEnv() *Config {
	return &Config{
		WordPressURL:      strings.TrimRight(getEnv("WORDPRESS_URL", "https://lookizm.com"), "/"),
		Username:          os.Getenv("WORDPRESS_USERNAME"),
		AppPassword:       os.Getenv("WORDPRESS_APP_PASSWORD"),
		OllamaBaseURL:     strings.TrimRight(getEnv("OLLAMA_BASE_URL", "http://localhost:11434"), "/"),
		OllamaModel:       getEnv("OLLAMA_MODEL", "unclemusclez/thedrummer-smegmma-v1:8b"),
		DefaultCategoryID: getEnvInt("BLOG_CATEGORY_ID", 1),
		AuthorID:          getEnvInt("AUTHOR_ID", 1),
		PostStatus:        getEnv("POST_STATUS", "publish"),
		MinWordCount:      getEnvInt("MIN_WORD_COUNT", 2500),
		MaxWordCount:      getEnvInt("MAX_WORD_COUNT", 3000),
		PostsPerDay:       getEnvInt("POSTS_PER_DAY", 1),
		PostTime:          getEnv("POST_TIME", "10:00"),
		PexelsAPIKey:      os.Getenv("PEXELS_API_KEY"),
		TrackerFile:       getEnv("TRACKER_FILE", "published_posts.json"),
	}
}

// Validate reports a configuration error when a required credential or
// endpoint is missing. A failed validation must abort before any work.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.WordPressURL, validation.Required, is.URL),
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.AppPassword, validation.Required),
		validation.Field(&c.OllamaBaseURL, validation.Required, is.URL),
		validation.Field(&c.OllamaModel, validation.Required),
		validation.Field(&c.PostTime, validation.Required, validation.Date("15:04")),
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
