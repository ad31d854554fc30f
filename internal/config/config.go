// Package config loads credentials from the environment and settings from
// the JSONC configuration file, and builds the backend clients from them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/baalimago/lockbot/internal/dispatch"
	"github.com/baalimago/lockbot/internal/models"
	"github.com/baalimago/lockbot/internal/trends"
	"github.com/baalimago/lockbot/internal/utils"
	"github.com/baalimago/lockbot/internal/vendors/cohere"
	"github.com/baalimago/lockbot/internal/vendors/openai"
	"github.com/baalimago/lockbot/internal/vendors/xai"
	"github.com/openai/openai-go/option"
)

const (
	EnvXAIKey    = "XAI_API_KEY"
	EnvOpenAIKey = "OPENAI_API_KEY"
	EnvCohereKey = "CO_API_KEY"

	FileName = "config.json"
)

// File is the user editable part of the configuration.
type File struct {
	DefaultService string `json:"default_service"`
	XAIURL         string `json:"xai_url"`
	OpenAIBaseURL  string `json:"openai_base_url,omitempty"`
	CohereURL      string `json:"cohere_url"`
	HistoryMax     int    `json:"history_max"`
	TrendSourceURL string `json:"trend_source_url,omitempty"`
	LogFile        string `json:"log_file"`
	LogMaxSizeMB   int    `json:"log_max_size_mb"`
	LogBackups     int    `json:"log_backups"`
}

var DefaultFile = File{
	DefaultService: "grok",
	XAIURL:         xai.ChatURL,
	CohereURL:      cohere.ChatURL,
	HistoryMax:     models.DefaultHistoryMax,
	LogFile:        "lockbot.log",
	LogMaxSizeMB:   10,
	LogBackups:     5,
}

type Credentials struct {
	XAIKey    string
	OpenAIKey string
	CohereKey string
}

// MissingEnvError lists every required variable which was not set.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Vars, ", ")
}

type Config struct {
	File
	Credentials
	Dir string
}

// LoadDotEnv loads path into the environment. Variables which are already
// set are kept. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load '%v': %w", path, err)
	}
	return nil
}

// CredentialsFromEnv reads one key per backend using getenv.
func CredentialsFromEnv(getenv func(string) string) (Credentials, error) {
	c := Credentials{
		XAIKey:    getenv(EnvXAIKey),
		OpenAIKey: getenv(EnvOpenAIKey),
		CohereKey: getenv(EnvCohereKey),
	}
	var missing []string
	if c.XAIKey == "" {
		missing = append(missing, EnvXAIKey)
	}
	if c.OpenAIKey == "" {
		missing = append(missing, EnvOpenAIKey)
	}
	if c.CohereKey == "" {
		missing = append(missing, EnvCohereKey)
	}
	if len(missing) > 0 {
		return c, &MissingEnvError{Vars: missing}
	}
	return c, nil
}

// Load reads the .env file in the working directory, the credentials from
// the environment and the config file from dir.
func Load(dir string) (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	creds, err := CredentialsFromEnv(os.Getenv)
	if err != nil {
		return Config{}, err
	}
	file, err := utils.LoadConfigFromFile(dir, FileName, &DefaultFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config file: %w", err)
	}
	if file.LogFile != "" && !filepath.IsAbs(file.LogFile) {
		file.LogFile = filepath.Join(dir, file.LogFile)
	}
	return Config{File: file, Credentials: creds, Dir: dir}, nil
}

// Clients constructs one client per backend.
func (c Config) Clients() dispatch.Clients {
	var openaiOpts []option.RequestOption
	if c.OpenAIBaseURL != "" {
		openaiOpts = append(openaiOpts, option.WithBaseURL(c.OpenAIBaseURL))
	}
	return dispatch.Clients{
		XAI:    xai.New(c.XAIURL, c.XAIKey, nil),
		OpenAI: openai.New(c.OpenAIKey, openaiOpts...),
		Cohere: cohere.New(c.CohereURL, c.CohereKey, nil),
	}
}

// TrendLookup is the website scraper when a source is configured, the
// static placeholder otherwise.
func (c Config) TrendLookup() trends.Lookup {
	if c.TrendSourceURL == "" {
		return trends.Static{}
	}
	return trends.Website{URL: c.TrendSourceURL, MaxRunes: trends.DefaultMaxRunes}
}
