package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/lockbot/internal/trends"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Run("all set", func(t *testing.T) {
		c, err := CredentialsFromEnv(envOf(map[string]string{
			EnvXAIKey:    "test_xai_key",
			EnvOpenAIKey: "test_openai_key",
			EnvCohereKey: "test_co_key",
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, c.XAIKey, "test_xai_key")
		testboil.FailTestIfDiff(t, c.OpenAIKey, "test_openai_key")
		testboil.FailTestIfDiff(t, c.CohereKey, "test_co_key")
	})

	t.Run("lists every missing variable", func(t *testing.T) {
		_, err := CredentialsFromEnv(envOf(map[string]string{EnvOpenAIKey: "k"}))
		var missing *MissingEnvError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingEnvError, got: %v", err)
		}
		testboil.FailTestIfDiff(t, len(missing.Vars), 2)
		testboil.FailTestIfDiff(t, err.Error(), "missing required environment variables: XAI_API_KEY, CO_API_KEY")
	})
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvXAIKey, "x")
	t.Setenv(EnvOpenAIKey, "o")
	t.Setenv(EnvCohereKey, "c")
	dir := t.TempDir()

	conf, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, conf.DefaultService, "grok")
	testboil.FailTestIfDiff(t, conf.HistoryMax, 10)
	testboil.FailTestIfDiff(t, conf.LogFile, filepath.Join(dir, "lockbot.log"))
	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	clients := conf.Clients()
	if clients.XAI == nil || clients.OpenAI == nil || clients.Cohere == nil {
		t.Fatalf("expected every client to be constructed, got: %+v", clients)
	}
	if _, ok := conf.TrendLookup().(trends.Static); !ok {
		t.Fatalf("expected static trend lookup without source url")
	}
}

func TestLoadMissingEnv(t *testing.T) {
	t.Setenv(EnvXAIKey, "")
	t.Setenv(EnvOpenAIKey, "")
	t.Setenv(EnvCohereKey, "")
	t.Chdir(t.TempDir())

	_, err := Load(t.TempDir())
	var missing *MissingEnvError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingEnvError, got: %v", err)
	}
	testboil.FailTestIfDiff(t, len(missing.Vars), 3)
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv(EnvXAIKey, "")
	os.Unsetenv(EnvXAIKey)
	t.Setenv(EnvOpenAIKey, "from-env")
	path := filepath.Join(t.TempDir(), ".env")
	content := "XAI_API_KEY=from-file\nOPENAI_API_KEY=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, os.Getenv(EnvXAIKey), "from-file")
	testboil.FailTestIfDiff(t, os.Getenv(EnvOpenAIKey), "from-env")

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored, got: %v", err)
	}
}

func TestTrendLookupWebsite(t *testing.T) {
	conf := Config{File: File{TrendSourceURL: "http://example.invalid"}}
	w, ok := conf.TrendLookup().(trends.Website)
	if !ok {
		t.Fatalf("expected website lookup")
	}
	testboil.FailTestIfDiff(t, w.URL, "http://example.invalid")
}
