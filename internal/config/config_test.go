package config

import (
	"os"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_ThresholdAboveOne(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Search:   SearchConfig{SimilarityThreshold: 1.5, MaxResults: 5, CandidateLimit: 20},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for similarity threshold above 1")
	}
}

func TestValidate_MaxResultsAboveCandidateLimit(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Search:   SearchConfig{SimilarityThreshold: 0.5, MaxResults: 50, CandidateLimit: 20},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when max_results exceeds candidate_limit")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.LLM.TimeoutSec != 20 {
		t.Errorf("expected LLM TimeoutSec=20, got %d", cfg.LLM.TimeoutSec)
	}
	if cfg.Embedding.Dimensions != 1536 {
		t.Errorf("expected embedding Dimensions=1536, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Search.SimilarityThreshold != 0.35 {
		t.Errorf("expected SimilarityThreshold=0.35, got %g", cfg.Search.SimilarityThreshold)
	}
	if cfg.Search.MaxResults != 10 {
		t.Errorf("expected MaxResults=10, got %d", cfg.Search.MaxResults)
	}
	if cfg.Search.CandidateLimit != 20 {
		t.Errorf("expected CandidateLimit=20, got %d", cfg.Search.CandidateLimit)
	}
	if cfg.Search.RecentSearches != 3 {
		t.Errorf("expected RecentSearches=3, got %d", cfg.Search.RecentSearches)
	}
	if cfg.Index.HNSWM != 32 {
		t.Errorf("expected HNSWM=32, got %d", cfg.Index.HNSWM)
	}
	if cfg.Index.HNSWEFConstruct != 400 {
		t.Errorf("expected HNSWEFConstruct=400, got %d", cfg.Index.HNSWEFConstruct)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PRODSEARCH_TEST_KEY", "secret")

	in := []byte("api_key: ${PRODSEARCH_TEST_KEY}\nmodel: ${PRODSEARCH_TEST_MODEL:-gpt-4o-mini}\n")
	out := string(expandEnvVars(in))

	want := "api_key: secret\nmodel: gpt-4o-mini\n"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}

func TestGetEnv_Default(t *testing.T) {
	old := os.Getenv("ENV")
	defer func() { _ = os.Setenv("ENV", old) }()
	_ = os.Unsetenv("ENV")

	if env := GetEnv(); env != "local" {
		t.Errorf("expected default env local, got %q", env)
	}
}
