package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Driver: "valkey",
			Addrs:  []string{"localhost:6379"},
		},
		Search: SearchConfig{BaseURL: "http://localhost:8983"},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingValkeyAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = []string{}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing valkey addrs")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "memcached"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}

	expected := `database.driver must be "valkey" or "redis", got "memcached"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_SearchBaseURL(t *testing.T) {
	for _, bad := range []string{"", "localhost:8983", "/solr", "http://"} {
		t.Run("base_url="+bad, func(t *testing.T) {
			cfg := validConfig()
			cfg.Search.BaseURL = bad
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected error for base_url %q", bad)
			}
		})
	}
}

func TestValidate_SeedIDs(t *testing.T) {
	cfg := validConfig()
	cfg.Seed.Articles = []SeedArticle{
		{ID: "0f8fad5b-d9cb-469f-a165-70867728950e", Title: "ok"},
		{ID: "not-a-guid", Title: "bad"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid seed id")
	}
	if !strings.Contains(err.Error(), "seed.articles[1].id") {
		t.Errorf("expected error to name the offending entry, got %q", err.Error())
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != "valkey" {
		t.Errorf("expected Driver=valkey, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Search.TimeoutMS != 5000 {
		t.Errorf("expected TimeoutMS=5000, got %d", cfg.Search.TimeoutMS)
	}
	if cfg.Search.Timeout() != 5*time.Second {
		t.Errorf("expected Timeout()=5s, got %v", cfg.Search.Timeout())
	}
	if cfg.Storage.KeyPrefix != "contentd:" {
		t.Errorf("expected KeyPrefix='contentd:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: "redis", ReadinessTimeout: 15},
		Search:   SearchConfig{TimeoutMS: 250},
		Storage:  StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != "redis" {
		t.Errorf("expected Driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.Search.TimeoutMS != 250 {
		t.Errorf("expected TimeoutMS=250, got %d", cfg.Search.TimeoutMS)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CONTENTD_TEST_SOLR", "http://solr:8983")

	in := []byte("a: ${CONTENTD_TEST_SOLR}\nb: ${CONTENTD_TEST_UNSET:-fallback}\nc: ${CONTENTD_TEST_UNSET}")
	got := string(expandEnvVars(in))

	want := "a: http://solr:8983\nb: fallback\nc: "
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("CONTENTD_TEST_PORT", "9090")

	path := filepath.Join(t.TempDir(), "test.yaml")
	data := `
http:
  port: ${CONTENTD_TEST_PORT}
database:
  driver: redis
  addrs: ["localhost:6379"]
search:
  base_url: "http://localhost:8983"
  timeout_ms: 1500
seed:
  articles:
    - id: "0f8fad5b-d9cb-469f-a165-70867728950e"
      title: "Hello"
      body: "World"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Search.Timeout() != 1500*time.Millisecond {
		t.Errorf("expected 1500ms budget, got %v", cfg.Search.Timeout())
	}
	if len(cfg.Seed.Articles) != 1 || cfg.Seed.Articles[0].Title != "Hello" {
		t.Errorf("unexpected seed: %+v", cfg.Seed.Articles)
	}
	if cfg.Storage.KeyPrefix != "contentd:" {
		t.Errorf("expected default key prefix, got %q", cfg.Storage.KeyPrefix)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Search.TimeoutMS != 5000 {
		t.Errorf("expected local search budget 5000ms, got %d", cfg.Search.TimeoutMS)
	}
}
