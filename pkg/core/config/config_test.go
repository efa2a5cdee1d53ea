package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Port != 8080 || cfg.MonteCarloTrials != 1000 {
		t.Errorf("defaults wrong: %+v", cfg)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	body := "port: 9000\nmonte_carlo_trials: 250\nrandom_seed: 42\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "9100")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9100 {
		t.Errorf("env PORT should win over file: %d", cfg.Port)
	}
	if cfg.MonteCarloTrials != 250 || cfg.RandomSeed != 42 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("env REDIS_ADDR not applied: %s", cfg.RedisAddr)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	os.WriteFile(path, []byte("port: [not a number"), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
