package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("missing config file should fall back to defaults: %v", err)
	}
	if cfg.Runs != 100 || cfg.SeedBase != 1 || cfg.SeedStep != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Operator.Name == "" || cfg.Operator.Weapon == "" {
		t.Fatal("operator defaults should be populated")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	body := `{"runs": 7, "seedBase": 99, "operator": {"name": "Okafor", "distanceM": 22.5}}`
	if err := os.WriteFile(filepath.Join(dir, "skirmish.cfg.json"), []byte(body), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Runs != 7 || cfg.SeedBase != 99 {
		t.Fatalf("file values should win: %+v", cfg)
	}
	if cfg.Operator.Name != "Okafor" || cfg.Operator.DistanceM != 22.5 {
		t.Fatalf("nested operator values should win: %+v", cfg.Operator)
	}
	if cfg.SeedStep != 1 {
		t.Fatalf("unset keys keep defaults, got seedStep=%d", cfg.SeedStep)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "skirmish.cfg.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("a malformed config file must fail loudly")
	}
}

func TestValidate_Rejections(t *testing.T) {
	base := func() *Config {
		return &Config{
			Runs:     10,
			SeedBase: 1,
			SeedStep: 1,
			Operator: OperatorConfig{
				Name:                "Reyes",
				Weapon:              "MK2 Carbine",
				Accuracy:            0.75,
				AccuracyProficiency: 0.65,
				DistanceM:           15,
			},
		}
	}

	bad := []func(*Config){
		func(c *Config) { c.Runs = 0 },
		func(c *Config) { c.SeedStep = 0 },
		func(c *Config) { c.Operator.Accuracy = 1.5 },
		func(c *Config) { c.Operator.AccuracyProficiency = -0.1 },
		func(c *Config) { c.Operator.DistanceM = 0 },
	}
	for i, mutate := range bad {
		cfg := base()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("mutation %d should have failed validation", i)
		}
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("baseline config should validate: %v", err)
	}
}
