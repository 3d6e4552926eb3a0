package configs

import (
	"testing"
	"time"
)

func TestGetters(t *testing.T) {
	t.Setenv("X_BOOL", "false")
	t.Setenv("X_INT", "42")
	t.Setenv("X_DUR", "90s")
	t.Setenv("X_BAD", "nope")

	if GetBool("X_BOOL", true) {
		t.Fatal("X_BOOL should be false")
	}
	if GetBool("X_BAD", true) != true {
		t.Fatal("unparsable bool falls back to default")
	}
	if GetInt("X_INT", 0) != 42 || GetInt("X_BAD", 7) != 7 {
		t.Fatal("GetInt")
	}
	if GetDuration("X_DUR", 0) != 90*time.Second || GetDuration("X_MISSING", time.Minute) != time.Minute {
		t.Fatal("GetDuration")
	}
	if GetEnv("X_MISSING", "d") != "d" {
		t.Fatal("GetEnv default")
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("PORT", "8080")

	cfg := LoadEnv()
	if cfg.Port != "8080" || len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadEnvTimezone(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	t.Setenv("APP_TIMEZONE", "Nowhere/Atlantis")
	if cfg := LoadEnv(); cfg.Timezone != "UTC" || cfg.Location == nil {
		t.Fatalf("unknown zone: %q %v", cfg.Timezone, cfg.Location)
	}

	t.Setenv("APP_TIMEZONE", "UTC")
	if cfg := LoadEnv(); cfg.Location != time.UTC {
		t.Fatalf("location = %v", cfg.Location)
	}
}
