package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected port default: %q", cfg.Port)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("unexpected token ttl default: %v", cfg.TokenTTL)
	}
	if cfg.ActivityWorkers != 4 {
		t.Fatalf("unexpected worker default: %d", cfg.ActivityWorkers)
	}
	if cfg.Mongo.Database != "studytrack" {
		t.Fatalf("unexpected mongo db default: %q", cfg.Mongo.Database)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("REDIS_ADDR", "redis:6380")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != "9090" || cfg.TokenTTL != 30*time.Minute || cfg.Redis.Addr != "redis:6380" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoad_NonPositiveTokenTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "0s")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for zero TOKEN_TTL")
	}
}
