package config

import "testing"

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = "postgres://localhost/appraisal"
	cfg.Environment = "production"
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}

	cfg.JWTSecret = "secret"
	cfg.RunSeed = true
	cfg.SeedAdminPassword = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for default seed password in production")
	}
}

func TestValidateLimits(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = "postgres://localhost/appraisal"
	cfg.MaxBodyBytes = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for tiny body limit")
	}

	cfg.MaxBodyBytes = 4096
	cfg.RateLimitPerMinute = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero rate limit")
	}

	cfg.RateLimitPerMinute = 30
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
