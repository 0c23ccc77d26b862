package postgres

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", cfg.Host)
	}
	if cfg.Port != 5432 {
		t.Errorf("Port = %d, want 5432", cfg.Port)
	}
	if cfg.Database != "usda" {
		t.Errorf("Database = %q, want usda", cfg.Database)
	}
	if cfg.User != "postgres" {
		t.Errorf("User = %q, want postgres", cfg.User)
	}
	if cfg.SSLMode != "disable" {
		t.Errorf("SSLMode = %q, want disable", cfg.SSLMode)
	}
	if cfg.MaxConns != 4 {
		t.Errorf("MaxConns = %d, want 4", cfg.MaxConns)
	}
	if cfg.MinConns != 0 {
		t.Errorf("MinConns = %d, want 0", cfg.MinConns)
	}
	if cfg.MaxConnLifetime != time.Hour {
		t.Errorf("MaxConnLifetime = %v, want 1h", cfg.MaxConnLifetime)
	}
	if cfg.MaxConnIdleTime != 30*time.Minute {
		t.Errorf("MaxConnIdleTime = %v, want 30m", cfg.MaxConnIdleTime)
	}
	if cfg.ConnectTimeout != 10*time.Second {
		t.Errorf("ConnectTimeout = %v, want 10s", cfg.ConnectTimeout)
	}
}

func TestConnectionString(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Host:     "db.internal",
		Port:     5433,
		Database: "usda",
		User:     "reader",
		Password: "secret",
		SSLMode:  "require",
	}

	got := cfg.ConnectionString()
	want := "host=db.internal port=5433 dbname=usda user=reader password=secret sslmode=require"
	if got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}

func TestRedacted(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Host:     "db.internal",
		Port:     5433,
		Database: "usda",
		User:     "reader",
		Password: "secret",
		SSLMode:  "require",
	}

	got := cfg.Redacted()
	if strings.Contains(got, "secret") {
		t.Errorf("Redacted() = %q, contains password", got)
	}
	if !strings.Contains(got, "host=db.internal") {
		t.Errorf("Redacted() = %q, missing host", got)
	}
	if !strings.Contains(got, "dbname=usda") {
		t.Errorf("Redacted() = %q, missing database", got)
	}
}

func TestConfigOptions(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	opts := []ConfigOption{
		WithHost("db.example.com"),
		WithPort(6432),
		WithDatabase("sr28"),
		WithCredentials("app", "s3cret"),
		WithSSLMode("verify-full"),
		WithPoolSize(2, 16),
		WithConnectTimeout(5 * time.Second),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Host != "db.example.com" {
		t.Errorf("Host = %q", cfg.Host)
	}
	if cfg.Port != 6432 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.Database != "sr28" {
		t.Errorf("Database = %q", cfg.Database)
	}
	if cfg.User != "app" || cfg.Password != "s3cret" {
		t.Errorf("credentials = %q/%q", cfg.User, cfg.Password)
	}
	if cfg.SSLMode != "verify-full" {
		t.Errorf("SSLMode = %q", cfg.SSLMode)
	}
	if cfg.MinConns != 2 || cfg.MaxConns != 16 {
		t.Errorf("pool size = %d/%d", cfg.MinConns, cfg.MaxConns)
	}
	if cfg.ConnectTimeout != 5*time.Second {
		t.Errorf("ConnectTimeout = %v", cfg.ConnectTimeout)
	}
}
