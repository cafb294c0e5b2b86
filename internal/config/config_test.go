package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxArticles != 35 {
		t.Errorf("expected MaxArticles 35, got %d", cfg.MaxArticles)
	}
	if cfg.MaxPerBucket != 8 {
		t.Errorf("expected MaxPerBucket 8, got %d", cfg.MaxPerBucket)
	}
	if cfg.FeedsConfigPath != "configs/feeds.yaml" {
		t.Errorf("unexpected feeds path %q", cfg.FeedsConfigPath)
	}
	if cfg.EmailEnabled() {
		t.Error("email should be disabled without SMTP settings")
	}
	if cfg.TelegramEnabled() {
		t.Error("telegram should be disabled without token")
	}
}

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when GEMINI_API_KEY is missing")
	}
}

func TestLoadEmailList(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "bot@example.com")
	t.Setenv("EMAIL_TO", "a@example.com, b@example.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.EmailTo) != 2 {
		t.Fatalf("expected 2 recipients, got %v", cfg.EmailTo)
	}
	if cfg.EmailFrom != "bot@example.com" {
		t.Errorf("EmailFrom should default to SMTP_USER, got %q", cfg.EmailFrom)
	}
	if !cfg.EmailEnabled() {
		t.Error("email should be enabled")
	}
}

func TestValidateSMTPWithoutRecipients(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("EMAIL_TO", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SMTP_HOST is set without EMAIL_TO")
	}
}
