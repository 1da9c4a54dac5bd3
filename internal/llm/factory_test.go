package llm

import (
	"strings"
	"testing"
)

func TestNewProvider_OpenAI(t *testing.T) {
	p, err := NewProvider(Config{Provider: "openai", APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Expected provider openai, got %s", p.Name())
	}
}

func TestNewProvider_OpenAIRequiresKey(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Errorf("Expected an error without an API key")
	}
}

func TestNewProvider_CaseInsensitive(t *testing.T) {
	p, err := NewProvider(Config{Provider: "OpenAI", APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Expected provider openai, got %s", p.Name())
	}
}

func TestNewProvider_EmptyDisablesLLM(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("Empty provider must not error, got %v", err)
	}
	if p != nil {
		t.Errorf("Expected nil provider, got %v", p)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "gemini"})
	if err == nil {
		t.Fatal("Expected an error for unknown provider")
	}
	if !strings.Contains(err.Error(), "gemini") {
		t.Errorf("Error should name the provider: %v", err)
	}
}
