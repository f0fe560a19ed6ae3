package verifier_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/talentgate/talentgate/internal/verifier"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chainConfig(provider, model string) *gaconfig.AgentConfig {
	return &gaconfig.AgentConfig{
		Name: "verify-" + provider + "-" + model,
		Provider: &gaconfig.ProviderConfig{
			Name: provider,
		},
		Model: &gaconfig.ModelConfig{
			Name: model,
		},
	}
}

func TestExecuteFirstProviderSucceeds(t *testing.T) {
	chain := verifier.NewChain([]*gaconfig.AgentConfig{
		chainConfig("azure", "gpt-4o"),
		chainConfig("openai", "gpt-4o"),
	}, testLogger())

	calls := 0
	content, cfg, err := chain.Execute(context.Background(), func(ctx context.Context, c *gaconfig.AgentConfig) (string, error) {
		calls++
		return `{"success": true}`, nil
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if content != `{"success": true}` {
		t.Errorf("got content %q", content)
	}
	if cfg.Provider.Name != "azure" {
		t.Errorf("expected azure config, got %s", cfg.Provider.Name)
	}
}

func TestExecuteSkipsUnavailableProvider(t *testing.T) {
	chain := verifier.NewChain([]*gaconfig.AgentConfig{
		chainConfig("azure", "gpt-4o"),
		chainConfig("openai", "gpt-4o"),
	}, testLogger())

	var tried []string
	content, cfg, err := chain.Execute(context.Background(), func(ctx context.Context, c *gaconfig.AgentConfig) (string, error) {
		tried = append(tried, c.Provider.Name)
		if c.Provider.Name == "azure" {
			return "", errors.New("deployment not found")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(tried) != 2 || tried[0] != "azure" || tried[1] != "openai" {
		t.Errorf("expected ordered fallback, got %v", tried)
	}
	if content != "ok" || cfg.Provider.Name != "openai" {
		t.Errorf("got content %q from %s", content, cfg.Provider.Name)
	}
}

func TestExecuteAbortsOnTerminalError(t *testing.T) {
	chain := verifier.NewChain([]*gaconfig.AgentConfig{
		chainConfig("azure", "gpt-4o"),
		chainConfig("openai", "gpt-4o"),
	}, testLogger())

	authErr := errors.New("401 unauthorized")
	calls := 0
	_, _, err := chain.Execute(context.Background(), func(ctx context.Context, c *gaconfig.AgentConfig) (string, error) {
		calls++
		return "", authErr
	})
	if !errors.Is(err, authErr) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("terminal error must abort the chain, got %d calls", calls)
	}
}

func TestExecuteExhaustionReturnsLastError(t *testing.T) {
	chain := verifier.NewChain([]*gaconfig.AgentConfig{
		chainConfig("azure", "gpt-4o"),
		chainConfig("openai", "gpt-4o"),
	}, testLogger())

	_, _, err := chain.Execute(context.Background(), func(ctx context.Context, c *gaconfig.AgentConfig) (string, error) {
		return "", errors.New(c.Provider.Name + ": model not found")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "openai: model not found" {
		t.Errorf("expected last error surfaced, got %q", got)
	}
}

func TestExecuteEmptyChain(t *testing.T) {
	chain := verifier.NewChain(nil, testLogger())

	_, _, err := chain.Execute(context.Background(), func(ctx context.Context, c *gaconfig.AgentConfig) (string, error) {
		t.Fatal("call must not run with no providers")
		return "", nil
	})
	if !errors.Is(err, verifier.ErrNoProviders) {
		t.Errorf("expected ErrNoProviders, got %v", err)
	}
}

func TestUnavailable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"sentinel", verifier.ErrModelUnavailable, true},
		{"wrapped sentinel", errors.Join(errors.New("call failed"), verifier.ErrModelUnavailable), true},
		{"model not found", errors.New("Model not found: gpt-5"), true},
		{"deployment missing", errors.New("Deployment not found"), true},
		{"unknown model", errors.New("unknown model requested"), true},
		{"unauthorized", errors.New("401 unauthorized"), false},
		{"quota", errors.New("rate limit exceeded"), false},
		{"network", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := verifier.Unavailable(tt.err); got != tt.expected {
				t.Errorf("Unavailable(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}
