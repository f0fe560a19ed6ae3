package config_test

import (
	"testing"

	"github.com/talentgate/talentgate/internal/config"
)

func TestVerifierFinalizeRequiresProviders(t *testing.T) {
	cfg := config.VerifierConfig{}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for empty provider chain")
	}
}

func TestVerifierFinalizeRequiresNameAndModel(t *testing.T) {
	cfg := config.VerifierConfig{
		Providers: []config.ProviderConfig{
			{Name: "azure"},
		},
	}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for provider without model")
	}
}

func TestVerifierEnvAppliedToAllProviders(t *testing.T) {
	t.Setenv(config.EnvVerifierToken, "secret-token")

	cfg := config.VerifierConfig{
		Providers: []config.ProviderConfig{
			{Name: "azure", Model: "gpt-4o"},
			{Name: "openai", Model: "gpt-4o-mini"},
		},
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	for i, p := range cfg.Providers {
		if p.Options["token"] != "secret-token" {
			t.Errorf("provider %d missing token option", i)
		}
	}
}

func TestAgentConfigsPreserveOrder(t *testing.T) {
	cfg := config.VerifierConfig{
		Providers: []config.ProviderConfig{
			{Name: "azure", Model: "gpt-4o", Deployment: "vision-prod"},
			{Name: "openai", Model: "gpt-4o-mini"},
		},
	}

	agents := cfg.AgentConfigs()
	if len(agents) != 2 {
		t.Fatalf("got %d agent configs, want 2", len(agents))
	}

	if agents[0].Provider.Name != "azure" || agents[1].Provider.Name != "openai" {
		t.Error("fallback order must match declaration order")
	}
	if agents[0].Model.Name != "gpt-4o" {
		t.Errorf("got model %q", agents[0].Model.Name)
	}
	if agents[0].Provider.Options["deployment"] != "vision-prod" {
		t.Error("deployment must flow into provider options")
	}
}

func TestVerifierMergeReplacesChainAtomically(t *testing.T) {
	base := config.VerifierConfig{
		Providers: []config.ProviderConfig{
			{Name: "azure", Model: "gpt-4o"},
			{Name: "openai", Model: "gpt-4o-mini"},
		},
	}

	base.Merge(&config.VerifierConfig{
		Providers: []config.ProviderConfig{
			{Name: "ollama", Model: "llava"},
		},
	})

	if len(base.Providers) != 1 || base.Providers[0].Name != "ollama" {
		t.Errorf("overlay must replace the whole chain, got %+v", base.Providers)
	}

	base.Merge(&config.VerifierConfig{})
	if len(base.Providers) != 1 {
		t.Error("empty overlay must leave the chain untouched")
	}
}

func TestRedisDefaults(t *testing.T) {
	cfg := config.RedisConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Enabled {
		t.Error("redis must default to disabled")
	}
	if cfg.Addr != "localhost:6379" {
		t.Errorf("got addr %q", cfg.Addr)
	}

	opts := cfg.Options()
	if opts.Addr != cfg.Addr {
		t.Errorf("options addr %q does not match config", opts.Addr)
	}
}
