package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvVerifierToken    = "TALENTGATE_VERIFIER_TOKEN"
	EnvVerifierBaseURL  = "TALENTGATE_VERIFIER_BASE_URL"
	EnvVerifierAuthType = "TALENTGATE_VERIFIER_AUTH_TYPE"
)

// ProviderConfig describes a single classifier provider/model entry in the
// verification chain. Entries are attempted in declaration order.
type ProviderConfig struct {
	Name       string         `toml:"name"`
	BaseURL    string         `toml:"base_url"`
	Model      string         `toml:"model"`
	Deployment string         `toml:"deployment"`
	APIVersion string         `toml:"api_version"`
	Options    map[string]any `toml:"options"`
}

// VerifierConfig holds the ordered classifier provider chain.
type VerifierConfig struct {
	Providers []ProviderConfig `toml:"providers"`
}

// Merge replaces the provider chain when the overlay declares one.
// Chains merge atomically, never entry by entry: a partial merge could
// reorder the fallback sequence.
func (c *VerifierConfig) Merge(overlay *VerifierConfig) {
	if len(overlay.Providers) > 0 {
		c.Providers = overlay.Providers
	}
}

// Finalize applies environment variable overrides and validates the chain.
func (c *VerifierConfig) Finalize() error {
	c.loadEnv()
	return c.validate()
}

// AgentConfigs converts the provider chain into go-agents agent configurations,
// preserving declaration order.
func (c *VerifierConfig) AgentConfigs() []*gaconfig.AgentConfig {
	configs := make([]*gaconfig.AgentConfig, 0, len(c.Providers))

	for _, p := range c.Providers {
		options := make(map[string]any, len(p.Options)+3)
		for k, v := range p.Options {
			options[k] = v
		}
		if p.Deployment != "" {
			options["deployment"] = p.Deployment
		}
		if p.APIVersion != "" {
			options["api_version"] = p.APIVersion
		}

		agent := &gaconfig.AgentConfig{
			Name: fmt.Sprintf("verify-%s-%s", p.Name, p.Model),
			Provider: &gaconfig.ProviderConfig{
				Name:    p.Name,
				BaseURL: p.BaseURL,
				Options: options,
			},
			Model: &gaconfig.ModelConfig{
				Name: p.Model,
			},
		}

		defaults := gaconfig.DefaultAgentConfig()
		defaults.Merge(agent)
		configs = append(configs, &defaults)
	}

	return configs
}

func (c *VerifierConfig) loadEnv() {
	token := os.Getenv(EnvVerifierToken)
	authType := os.Getenv(EnvVerifierAuthType)
	baseURL := os.Getenv(EnvVerifierBaseURL)

	for i := range c.Providers {
		if c.Providers[i].Options == nil {
			c.Providers[i].Options = make(map[string]any)
		}
		if token != "" {
			c.Providers[i].Options["token"] = token
		}
		if authType != "" {
			c.Providers[i].Options["auth_type"] = authType
		}
		if baseURL != "" && c.Providers[i].BaseURL == "" {
			c.Providers[i].BaseURL = baseURL
		}
	}
}

func (c *VerifierConfig) validate() error {
	if len(c.Providers) == 0 {
		return fmt.Errorf("at least one provider required")
	}
	for i, p := range c.Providers {
		if p.Name == "" {
			return fmt.Errorf("provider %d: name required", i)
		}
		if p.Model == "" {
			return fmt.Errorf("provider %d (%s): model required", i, p.Name)
		}
	}
	return nil
}
