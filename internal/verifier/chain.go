package verifier

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// CallFunc performs one classifier call against a single provider/model
// configuration and returns the raw response content.
type CallFunc func(ctx context.Context, cfg *gaconfig.AgentConfig) (string, error)

// Chain executes classifier calls against an ordered list of provider/model
// configurations, strictly sequentially. Sequential execution is a hard
// requirement: probing providers in parallel would consume metered quota on
// every entry for every submission.
type Chain struct {
	configs []*gaconfig.AgentConfig
	logger  *slog.Logger
}

// NewChain creates a Chain over the given configurations in fallback order.
func NewChain(configs []*gaconfig.AgentConfig, logger *slog.Logger) *Chain {
	return &Chain{
		configs: configs,
		logger:  logger.With("system", "verifier-chain"),
	}
}

// Execute tries each configuration in order until one succeeds. An
// unavailable model skips to the next entry; any other error aborts the
// chain immediately so authorization and quota failures are never masked by
// pointless retries against further providers. Exhausting the chain returns
// the last error encountered, which is the most specific diagnosis available.
func (c *Chain) Execute(ctx context.Context, call CallFunc) (string, *gaconfig.AgentConfig, error) {
	if len(c.configs) == 0 {
		return "", nil, ErrNoProviders
	}

	var lastErr error
	for _, cfg := range c.configs {
		content, err := call(ctx, cfg)
		if err == nil {
			return content, cfg, nil
		}

		if !Unavailable(err) {
			return "", cfg, err
		}

		c.logger.Warn("provider unavailable, advancing chain",
			"provider", cfg.Provider.Name,
			"model", cfg.Model.Name,
			"error", err,
		)
		lastErr = err
	}

	return "", nil, lastErr
}

// unavailableMarkers are response fragments that identify the non-terminal
// "model/provider not offered" error class across providers.
var unavailableMarkers = []string{
	"model not found",
	"model_not_found",
	"no such model",
	"is not available",
	"not available",
	"does not exist",
	"unknown model",
	"deployment not found",
}

// Unavailable reports whether err belongs to the non-terminal error class
// that permits falling through to the next provider in the chain.
func Unavailable(err error) bool {
	if errors.Is(err, ErrModelUnavailable) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range unavailableMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
