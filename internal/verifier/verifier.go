// Package verifier implements the evidence verification service for
// talentgate. It submits candidate evidence to an external vision classifier
// through an ordered provider/model fallback chain and parses the accept or
// reject decision out of the raw model output.
package verifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/JaimeStill/go-agents/pkg/format"

	"github.com/talentgate/talentgate/pkg/formatting"
)

// Blob is an evidence payload with its media type.
type Blob struct {
	Data      []byte
	MediaType string
}

// Request carries one verification call's inputs. Milestone is free text
// claimed by the candidate; the verifier does not validate it against the
// pipeline, that is the transition engine's job.
type Request struct {
	Milestone    string
	EmployerName string
	Evidence     Blob
}

// Decision is the classifier's verdict on a piece of evidence.
type Decision struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// System defines the public contract for evidence verification.
type System interface {
	Verify(ctx context.Context, req Request) (*Decision, error)
}

// decisionPayload is the structured result the classifier is instructed to
// embed in its response text.
type decisionPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const promptTemplate = `You are verifying a candidate's evidence for a hiring milestone.
The candidate claims completion of the milestone %q for the employer %q.
Examine the attached image and determine whether it credibly demonstrates that milestone.
Respond with exactly one JSON object: {"success": <bool>, "message": "<short reason>"}.
Do not include any other structured content in your response.`

// visionFunc submits one vision prompt with attached images against a single
// provider/model configuration and returns the raw response text.
type visionFunc func(ctx context.Context, cfg *gaconfig.AgentConfig, prompt string, images []format.Image) (string, error)

type service struct {
	chain  *Chain
	invoke visionFunc
	logger *slog.Logger
}

// New creates a verification service over the given provider chain.
func New(configs []*gaconfig.AgentConfig, logger *slog.Logger) System {
	scoped := logger.With("system", "verifier")
	return &service{
		chain:  NewChain(configs, scoped),
		invoke: callAgent,
		logger: scoped,
	}
}

func callAgent(ctx context.Context, cfg *gaconfig.AgentConfig, prompt string, images []format.Image) (string, error) {
	a, err := agent.New(cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Vision(ctx, prompt, images)
	if err != nil {
		return "", fmt.Errorf("vision call: %w", err)
	}

	return resp.Text(), nil
}

func (s *service) Verify(ctx context.Context, req Request) (*Decision, error) {
	if len(req.Evidence.Data) == 0 {
		return nil, ErrEmptyEvidence
	}

	if !SupportedMedia(req.Evidence.MediaType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, req.Evidence.MediaType)
	}

	dataURI, err := encoding.EncodeImageDataURI(req.Evidence.Data, document.PNG)
	if err != nil {
		return nil, fmt.Errorf("encode evidence: %w", err)
	}

	prompt := fmt.Sprintf(promptTemplate, req.Milestone, req.EmployerName)

	content, cfg, err := s.chain.Execute(ctx, func(ctx context.Context, cfg *gaconfig.AgentConfig) (string, error) {
		return s.invoke(ctx, cfg, prompt, []format.Image{{URL: dataURI}})
	})
	if err != nil {
		return nil, err
	}

	payload, err := formatting.Extract[decisionPayload](content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	decision := &Decision{
		Accepted: payload.Success,
		Message:  payload.Message,
		Provider: cfg.Provider.Name,
		Model:    cfg.Model.Name,
	}

	s.logger.Info("evidence classified",
		"milestone", req.Milestone,
		"accepted", decision.Accepted,
		"provider", decision.Provider,
		"model", decision.Model,
	)
	return decision, nil
}

// SupportedMedia reports whether the verifier can submit evidence of the
// given media type to the vision classifier.
func SupportedMedia(mediaType string) bool {
	return mediaType == "image/png"
}
