package verifier

import "errors"

// Service errors for verification calls. ErrDecode is deliberately distinct
// from a rejected decision: a provider answering garbage is a service fault,
// not a judgment on the evidence.
var (
	ErrEmptyEvidence    = errors.New("evidence payload must not be empty")
	ErrUnsupportedMedia = errors.New("unsupported evidence media type")
	ErrModelUnavailable = errors.New("provider model not available")
	ErrNoProviders      = errors.New("no providers configured")
	ErrDecode           = errors.New("classifier response not decodable")
)
