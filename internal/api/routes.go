package api

import (
	"net"
	"net/http"

	"github.com/talentgate/talentgate/internal/config"
	"github.com/talentgate/talentgate/pkg/middleware"
	"github.com/talentgate/talentgate/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	limiter := middleware.NewLimiter(runtime.Redis, runtime.Logger)

	verifications := domain.Verifications.Handler().
		WithMaxEvidenceSize(cfg.API.MaxEvidenceSizeBytes()).
		WithRateLimit(middleware.RateLimit(
			limiter,
			cfg.API.RateLimit.Limit,
			cfg.API.RateLimit.WindowDuration(),
			submissionKey,
		))

	routes.Register(
		mux,
		domain.Opportunities.Handler().Routes(),
		domain.Applications.Handler().Routes(),
		domain.Rewards.Handler().Routes(),
		verifications.Routes(),
	)
}

// submissionKey buckets evidence submissions by client address.
func submissionKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return ""
	}
	return "ratelimit:verifications:" + host
}
