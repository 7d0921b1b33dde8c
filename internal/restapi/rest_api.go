package restapi

import (
	"time"

	"eudash.dev/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	limiter := NewRateLimitMiddleware(app.Config.RateLimit, time.Second)
	if app.Config.TrustProxy {
		limiter.TrustForwardedFor()
	}
	return &RestAPI{
		Application: app,
		rateLimiter: limiter,
	}
}

// Close releases the rate limiter's background cleanup.
func (api *RestAPI) Close() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
