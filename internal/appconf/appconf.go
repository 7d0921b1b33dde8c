package appconf

import (
	"strings"
	"time"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// Config holds all the configuration settings for the Application.
type Config struct {
	Port         int
	Env          Environment
	RateLimit    int // requests per second per client
	SourceURL    string
	FetchTimeout time.Duration
	Verbose      bool
	TrustProxy   bool // key rate limits on X-Forwarded-For
}

// EnvFlagToEnvironment maps the -env flag value to an Environment.
// Unknown values fall back to Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Production:
		return "production"
	case Test:
		return "test"
	default:
		return "development"
	}
}
