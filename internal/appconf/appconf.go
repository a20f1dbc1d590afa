// Package appconf holds application-level configuration shared by the API
// server, its handlers, and middleware.
package appconf

import "time"

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// EnvFlagToEnvironment maps the -env flag value to an Environment,
// defaulting to Development for anything unrecognized.
func EnvFlagToEnvironment(env string) Environment {
	switch env {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Config holds all the configuration settings for the application: the
// network port to listen on, the operating environment, the accepted API
// keys, and the open data credentials. Values come from command-line flags
// and environment variables at startup, or from a YAML file when -config
// is given.
type Config struct {
	Port            int
	Env             Environment
	ApiKeys         []string
	ServiceKey      string
	CityCode        int
	DataDir         string
	RefreshInterval time.Duration
	SessionTTL      time.Duration
}
