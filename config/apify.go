package config

import "time"

// ApifyConfig contains configuration for the Apify actor platform that runs
// the Apollo scraping actor.
type ApifyConfig struct {
	// Token is the Apify API token. Required for all scraper endpoints;
	// requests fail with a configuration error when unset.
	Token string `env:"API_TOKEN"`

	// BaseURL is the Apify API root.
	BaseURL string `env:"BASE_URL" envDefault:"https://api.apify.com"`

	// ActorID identifies the Apollo scraping actor to run.
	ActorID string `env:"ACTOR_ID" envDefault:"code_crafter~apollo-io-scraper"`

	// Timeout bounds each HTTP call to the Apify API.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Configured reports whether the Apify integration is usable.
func (c *ApifyConfig) Configured() bool {
	return c.Token != ""
}

// Sanitize applies guardrails to Apify configuration values.
func (c *ApifyConfig) Sanitize() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}
