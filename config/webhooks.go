package config

import "time"

// WebhookConfig contains outbound webhook configuration. The lemlist URL
// differs between environments (test vs production n8n webhooks).
type WebhookConfig struct {
	// LemlistURL is the webhook that forwards verified leads into lemlist.
	LemlistURL string `env:"LEMLIST_WEBHOOK_URL"`

	// Timeout bounds each webhook delivery attempt.
	Timeout time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"10s"`

	// RetryLimit is the number of additional delivery attempts after the first.
	RetryLimit int `env:"WEBHOOK_RETRY_LIMIT" envDefault:"2"`
}

// Sanitize applies guardrails to webhook configuration values.
func (c *WebhookConfig) Sanitize() {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.RetryLimit < 0 {
		c.RetryLimit = 0
	}
}
