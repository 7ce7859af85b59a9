// Package sweego implements mail.Mailer on top of the Sweego
// transactional email REST API (https://api.sweego.io).
package sweego

const (
	// DefaultEndpoint is the Sweego send endpoint.
	DefaultEndpoint = "https://api.sweego.io/send"

	// providerName is the provider identifier used on the wire.
	providerName = "sweego"

	// channelEmail is the only channel this adapter speaks.
	channelEmail = "email"
)

// Config contains Sweego API connection parameters.
type Config struct {
	APIKey    string `envconfig:"SWEEGO_API_KEY" required:"true"`    // API key for the Api-Key header
	FromEmail string `envconfig:"SWEEGO_FROM_EMAIL" required:"true"` // default sender address
	FromName  string `envconfig:"SWEEGO_FROM_NAME"`                  // default sender display name
	DryRun    bool   `envconfig:"SWEEGO_DRY_RUN" default:"false"`    // accept but do not deliver (test mode)
	Endpoint  string `envconfig:"SWEEGO_ENDPOINT"`                   // override for tests / proxies
}

// GetEndpoint returns the endpoint to use, defaulting to the public
// Sweego API if not set.
func (c *Config) GetEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return DefaultEndpoint
}
