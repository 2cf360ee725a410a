package options

import (
	"github.com/spf13/pflag"
)

// DNSOptions configures the optional local-DNS side channel (a
// Pi-hole-style custom DNS API) that publishes hostnames for published
// services. Leaving ProviderURL/Token empty disables publishing entirely.
type DNSOptions struct {
	ProviderURL string `json:"provider-url" mapstructure:"provider-url"`
	Token       string `json:"token" mapstructure:"token"`
	Suffix      string `json:"suffix" mapstructure:"suffix"`
	VerifyCert  bool   `json:"verify-cert" mapstructure:"verify-cert"`
}

func NewDNSOptions() *DNSOptions {
	return &DNSOptions{
		Suffix:     "lan",
		VerifyCert: true,
	}
}

func (d *DNSOptions) Validate() []error {
	// Intentionally permissive: an unset provider URL/token just means the
	// side channel is disabled, which is a valid deployment.
	return nil
}

func (d *DNSOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&d.ProviderURL, "dns.provider-url", d.ProviderURL, "Base URL of the local-DNS side-channel API (empty disables publishing)")
	fs.StringVar(&d.Token, "dns.token", d.Token, "API token for the local-DNS side-channel")
	fs.StringVar(&d.Suffix, "dns.suffix", d.Suffix, "DNS suffix appended to generated service hostnames")
	fs.BoolVar(&d.VerifyCert, "dns.verify-cert", d.VerifyCert, "Verify TLS certificates when calling the local-DNS side-channel")
}
