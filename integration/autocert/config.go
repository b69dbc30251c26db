package autocert

import (
	"fmt"
	"strings"
	"time"
)

// Config holds ACME certificate settings.
type Config struct {
	Domains  []string `env:"AUTOCERT_DOMAINS" envSeparator:","`
	Email    string   `env:"AUTOCERT_EMAIL"`
	CacheDir string   `env:"AUTOCERT_CACHE_DIR" envDefault:".cache/autocert"`

	// DirectoryURL overrides the ACME directory, e.g. the Let's Encrypt staging endpoint.
	DirectoryURL string        `env:"AUTOCERT_DIRECTORY_URL"`
	RenewBefore  time.Duration `env:"AUTOCERT_RENEW_BEFORE" envDefault:"720h"`

	// HTTPAddr serves http-01 challenges and redirects to HTTPS. Empty leaves only tls-alpn-01.
	HTTPAddr string `env:"AUTOCERT_HTTP_ADDR" envDefault:":80"`

	// Warm obtains certificates for every domain before the server starts.
	Warm          bool          `env:"AUTOCERT_WARM" envDefault:"false"`
	RetryAttempts int           `env:"AUTOCERT_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"AUTOCERT_RETRY_INTERVAL" envDefault:"5s"`
}

// ConfigProvider is implemented by application configs that carry autocert settings.
type ConfigProvider interface {
	AutocertConfig() Config
}

// Validate checks required fields and normalizes domain names.
func (c *Config) Validate() error {
	if len(c.Domains) == 0 {
		return ErrNoDomains
	}
	if c.Email == "" {
		return ErrEmailRequired
	}
	if c.CacheDir == "" {
		return ErrCacheDirRequired
	}

	domains := make([]string, 0, len(c.Domains))
	for _, d := range c.Domains {
		d = normalizeHost(d)
		if !validDomain(d) {
			return fmt.Errorf("%w: %q", ErrInvalidDomain, d)
		}
		domains = append(domains, d)
	}
	c.Domains = domains
	return nil
}

func normalizeHost(host string) string {
	host = strings.TrimSpace(strings.ToLower(host))
	if i := strings.LastIndex(host, ":"); i != -1 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return strings.TrimSuffix(host, ".")
}

func validDomain(d string) bool {
	if d == "" || len(d) > 253 || !strings.Contains(d, ".") {
		return false
	}
	for label := range strings.SplitSeq(d, ".") {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
				return false
			}
		}
	}
	return true
}
