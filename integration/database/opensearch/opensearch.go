package opensearch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/dmitrymomot/launchpad/core/effect"
)

var (
	ErrMissingAddresses     = errors.New("no opensearch addresses configured")
	ErrFailedToCreateClient = errors.New("failed to create opensearch client")
	ErrConnectionFailed     = errors.New("opensearch cluster is not reachable")
	ErrHealthcheckFailed    = errors.New("opensearch healthcheck failed")
	ErrNoClient             = errors.New("no opensearch client in context")
)

// Config holds OpenSearch cluster settings.
type Config struct {
	Addresses          []string `env:"OPENSEARCH_ADDRESSES"`
	Username           string   `env:"OPENSEARCH_USERNAME"`
	Password           string   `env:"OPENSEARCH_PASSWORD"`
	MaxRetries         int      `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	DisableRetry       bool     `env:"OPENSEARCH_DISABLE_RETRY" envDefault:"false"`
	InsecureSkipVerify bool     `env:"OPENSEARCH_INSECURE_SKIP_VERIFY" envDefault:"false"`
}

// ConfigProvider is implemented by application configurations that carry OpenSearch settings.
type ConfigProvider interface {
	OpenSearchConfig() Config
}

// New creates a client and pings the cluster so an unreachable cluster fails at startup.
func New(ctx context.Context, cfg Config) (*opensearch.Client, error) {
	if len(cfg.Addresses) == 0 {
		return nil, ErrMissingAddresses
	}

	osCfg := opensearch.Config{
		Addresses:    cfg.Addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		MaxRetries:   cfg.MaxRetries,
		DisableRetry: cfg.DisableRetry,
	}
	if cfg.InsecureSkipVerify {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // opt-in, for self-signed dev clusters
		osCfg.Transport = transport
	}

	client, err := opensearch.NewClient(osCfg)
	if err != nil {
		return nil, errors.Join(ErrFailedToCreateClient, err)
	}

	if err := ping(ctx, client); err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}
	return client, nil
}

func ping(ctx context.Context, client *opensearch.Client) error {
	res, err := opensearchapi.PingRequest{}.Do(ctx, client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("unexpected status %s", res.Status())
	}
	return nil
}

// Healthcheck returns a readiness check pinging the cluster.
func Healthcheck(client *opensearch.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := ping(ctx, client); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Client returns the client provided by the opensearch preparer.
func Client(ctx context.Context) (*opensearch.Client, bool) {
	return effect.From[*opensearch.Client](ctx)
}

// Check is a readiness check using the client provided by the opensearch preparer.
func Check(ctx context.Context) error {
	client, ok := Client(ctx)
	if !ok || client == nil {
		return ErrNoClient
	}
	return Healthcheck(client)(ctx)
}
