package s3

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/launchpad/core/effect"
)

// Config holds S3 bucket settings.
type Config struct {
	Bucket          string `env:"S3_BUCKET"`
	Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretKey       string `env:"S3_SECRET_KEY"`
	Endpoint        string `env:"S3_ENDPOINT"`                            // For S3-compatible services like MinIO, Wasabi
	BaseURL         string `env:"S3_BASE_URL"`                            // Custom CDN or public URL base
	ForcePathStyle  bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"` // Required for MinIO
	SkipBucketCheck bool   `env:"S3_SKIP_BUCKET_CHECK" envDefault:"false"`
}

// ConfigProvider is implemented by application configurations that carry S3 settings.
type ConfigProvider interface {
	S3Config() Config
}

// Client is the subset of the S3 API used at startup and by Bucket.
type Client interface {
	HeadBucket(ctx context.Context, params *s3aws.HeadBucketInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadBucketOutput, error)
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3aws.DeleteObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error)
}

var _ Client = (*s3aws.Client)(nil)

// Option customizes New.
type Option func(*options)

type options struct {
	client        Client
	httpClient    *http.Client
	configOptions []func(*config.LoadOptions) error
	clientOptions []func(*s3aws.Options)
}

// WithClient uses a pre-configured client instead of building one from the AWS config.
func WithClient(c Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithHTTPClient sets the HTTP client for S3 requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithConfigOption adds an AWS config load option.
func WithConfigOption(opt func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.configOptions = append(o.configOptions, opt)
	}
}

// WithClientOption adds an S3 client option.
func WithClientOption(opt func(*s3aws.Options)) Option {
	return func(o *options) {
		o.clientOptions = append(o.clientOptions, opt)
	}
}

// Bucket is a client bound to one bucket.
type Bucket struct {
	Client Client
	Name   string

	region         string
	endpoint       string
	baseURL        string
	forcePathStyle bool
}

// New builds the client and, unless SkipBucketCheck is set, verifies that the
// bucket exists and is accessible. Static credentials are used when both keys
// are set; otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg Config, opts ...Option) (*Bucket, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		if o.httpClient != nil {
			loadOpts = append(loadOpts, config.WithHTTPClient(o.httpClient))
		}
		loadOpts = append(loadOpts, o.configOptions...)

		awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}

		client = s3aws.NewFromConfig(awsCfg, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range o.clientOptions {
				opt(so)
			}
		})
	}

	b := &Bucket{
		Client:         client,
		Name:           cfg.Bucket,
		region:         cfg.Region,
		endpoint:       cfg.Endpoint,
		baseURL:        cfg.BaseURL,
		forcePathStyle: cfg.ForcePathStyle,
	}

	if !cfg.SkipBucketCheck {
		if err := b.Ping(ctx); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Ping checks that the bucket exists and is accessible.
func (b *Bucket) Ping(ctx context.Context) error {
	_, err := b.Client.HeadBucket(ctx, &s3aws.HeadBucketInput{Bucket: aws.String(b.Name)})
	return classifyS3Error(err, "head bucket")
}

// URL returns the public URL of the object at path.
func (b *Bucket) URL(path string) string {
	path = strings.TrimPrefix(path, "/")

	if b.baseURL != "" {
		return strings.TrimSuffix(b.baseURL, "/") + "/" + path
	}

	if b.endpoint != "" {
		endpoint := strings.TrimSuffix(b.endpoint, "/")
		protocol := "https://"
		if after, ok := strings.CutPrefix(endpoint, "http://"); ok {
			protocol = "http://"
			endpoint = after
		} else if after, ok := strings.CutPrefix(endpoint, "https://"); ok {
			endpoint = after
		}

		if b.forcePathStyle {
			return fmt.Sprintf("%s%s/%s/%s", protocol, endpoint, b.Name, path)
		}
		return fmt.Sprintf("%s%s.%s/%s", protocol, b.Name, endpoint, path)
	}

	if b.forcePathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", b.region, b.Name, path)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.Name, b.region, path)
}

// Healthcheck returns a readiness check on the bucket.
func Healthcheck(b *Bucket) func(context.Context) error {
	return b.Ping
}

// FromContext returns the bucket provided by the s3 preparer.
func FromContext(ctx context.Context) (*Bucket, bool) {
	return effect.From[*Bucket](ctx)
}

// Check is a readiness check using the bucket provided by the s3 preparer.
func Check(ctx context.Context) error {
	b, ok := FromContext(ctx)
	if !ok || b == nil {
		return ErrNoBucket
	}
	return b.Ping(ctx)
}
