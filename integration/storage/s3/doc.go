// Package s3 builds an AWS SDK v2 S3 client bound to one bucket and exposes it
// to request handlers. It works with Amazon S3 and S3-compatible services such
// as MinIO, DigitalOcean Spaces or Wasabi (set S3_ENDPOINT and, for MinIO,
// S3_FORCE_PATH_STYLE).
//
//	func (c *AppConfig) S3Config() s3.Config { return c.Storage }
//
//	starter.WithConfig(cfg).Append(s3.Preparer[*AppConfig]())
//
// The step fails when the bucket is missing or inaccessible, unless
// S3_SKIP_BUCKET_CHECK is set. Handlers use FromContext(r.Context()) and
// Bucket.URL for public object links.
package s3
