// Package mongo connects to MongoDB with the official v2 driver and exposes the
// client to request handlers.
//
//	func (c *AppConfig) MongoConfig() mongo.Config { return c.Mongo }
//
//	starter.WithConfig(cfg).Append(mongo.Preparer[*AppConfig]())
//
// Connection attempts are retried (MONGODB_RETRY_ATTEMPTS, MONGODB_RETRY_INTERVAL
// with exponential backoff) to ride out Atlas cold starts. When MONGODB_DATABASE is
// set the *mongo.Database handle is provided as well. Handlers use Client and
// Database on the request context; Check plugs into health.Preparer.
package mongo
