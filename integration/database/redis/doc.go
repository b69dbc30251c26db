// Package redis connects to Redis with go-redis and exposes the client to
// request handlers.
//
//	func (c *AppConfig) RedisConfig() redis.Config { return c.Redis }
//
//	starter.WithConfig(cfg).Append(redis.Preparer[*AppConfig]())
//
// The step validates REDIS_URL (redis:// or rediss://), waits for PING with
// exponential backoff (REDIS_RETRY_ATTEMPTS, REDIS_RETRY_INTERVAL) bounded by
// REDIS_CONNECT_TIMEOUT, provides the client as a redis.UniversalClient extension
// and closes it on shutdown. Handlers use Client(r.Context()); Check plugs into
// health.Preparer.
package redis
