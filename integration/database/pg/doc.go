// Package pg connects to PostgreSQL through a pgx pool, applies goose migrations
// and exposes the pool to request handlers.
//
// As a startup step:
//
//	func (c *AppConfig) PostgresConfig() pg.Config { return c.Postgres }
//
//	starter.WithConfig(cfg).Append(pg.Preparer[*AppConfig](log))
//
// The step connects with retries (PG_RETRY_ATTEMPTS, PG_RETRY_INTERVAL with
// exponential backoff, bounded by PG_CONNECT_TIMEOUT), runs migrations when
// PG_AUTO_MIGRATE is set, provides the *pgxpool.Pool as an extension and closes
// it when the server shuts down.
//
// Handlers reach the pool, or the current transaction, through the request context:
//
//	db, err := pg.DB(r.Context())
//	row := db.QueryRow(r.Context(), "SELECT name FROM users WHERE id = $1", id)
//
// Check can be passed to health.Preparer as a readiness check.
//
// Errors are grouped in errors.go; IsNotFoundError, IsDuplicateKeyError,
// IsForeignKeyViolationError and IsTxClosedError classify driver errors.
package pg
