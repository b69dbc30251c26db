// Package opensearch creates an OpenSearch client and exposes it to request handlers.
//
//	func (c *AppConfig) OpenSearchConfig() opensearch.Config { return c.Search }
//
//	starter.WithConfig(cfg).Append(opensearch.Preparer[*AppConfig]())
//
// New pings the cluster before returning, so a misconfigured or unreachable
// cluster fails the startup step instead of the first search. Handlers use
// Client(r.Context()); Check plugs into health.Preparer.
package opensearch
