// Package autocert serves the application over HTTPS with certificates obtained
// from an ACME authority such as Let's Encrypt.
//
//	func (c *AppConfig) AutocertConfig() autocert.Config { return c.Autocert }
//
//	starter.WithConfig(cfg).Append(autocert.Preparer[*AppConfig](autocert.WithLogger(log)))
//
// The step validates the domain list, builds an autocert.Manager restricted to
// those domains and contributes a server.WithTLS option, so the application
// listener answers TLS handshakes and tls-alpn-01 challenges. When
// AUTOCERT_HTTP_ADDR is set a second, plain HTTP listener answers http-01
// challenges and redirects everything else to HTTPS; it is bound during
// preparation and closed with the server. AUTOCERT_WARM obtains certificates
// before the server starts, retrying transient ACME failures.
//
// The manager is available to handlers as an extension, and Check reports
// whether its certificate cache is reachable.
package autocert
