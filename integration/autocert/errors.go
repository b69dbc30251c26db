package autocert

import "errors"

var (
	ErrNoDomains         = errors.New("autocert: at least one domain is required")
	ErrEmailRequired     = errors.New("autocert: email is required for the ACME account")
	ErrCacheDirRequired  = errors.New("autocert: certificate cache directory is required")
	ErrInvalidDomain     = errors.New("autocert: invalid domain name")
	ErrHostNotAllowed    = errors.New("autocert: host not allowed")
	ErrChallengeListener = errors.New("autocert: failed to listen for http-01 challenges")
	ErrWarmFailed        = errors.New("autocert: failed to obtain certificate")
	ErrCacheUnavailable  = errors.New("autocert: certificate cache unavailable")
	ErrNoManager         = errors.New("autocert: no certificate manager in context")
)
