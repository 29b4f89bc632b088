package query

import (
	"net"
	"net/url"
	"strings"
)

// normalizeOrigin reduces a raw Origin header value to a bare lowercase
// domain: scheme and port stripped, leading "www." removed. The second
// return value is false for malformed input, which callers treat as not
// allowed.
func normalizeOrigin(origin string) (string, bool) {
	raw := strings.TrimSpace(origin)
	if raw == "" {
		return "", false
	}

	host := raw
	if parsed, err := url.Parse(raw); err == nil && parsed.Host != "" {
		host = parsed.Host
	}

	// Origin values sometimes arrive as bare host:port without a scheme.
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	if host == "" || strings.ContainsAny(host, " /\\@:") {
		return "", false
	}
	return host, true
}

// originAllowed reports whether a normalized domain may query the tenant.
// localhost and 127.0.0.1 always pass (development bypass); otherwise the
// domain must match an allowed entry with or without a "www." prefix on
// either side.
func originAllowed(domain string, allowedDomains []string) bool {
	if domain == "localhost" || domain == "127.0.0.1" {
		return true
	}

	for _, allowed := range allowedDomains {
		normalized := strings.TrimPrefix(strings.ToLower(allowed), "www.")
		if domain == normalized || domain == "www."+normalized {
			return true
		}
	}
	return false
}
