package protection

import (
	"net/http"
	"regexp"
	"strings"
)

// shieldRule is a single named inspection applied to the raw request.
type shieldRule struct {
	id      string
	pattern *regexp.Regexp
}

// shield blocks requests whose path or query string carries common attack
// payloads. It inspects the raw request line only; it never reads the body,
// so it stays cheap enough to run on every request.
type shield struct {
	rules []shieldRule
}

func newShield() *shield {
	return &shield{
		rules: []shieldRule{
			{
				id:      "shield:path-traversal",
				pattern: regexp.MustCompile(`(?:^|[/\\])\.\.(?:[/\\]|$)`),
			},
			{
				id:      "shield:sql-injection",
				pattern: regexp.MustCompile(`(?i)(union[\s+]+select|;\s*drop\s+table|'\s*or\s+'?1'?\s*=\s*'?1|sleep\s*\(\d)`),
			},
			{
				id:      "shield:xss-probe",
				pattern: regexp.MustCompile(`(?i)(<script|javascript:|onerror\s*=)`),
			},
			{
				id:      "shield:null-byte",
				pattern: regexp.MustCompile(`%00|\x00`),
			},
		},
	}
}

// inspect returns ("", true) when the request is clean, or the matched rule
// id and false when a shield rule hits.
func (s *shield) inspect(r *http.Request) (string, bool) {
	// RequestURI keeps the raw, un-decoded path + query, which is what the
	// probes actually arrive as.
	target := r.URL.RequestURI()

	// Decoded form catches payloads hidden behind percent-encoding.
	decoded := r.URL.Path
	if r.URL.RawQuery != "" {
		decoded += "?" + query(r)
	}

	for _, rule := range s.rules {
		if rule.pattern.MatchString(target) || rule.pattern.MatchString(decoded) {
			return rule.id, false
		}
	}

	return "", true
}

func query(r *http.Request) string {
	values := r.URL.Query()
	var b strings.Builder
	for key, vals := range values {
		for _, v := range vals {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(key)
			b.WriteByte('=')
			b.WriteString(v)
		}
	}
	return b.String()
}
