package logging

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/m-mizutani/masq"
)

// credentialHeaders are the lowercase names of headers that carry
// credentials. Log attributes with these keys are masked as well.
var credentialHeaders = []string{
	"authorization",
	"proxy-authorization",
	"x-api-key",
	"cookie",
	"set-cookie",
}

// SensitiveHeader reports whether the header name carries credentials.
func SensitiveHeader(name string) bool {
	return slices.Contains(credentialHeaders, strings.ToLower(name))
}

// secretValues match credentials embedded in otherwise harmless strings: a
// bearer token, a JWT (segments of ten or more characters so version strings
// pass) and inline api_key=... pairs.
var secretValues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
	regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
	regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
}

// redactor builds the ReplaceAttr hook New installs. Masking is by key
// (credential headers, password, secret, token and the secret_ and api_key
// prefixes) and by value through secretValues.
func redactor() func([]string, slog.Attr) slog.Attr {
	opts := []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldPrefix("api_key"),
	}
	for _, h := range credentialHeaders {
		opts = append(opts, masq.WithFieldName(h))
	}
	for _, re := range secretValues {
		opts = append(opts, masq.WithRegex(re))
	}
	return masq.New(opts...)
}
