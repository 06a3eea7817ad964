package common

import "strings"

// WipeByteArray overwrites b with zeros. It is used on password buffers once
// they have been copied into a request.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// BearerToken formats token as an Authorization header value.
func BearerToken(token string) string {
	return "Bearer " + token
}

// Plural returns singular when n is exactly one and plural otherwise.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// JoinNonEmpty joins the non-blank values of parts with sep.
func JoinNonEmpty(parts []string, sep string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
