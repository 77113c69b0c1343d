// Package strings provides string manipulation utilities.
package strings

import (
	"net/url"
	"strings"
)

// DedupeURLs trims each value, drops blanks and keeps the first occurrence of
// each link in order. Two URLs that differ only in the case of their scheme or
// host count as one.
func DedupeURLs(values []string) []string {
	return dedupeBy(values, func(v string) string {
		v = strings.TrimSpace(v)
		u, err := url.Parse(v)
		if err != nil || u.Host == "" {
			return v
		}
		u.Scheme = strings.ToLower(u.Scheme)
		u.Host = strings.ToLower(u.Host)
		return u.String()
	})
}

func dedupeBy(values []string, key func(string) string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		k := key(trimmed)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
