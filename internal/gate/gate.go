// Package gate decides which request paths pass through the identity
// provider before reaching the application.
package gate

import "strings"

// Matcher selects gated paths. A path is gated when it is under /api or
// /trpc, or when the part after the leading slash neither starts with one of
// the skipped prefixes nor contains a dot (static assets).
type Matcher struct {
	always []string
	skip   []string
}

// Default mirrors the matcher pair
//
//	/((?!_next|_vercel|.*\..*).*)
//	/(api|trpc)(.*)
func Default() *Matcher {
	return &Matcher{
		always: []string{"/api", "/trpc"},
		skip:   []string{"_next", "_vercel"},
	}
}

// Match reports whether path must be gated.
func (m *Matcher) Match(path string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	for _, p := range m.always {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	rest := path[1:]
	for _, p := range m.skip {
		if strings.HasPrefix(rest, p) {
			return false
		}
	}
	return !strings.Contains(rest, ".")
}
