// Package resolver maps request paths onto the served directory. It is the
// only place that decides whether a path redirects, serves a file, or 404s,
// and it enforces the single security invariant of the server: a Serve
// resolution never points outside the configured root.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"svgserve/internal/config"
)

// Kind identifies the outcome of resolving a request path
type Kind string

const (
	// KindRedirect means the request is for / and redirects to the index route
	KindRedirect Kind = "redirect"
	// KindServe means the request maps to a regular readable file under the root
	KindServe Kind = "serve"
	// KindNotFound means the request maps to nothing servable
	KindNotFound Kind = "not-found"
)

// Resolution is the tagged outcome of mapping a request path to an action
type Resolution struct {
	Kind Kind

	// Location is the redirect target; set only for KindRedirect
	Location string

	// FilePath is the canonical absolute path of the file to serve; set
	// only for KindServe, always a strict descendant of the root
	FilePath string
}

func notFound() Resolution {
	return Resolution{Kind: KindNotFound}
}

// Resolve maps a decoded request path against the configured root directory.
// cfg.RootDir must already be canonical (see config.CanonicalizeRoot).
//
// Exactly "/" redirects to the index route before any filesystem access;
// the index route is a semantic route, not a lookup, so a file named to
// match it never shadows the redirect. Everything else is joined under the
// root, canonicalized, and served only if the canonical path is a regular
// readable file strictly inside the root.
func Resolve(requestPath string, cfg *config.ServerConfig) Resolution {
	if requestPath == "/" {
		return Resolution{Kind: KindRedirect, Location: cfg.IndexRoute}
	}

	relative := strings.TrimPrefix(requestPath, "/")
	candidate := filepath.Join(cfg.RootDir, filepath.FromSlash(relative))

	// Canonicalize before any existence or type verdict. This is the sole
	// traversal defense: .. chains and symlinks are both resolved here.
	canonical, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		// Missing target and unreadable path look identical to the caller
		return notFound()
	}

	if !isStrictDescendant(canonical, cfg.RootDir) {
		return notFound()
	}

	info, err := os.Stat(canonical)
	if err != nil || !info.Mode().IsRegular() {
		return notFound()
	}

	// Readability probe: permission denied is indistinguishable from absent
	f, err := os.Open(canonical)
	if err != nil {
		return notFound()
	}
	_ = f.Close()

	return Resolution{Kind: KindServe, FilePath: canonical}
}

// isStrictDescendant reports whether path lies inside root. The root itself
// does not count: it is the boundary, not a servable file.
func isStrictDescendant(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
