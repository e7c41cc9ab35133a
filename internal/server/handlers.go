package server

import (
	"net/http"
	"strconv"

	"svgserve/internal/resolver"
)

// svgContentType is sent for every served file. The server only ever serves
// SVG content, so there is no extension-based negotiation.
const svgContentType = "image/svg+xml"

// checkMethod gates non-GET requests before any resolver or filesystem
// access. Returns false after writing a bodyless 405.
func checkMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	w.WriteHeader(http.StatusMethodNotAllowed)
	return false
}

// handleFiles serves raw files from the configured directory. Exactly /
// redirects to the index route; everything else resolves against the root.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if !checkMethod(w, r) {
		return
	}

	res := resolver.Resolve(r.URL.Path, s.cfg)

	switch res.Kind {
	case resolver.KindRedirect:
		s.logger.Info("Redirecting to index route", map[string]interface{}{
			"location":  res.Location,
			"requestID": GetRequestID(r.Context()),
		})
		// Bare Location header, no body. The redirect is temporary: the
		// index route is configurable, so clients must not cache it.
		w.Header().Set("Location", res.Location)
		w.WriteHeader(http.StatusTemporaryRedirect)

	case resolver.KindServe:
		data, err := s.readFile(res.FilePath)
		if err != nil {
			// Resolution and read are not atomic; the file can vanish in
			// between. Generic body only, never the path or the error.
			s.logger.Error("File read failed after resolution", map[string]interface{}{
				"error":     err.Error(),
				"requestID": GetRequestID(r.Context()),
			})
			http.Error(w, "Failed to load SVG", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", svgContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)

	default:
		http.NotFound(w, r)
	}
}
