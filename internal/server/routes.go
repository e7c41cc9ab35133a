package server

// registerRoutes sets up the routing table. /health and /view/ are reserved
// routes and shadow identically named files under the root; everything else
// falls through to the file handler.
func (s *Server) registerRoutes() {
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/view/", s.handleView)
	s.router.HandleFunc("/", s.handleFiles)
}
