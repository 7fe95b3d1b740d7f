package server

import "net/http"

// Routes returns the API mux wrapped in the request logger.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/project", s.HandleProject)
	mux.HandleFunc("/api/unproject", s.HandleUnproject)
	mux.HandleFunc("/api/frames", s.HandleFrames)
	if s.Metrics != nil {
		mux.Handle("/metrics", s.Metrics.Handler())
	}

	return RequestLogger(mux)
}
