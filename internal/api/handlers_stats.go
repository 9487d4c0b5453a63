package api

import "net/http"

// handleEmbedStats reports rolling embedding-call statistics.
func (s *Server) handleEmbedStats(w http.ResponseWriter, r *http.Request) {
	if s.embedClient == nil {
		jsonError(w, "embedding client not configured", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"embed":       s.embedClient.Stats().Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
