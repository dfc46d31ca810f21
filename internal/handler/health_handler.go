package handlers

import "net/http"

// Health always answers 200; a missing database shows up as DEGRADED in the body.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.HealthService.Check(r.Context()))
}
