package httpapi

import (
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/shopify"
)

const serviceName = "storefront"

type HealthHandler struct {
	upstream Pinger
}

func (h *HealthHandler) Service(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}

// Upstreams probes the Storefront API. The service stays up without it, so
// a failed probe reports "degraded" with a 200.
func (h *HealthHandler) Upstreams(w http.ResponseWriter, r *http.Request) {
	results := []shopify.HealthResult{}
	status := "ok"
	if h.upstream != nil {
		res := h.upstream.Ping(r.Context())
		results = append(results, res)
		if !res.OK {
			status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   status,
		"service":  serviceName,
		"upstream": results,
	})
}
