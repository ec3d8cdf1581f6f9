package server

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/sambeau/rechner/config"
)

// corsMethods are the only methods the API answers.
var corsMethods = []string{http.MethodGet, http.MethodHead, http.MethodPost}

// newCORSHandler adds Cross-Origin Resource Sharing headers for the
// configured origins. With no origins configured it returns next unchanged.
func newCORSHandler(next http.Handler, cfg config.CORSConfig) http.Handler {
	if len(cfg.Origins) == 0 {
		return next
	}
	wildcard := slices.Contains(cfg.Origins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" || !(wildcard || slices.Contains(cfg.Origins, origin)) {
			// Same-origin, or an origin the browser will block
			next.ServeHTTP(w, r)
			return
		}

		if wildcard {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.Header().Set("Access-Control-Allow-Methods", strings.Join(corsMethods, ", "))
			if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
				w.Header().Set("Access-Control-Allow-Headers", requested)
			}
			if cfg.MaxAge > 0 {
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
