package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// maxRequestBody bounds POST bodies; inputs past the resolver's own limit
// are ignored anyway.
const maxRequestBody = 64 << 10

// resolveRequest is the POST body of /api/resolve.
type resolveRequest struct {
	Input string `json:"input"`
}

// ResolveResponse is the JSON answer of /api/resolve.
type ResolveResponse struct {
	Input   string `json:"input"`
	Intent  string `json:"intent"`
	Result  string `json:"result"`
	Matched bool   `json:"matched"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// resolveHandler answers GET /api/resolve?q= and POST /api/resolve.
type resolveHandler struct {
	server *Server
}

func (h *resolveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if ok, retry := h.server.limiter.Allow(clientKey(r, h.server.config.Server.TrustProxy)); !ok {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(retry)))
		h.writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
		return
	}

	var input string

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		input = r.URL.Query().Get("q")
	case http.MethodPost:
		if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
			h.writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{Error: "expected application/json"})
			return
		}
		var req resolveRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
		if err := dec.Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
				return
			}
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
		input = req.Input
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	res := h.server.resolve(input)
	h.server.logger.Debug("resolved", "intent", res.Intent, "matched", res.Matched)
	h.writeJSON(w, http.StatusOK, res)
}

func (h *resolveHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.server.logger.Error("failed to marshal JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

// resolve classifies and evaluates input against the server clock.
func (s *Server) resolve(input string) ResolveResponse {
	intent := s.resolver.Classify(input)
	result := s.resolver.Resolve(input, s.now())
	return ResolveResponse{
		Input:   input,
		Intent:  intent.Kind(),
		Result:  result,
		Matched: result != "",
	}
}
