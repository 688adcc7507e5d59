package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vbonduro/nutrisnap/internal/lookup"
)

type apiLookupRequest struct {
	Query string `json:"query"`
}

type apiLookupResponse struct {
	SessionID string `json:"sessionId"`
	Outcome   string `json:"outcome"`
	lookup.Snapshot
}

type apiError struct {
	Error string `json:"error"`
}

// handleAPILookup is the JSON form of the lookup submission. The session is
// taken from X-Session-ID; without one a new session is opened.
func (s *Server) handleAPILookup(w http.ResponseWriter, r *http.Request) {
	var req apiLookupRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		return
	}
	if queryTooLong(req.Query) {
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: errQueryTooLong})
		return
	}

	sessionID, ctrl := s.sessions.Get(r.Header.Get("X-Session-ID"))
	w.Header().Set("X-Session-ID", sessionID)

	outcome := ctrl.Submit(context.WithoutCancel(r.Context()), req.Query)
	if outcome == lookup.Busy {
		s.writeJSON(w, http.StatusConflict, apiError{Error: errBusy})
		return
	}

	s.writeJSON(w, http.StatusOK, apiLookupResponse{
		SessionID: sessionID,
		Outcome:   outcome.String(),
		Snapshot:  ctrl.Snapshot(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
