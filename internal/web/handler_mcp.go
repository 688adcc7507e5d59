package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"github.com/vbonduro/nutrisnap/internal/domain"
	"github.com/vbonduro/nutrisnap/internal/lookup"
)

// lookupTool is the only tool exposed on /mcp.
const lookupTool = "lookup_nutrition"

// handleMCP answers a tools/call for lookupTool. The body is the call's
// params object: {"name": "lookup_nutrition", "arguments": {"query": "..."}}.
// An optional "session" argument reuses a page session.
func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	var req protocol.CallToolRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %v", err), http.StatusBadRequest)
		return
	}
	if req.Name != lookupTool {
		http.Error(w, fmt.Sprintf("unknown tool: %s", req.Name), http.StatusNotFound)
		return
	}

	var params lookupParams
	if err := extractParams(&req, &params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(params.Query) == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}
	if queryTooLong(params.Query) {
		http.Error(w, errQueryTooLong, http.StatusBadRequest)
		return
	}

	_, ctrl := s.sessions.Get(params.Session)
	if ctrl.Submit(context.WithoutCancel(r.Context()), params.Query) == lookup.Busy {
		http.Error(w, errBusy, http.StatusConflict)
		return
	}

	// Failed lookups come back as a tool result flagged IsError.
	snap := ctrl.Snapshot()
	result := toolError(snap.Err)
	if snap.Status == domain.LifecycleSucceeded {
		var err error
		if result, err = toolResult(snap.Result); err != nil {
			http.Error(w, "failed to encode result", http.StatusInternalServerError)
			s.logger.Error("encode tool result failed", "error", err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

type lookupParams struct {
	Query   string `json:"query"`
	Session string `json:"session"`
}

// extractParams round-trips the call's arguments through JSON into target.
func extractParams(req *protocol.CallToolRequest, target any) error {
	data, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func toolResult(r *domain.NutritionResult) (*protocol.CallToolResult, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(data),
			},
		},
	}, nil
}

func toolError(msg string) *protocol.CallToolResult {
	if msg == "" {
		msg = lookup.FallbackMessage
	}
	return &protocol.CallToolResult{
		IsError: true,
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: msg,
			},
		},
	}
}
