package web

import (
	"context"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/vbonduro/nutrisnap/internal/domain"
	"github.com/vbonduro/nutrisnap/internal/lookup"
	"github.com/vbonduro/nutrisnap/internal/view"
)

// maxQueryLen is counted in characters, matching the input's maxlength.
const maxQueryLen = 500

// maxBodyBytes bounds JSON request bodies; a full-length query of escaped
// multibyte characters still fits.
const maxBodyBytes = 16 << 10

const errBusy = "A lookup is already in progress."

var errQueryTooLong = fmt.Sprintf("Query is too long (%d characters max).", maxQueryLen)

// resultFiles are the templates needed to render the result section.
var resultFiles = []string{
	"partials/result.html",
	"partials/tiles.html",
	"partials/nutrients.html",
	"partials/chart.html",
}

var pageFiles = append([]string{"base.html", "pages/index.html"}, resultFiles...)

// pageData is what the index page and the result fragment render. Notice
// reports a rejected submission without touching the session state.
type pageData struct {
	SessionID string
	Snapshot  lookup.Snapshot
	Breakdown *view.Breakdown
	Notice    string
}

func newPageData(sessionID string, snap lookup.Snapshot) pageData {
	return pageData{
		SessionID: sessionID,
		Snapshot:  snap,
		Breakdown: view.NewBreakdown(snap.Result),
	}
}

func (p pageData) InFlight() bool { return p.Snapshot.Status == domain.LifecycleInFlight }
func (p pageData) Failed() bool   { return p.Snapshot.Status == domain.LifecycleFailed }

func queryTooLong(q string) bool { return utf8.RuneCountInString(q) > maxQueryLen }

// handleIndex serves the page with a brand new session, so a reload always
// starts idle.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sessionID, ctrl := s.sessions.Open()

	if err := s.renderPage(w, newPageData(sessionID, ctrl.Snapshot()), pageFiles...); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}
	query := r.PostFormValue("query")
	sessionID, ctrl := s.sessions.Get(r.PostFormValue("session"))

	if queryTooLong(query) {
		data := newPageData(sessionID, ctrl.Snapshot())
		data.Notice = errQueryTooLong
		s.respond(w, r, http.StatusBadRequest, data)
		return
	}

	// Use a detached context so the lookup runs to completion even if the
	// client navigates away and the request context is cancelled.
	outcome := ctrl.Submit(context.WithoutCancel(r.Context()), query)

	data := newPageData(sessionID, ctrl.Snapshot())
	status := http.StatusOK
	if outcome == lookup.Busy {
		data.Notice = errBusy
		status = http.StatusConflict
	}
	s.respond(w, r, status, data)
}

// respond renders the result fragment for HTMX requests and the full page
// otherwise. htmx does not swap error responses, so fragments always go out
// as 200 and carry the problem in data.Notice.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	if r.Header.Get("HX-Request") == "true" {
		if err := s.renderPartial(w, "result", data, resultFiles...); err != nil {
			s.logger.Error("render partial failed", "error", err)
		}
		return
	}
	if err := s.render(w, status, "base", data, pageFiles...); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}
