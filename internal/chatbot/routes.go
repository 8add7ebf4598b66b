package chatbot

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scoutlens/scoutlens/internal/report"
)

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Message   string `json:"message"`
}

type reportChatRequest struct {
	SessionID  string         `json:"session_id,omitempty"`
	UserID     string         `json:"user_id,omitempty"`
	ReportID   string         `json:"report_id,omitempty"`
	Report     map[string]any `json:"report,omitempty"`
	PlayerData map[string]any `json:"player_data,omitempty"`
	Message    string         `json:"message"`
}

type startSessionRequest struct {
	UserID string `json:"user_id,omitempty"`
}

// RegisterRoutes mounts the chatbot and session endpoints under
// /api/chatbot. Chat replies stream as plain text with the session id in
// the X-Session-ID response header.
func RegisterRoutes(r chi.Router, orch *Orchestrator, reports *report.Store) {
	r.Route("/api/chatbot", func(r chi.Router) {
		r.Post("/chat", handleChat(orch))
		r.Post("/report-chat", handleReportChat(orch, reports))
		r.Get("/ws", handleWebSocket(orch, reports))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/start", handleStartSession(orch))
			r.Get("/", handleListSessions(orch))
			r.Get("/{id}", handleGetSession(orch))
			r.Get("/{id}/history", handleSessionHistory(orch))
			r.Post("/{id}/clear", handleClearSession(orch))
			r.Delete("/{id}", handleEndSession(orch))
		})
	})
}

func handleChat(orch *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Message == "" {
			http.Error(w, "message is required", http.StatusBadRequest)
			return
		}

		sessionID, emit, finish := streamWriter(w, orch, req.SessionID, req.UserID)
		reply, err := orch.ProcessMessage(r.Context(), sessionID, userOrAnon(req.UserID), req.Message, emit)
		finish(reply, err)
	}
}

func handleReportChat(orch *Orchestrator, reports *report.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reportChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Message == "" {
			http.Error(w, "message is required", http.StatusBadRequest)
			return
		}

		rep := req.Report
		if req.ReportID != "" {
			rec, err := reports.Get(r.Context(), req.ReportID)
			if errors.Is(err, report.ErrNotFound) {
				http.Error(w, "report not found", http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			rep = rec.Report
		}
		if len(rep) == 0 {
			http.Error(w, "report_id or report is required", http.StatusBadRequest)
			return
		}

		sessionID, emit, finish := streamWriter(w, orch, req.SessionID, req.UserID)
		reply, err := orch.ReportChat(r.Context(), sessionID, userOrAnon(req.UserID), rep, req.PlayerData, req.Message, emit)
		finish(reply, err)
	}
}

// streamWriter prepares a chunked plain-text response. The session id
// header must be known before the first byte is written, so for fresh
// sessions one is started eagerly here and reused by the orchestrator.
func streamWriter(w http.ResponseWriter, orch *Orchestrator, sessionID, userID string) (string, func(string) error, func(*Reply, error)) {
	if sessionID == "" || !orch.Sessions().Exists(sessionID) {
		sessionID = orch.Sessions().Start(userOrAnon(userID))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Session-ID", sessionID)

	flusher, _ := w.(http.Flusher)
	started := false

	emit := func(chunk string) error {
		if !started {
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := w.Write([]byte(chunk)); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}

	finish := func(reply *Reply, err error) {
		if err != nil && !started {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		// The reply text already went out through emit.
		_ = reply
	}

	return sessionID, emit, finish
}

func handleStartSession(orch *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startSessionRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		id := orch.Sessions().Start(userOrAnon(req.UserID))
		writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
	}
}

func handleListSessions(orch *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := orch.Sessions().ListByUser(userOrAnon(r.URL.Query().Get("user_id")))
		if ids == nil {
			ids = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
	}
}

func handleGetSession(orch *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := orch.Sessions().Info(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

func handleSessionHistory(orch *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !orch.Sessions().Exists(id) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, orch.Sessions().History(id))
	}
}

func handleClearSession(orch *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !orch.Sessions().Clear(chi.URLParam(r, "id")) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleEndSession(orch *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !orch.Sessions().End(chi.URLParam(r, "id")) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func userOrAnon(userID string) string {
	if userID == "" {
		return "anonymous"
	}
	return userID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
