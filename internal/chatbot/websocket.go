package chatbot

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/scoutlens/scoutlens/internal/report"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	SessionID string `json:"session_id"` // empty for new sessions
	UserID    string `json:"user_id"`
	ReportID  string `json:"report_id,omitempty"` // attach a stored report first
	Message   string `json:"message"`
}

// wsResponse is the outgoing WebSocket message format. A reply streams as
// a series of "chunk" messages closed by one "done" message.
type wsResponse struct {
	Type      string `json:"type"` // "chunk", "done" or "error"
	SessionID string `json:"session_id,omitempty"`
	Content   string `json:"content,omitempty"`
	Route     string `json:"route,omitempty"`
}

func handleWebSocket(orch *Orchestrator, reports *report.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("chatbot: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("chatbot: websocket read: %v", err)
				}
				return
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendWSError(conn, "", "invalid message format")
				continue
			}
			if req.Message == "" {
				sendWSError(conn, req.SessionID, "message is required")
				continue
			}

			handleWSMessage(conn, r, orch, reports, req)
		}
	}
}

func handleWSMessage(conn *websocket.Conn, r *http.Request, orch *Orchestrator, reports *report.Store, req wsRequest) {
	ctx := r.Context()

	sessionID := req.SessionID
	if sessionID == "" || !orch.Sessions().Exists(sessionID) {
		sessionID = orch.Sessions().Start(userOrAnon(req.UserID))
	}

	if req.ReportID != "" {
		rec, err := reports.Get(ctx, req.ReportID)
		if errors.Is(err, report.ErrNotFound) {
			sendWSError(conn, sessionID, "report not found")
			return
		}
		if err != nil {
			sendWSError(conn, sessionID, "loading report: "+err.Error())
			return
		}
		if err := orch.AttachReport(sessionID, rec.Report, nil); err != nil {
			sendWSError(conn, sessionID, err.Error())
			return
		}
	}

	emit := func(chunk string) error {
		return conn.WriteJSON(wsResponse{Type: "chunk", SessionID: sessionID, Content: chunk})
	}

	reply, err := orch.ProcessMessage(ctx, sessionID, userOrAnon(req.UserID), req.Message, emit)
	if err != nil {
		sendWSError(conn, sessionID, err.Error())
		return
	}

	done := wsResponse{Type: "done", SessionID: reply.SessionID, Route: reply.Route}
	if err := conn.WriteJSON(done); err != nil {
		log.Printf("chatbot: websocket write: %v", err)
	}
}

func sendWSError(conn *websocket.Conn, sessionID, message string) {
	resp := wsResponse{Type: "error", SessionID: sessionID, Content: message}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("chatbot: websocket write error: %v", err)
	}
}
