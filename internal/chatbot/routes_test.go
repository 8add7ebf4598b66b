package chatbot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/scoutlens/scoutlens/internal/db"
	"github.com/scoutlens/scoutlens/internal/report"
)

func newTestReportStore(t *testing.T) *report.Store {
	t.Helper()
	d, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return report.NewStore(d)
}

func newChatRouter(t *testing.T, orch *Orchestrator) (chi.Router, *report.Store) {
	t.Helper()
	reports := newTestReportStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, orch, reports)
	return r, reports
}

func TestChatEndpointStreams(t *testing.T) {
	routerGW := &mockGateway{completeFn: textResponse(`{"classification": "general"}`)}
	generalGW := &mockGateway{streamFn: streamOf("Hello ", "there")}
	o := newTestOrchestrator(&mockGateway{}, routerGW, generalGW, &mockGateway{})

	r, _ := newChatRouter(t, o)

	req := httptest.NewRequest("POST", "/api/chatbot/chat", strings.NewReader(`{"message": "hi"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "Hello there" {
		t.Errorf("body = %q", w.Body.String())
	}

	sessionID := w.Header().Get("X-Session-ID")
	if sessionID == "" {
		t.Fatal("X-Session-ID header missing")
	}
	if !o.Sessions().Exists(sessionID) {
		t.Error("advertised session does not exist")
	}

	// A second turn on the advertised session continues it.
	body := `{"session_id": "` + sessionID + `", "message": "and again"}`
	req = httptest.NewRequest("POST", "/api/chatbot/chat", strings.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Session-ID"); got != sessionID {
		t.Errorf("session changed: %q -> %q", sessionID, got)
	}
	if len(o.Sessions().History(sessionID)) != 4 {
		t.Errorf("history has %d turns, want 4", len(o.Sessions().History(sessionID)))
	}
}

func TestChatEndpointValidation(t *testing.T) {
	o := newTestOrchestrator(&mockGateway{}, &mockGateway{}, &mockGateway{}, &mockGateway{})
	r, _ := newChatRouter(t, o)

	req := httptest.NewRequest("POST", "/api/chatbot/chat", strings.NewReader(`{"message": ""}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty message status = %d", w.Code)
	}
}

func TestReportChatEndpointByID(t *testing.T) {
	reportGW := &mockGateway{streamFn: streamOf("He plays for Real Madrid.")}
	o := newTestOrchestrator(&mockGateway{}, &mockGateway{}, &mockGateway{}, reportGW)
	r, reports := newChatRouter(t, o)

	id, err := reports.Save(context.Background(), map[string]any{
		"player_info": map[string]any{"name": "Jude Bellingham", "club": "Real Madrid"},
		"report":      map[string]any{},
	})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	body := `{"report_id": "` + id + `", "message": "which club"}`
	req := httptest.NewRequest("POST", "/api/chatbot/report-chat", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "He plays for Real Madrid." {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestReportChatEndpointUnknownReport(t *testing.T) {
	o := newTestOrchestrator(&mockGateway{}, &mockGateway{}, &mockGateway{}, &mockGateway{})
	r, _ := newChatRouter(t, o)

	body := `{"report_id": "nope", "message": "which club"}`
	req := httptest.NewRequest("POST", "/api/chatbot/report-chat", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestSessionEndpoints(t *testing.T) {
	o := newTestOrchestrator(&mockGateway{}, &mockGateway{}, &mockGateway{}, &mockGateway{})
	r, _ := newChatRouter(t, o)

	req := httptest.NewRequest("POST", "/api/chatbot/sessions/start", strings.NewReader(`{"user_id": "u1"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("start status = %d", w.Code)
	}
	var started map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &started); err != nil {
		t.Fatal(err)
	}
	id := started["session_id"]
	if id == "" {
		t.Fatal("no session id returned")
	}

	req = httptest.NewRequest("GET", "/api/chatbot/sessions/?user_id=u1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), id) {
		t.Errorf("list status = %d, body: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/chatbot/sessions/"+id, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("get status = %d", w.Code)
	}

	o.Sessions().Append(id, "user", "hi")
	req = httptest.NewRequest("GET", "/api/chatbot/sessions/"+id+"/history", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "hi") {
		t.Errorf("history status = %d, body: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("POST", "/api/chatbot/sessions/"+id+"/clear", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("clear status = %d", w.Code)
	}

	req = httptest.NewRequest("DELETE", "/api/chatbot/sessions/"+id, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/chatbot/sessions/"+id, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", w.Code)
	}
}
