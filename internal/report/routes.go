package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/scoutlens/scoutlens/internal/export"
	"github.com/scoutlens/scoutlens/internal/players"
)

// generateRequest asks for a report either by catalog player id or from
// an inline player document. player_name and club override the identity
// carried in the document.
type generateRequest struct {
	PlayerID   *int           `json:"player_id,omitempty"`
	PlayerData map[string]any `json:"player_data,omitempty"`
	PlayerName string         `json:"player_name,omitempty"`
	Club       string         `json:"club,omitempty"`
}

// RegisterRoutes mounts the report endpoints under /api/reports.
func RegisterRoutes(r chi.Router, orch *Orchestrator, store *Store, catalog *players.Catalog) {
	r.Route("/api/reports", func(r chi.Router) {
		r.Post("/generate", handleGenerate(orch, store, catalog))
		r.Get("/", handleList(store))
		r.Get("/{id}", handleGet(store))
		r.Get("/{id}/export", handleExport(store))
		r.Delete("/{id}", handleDelete(store))
	})
}

func handleGenerate(orch *Orchestrator, store *Store, catalog *players.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		playerData := req.PlayerData
		if req.PlayerID != nil {
			if catalog == nil {
				http.Error(w, "player catalog not available", http.StatusServiceUnavailable)
				return
			}
			doc, err := catalog.Document(*req.PlayerID)
			if errors.Is(err, players.ErrNotFound) {
				http.Error(w, "player not found", http.StatusNotFound)
				return
			}
			if errors.Is(err, players.ErrNoDocument) {
				http.Error(w, "player has no model data available", http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			playerData = doc
		}
		if len(playerData) == 0 {
			http.Error(w, "player_id or player_data is required", http.StatusBadRequest)
			return
		}

		rep, err := orch.GeneratePlayerReport(r.Context(), playerData, req.PlayerName, req.Club)
		if errors.Is(err, ErrNoPlayerName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		id, err := store.Save(r.Context(), rep)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"id": id, "report": rep})
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		records, err := store.List(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleExport(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		switch r.URL.Query().Get("format") {
		case "html":
			page, err := export.HTML(rec.Report)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(page))
		default:
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.Write([]byte(export.Markdown(rec.Report)))
		}
	}
}

func handleDelete(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.Delete(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
