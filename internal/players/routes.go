package players

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the player catalog endpoints under /api/players.
func RegisterRoutes(r chi.Router, catalog *Catalog) {
	r.Route("/api/players", func(r chi.Router) {
		r.Get("/search", handleSearch(catalog))
		r.Get("/info/{id}", handleInfo(catalog))
		r.Get("/generate/{id}", handleDocument(catalog))
	})
}

func handleSearch(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if query == "" {
			http.Error(w, "query is required", http.StatusBadRequest)
			return
		}
		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		results := catalog.Search(query, limit)
		if results == nil {
			results = []Player{}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

func handleInfo(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid player id", http.StatusBadRequest)
			return
		}

		p, err := catalog.Get(id)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "player not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleDocument(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid player id", http.StatusBadRequest)
			return
		}

		doc, err := catalog.Document(id)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "player not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrNoDocument) {
			http.Error(w, "player has no model data available", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
