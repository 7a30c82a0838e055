package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/docschat/docschat/internal/catalog"
	"github.com/docschat/docschat/internal/query"
)

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	reply, err := s.svc.Answer(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, query.ErrEmptyQuery) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
			return
		}
		// The detailed cause goes to the log, never to the client.
		s.logger.Printf("chat request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "error processing chat"})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sidebar)
}

type corpusResponse struct {
	LastRun   *catalog.Run           `json:"last_run"`
	Documents []catalog.DocumentInfo `json:"documents"`
}

func (s *Server) handleCorpus(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "corpus catalog is not configured"})
		return
	}

	run, err := s.catalog.LatestRun(r.Context())
	if err != nil {
		s.logger.Printf("corpus listing failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "error listing corpus"})
		return
	}

	docs, err := s.catalog.ListDocuments(r.Context())
	if err != nil {
		s.logger.Printf("corpus listing failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "error listing corpus"})
		return
	}

	writeJSON(w, http.StatusOK, corpusResponse{LastRun: run, Documents: docs})
}
