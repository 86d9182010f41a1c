// File path: internal/api/affirmations_handler.go
package api

import (
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/nicodishanthj/affirmd/internal/common"
	"github.com/nicodishanthj/affirmd/internal/model"
)

type createAffirmationRequest struct {
	Text  *string `json:"text"`
	Order *int    `json:"order"`
}

type updateAffirmationRequest struct {
	Text  *string `json:"text"`
	Order *int    `json:"order"`
}

type reorderRequest struct {
	AffirmationIDs *[]string `json:"affirmation_ids"`
}

func (s *Server) handleListAffirmations(w http.ResponseWriter, r *http.Request) {
	affirmations, err := s.affirmations.List(r.Context())
	if err != nil {
		writeServiceError(w, fmt.Errorf("list affirmations: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, affirmations)
}

func (s *Server) handleCreateAffirmation(w http.ResponseWriter, r *http.Request) {
	var req createAffirmationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if req.Text == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("text required"))
		return
	}
	created, err := s.affirmations.Create(r.Context(), *req.Text, req.Order)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.Logger().Info("api: affirmation created", "id", created.ID, "order", created.Order)
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdateAffirmation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateAffirmationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	updated, err := s.affirmations.Update(r.Context(), id, req.Text, req.Order)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAffirmation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.affirmations.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Affirmation deleted successfully"})
}

func (s *Server) handleReorderAffirmations(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if req.AffirmationIDs == nil {
		writeServiceError(w, fmt.Errorf("%w: affirmation_ids required", model.ErrInvalidArgument))
		return
	}
	if _, err := s.affirmations.Reorder(r.Context(), *req.AffirmationIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Affirmations reordered successfully"})
}

func (s *Server) handleSeedAffirmations(w http.ResponseWriter, r *http.Request) {
	result, err := s.affirmations.SeedExamples(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: result.Message()})
}
