// File path: internal/api/settings_handler.go
package api

import (
	"net/http"

	"github.com/nicodishanthj/affirmd/internal/model"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	current, err := s.settings.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch model.SettingsPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeServiceError(w, err)
		return
	}
	updated, err := s.settings.Update(r.Context(), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
