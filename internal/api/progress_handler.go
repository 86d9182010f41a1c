// File path: internal/api/progress_handler.go
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/nicodishanthj/affirmd/internal/common"
	"github.com/nicodishanthj/affirmd/internal/model"
	"github.com/nicodishanthj/affirmd/internal/progress"
)

type markCompleteRequest struct {
	Date          string `json:"date"`
	AffirmationID string `json:"affirmation_id"`
}

func (s *Server) handleTodayProgress(w http.ResponseWriter, r *http.Request) {
	today, err := s.progress.Today(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, today)
}

func (s *Server) handleMarkComplete(w http.ResponseWriter, r *http.Request) {
	var req markCompleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		writeServiceError(w, fmt.Errorf("%w: date required", model.ErrInvalidArgument))
		return
	}
	updated, err := s.progress.MarkComplete(r.Context(), date, strings.TrimSpace(req.AffirmationID))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.Logger().Info("api: affirmation practiced",
		"date", updated.Date,
		"affirmation_id", req.AffirmationID,
		"practice_count", updated.PracticeCount,
		"completion", updated.CompletionPercentage,
	)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleProgressHistory(w http.ResponseWriter, r *http.Request) {
	days := progress.DefaultHistoryDays
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeServiceError(w, fmt.Errorf("%w: days must be an integer", model.ErrInvalidArgument))
			return
		}
		days = parsed
	}
	history, err := s.progress.History(r.Context(), days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
