package httpapi

import (
	"encoding/json"
	"net/http"

	"gigtracker/internal/models"
)

func (s *Server) handleCreatePerformance(w http.ResponseWriter, r *http.Request, user *models.User) {
	var perf models.Performance
	if err := json.NewDecoder(r.Body).Decode(&perf); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON payload"})
		return
	}

	created, err := s.performances.Create(r.Context(), user.ID, &perf)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListPerformances(w http.ResponseWriter, r *http.Request, user *models.User) {
	performances, err := s.performances.List(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, performances)
}

func (s *Server) handleGetPerformance(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid performance id"})
		return
	}

	perf, err := s.performances.Get(r.Context(), user.ID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, perf)
}

func (s *Server) handleUpdatePerformance(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid performance id"})
		return
	}

	var update models.PerformanceUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON payload"})
		return
	}

	updated, err := s.performances.Update(r.Context(), user.ID, id, update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePerformance(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid performance id"})
		return
	}

	if err := s.performances.Delete(r.Context(), user.ID, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "performance removed"})
}

func (s *Server) handlePerformancesByVenue(w http.ResponseWriter, r *http.Request, user *models.User) {
	venueID, err := pathID(r, "venueId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid venue id"})
		return
	}

	performances, err := s.performances.ByVenue(r.Context(), user.ID, venueID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, performances)
}

func (s *Server) handleUpcomingPerformances(w http.ResponseWriter, r *http.Request, user *models.User) {
	performances, err := s.performances.Upcoming(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, performances)
}

func (s *Server) handlePastPerformances(w http.ResponseWriter, r *http.Request, user *models.User) {
	performances, err := s.performances.Past(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, performances)
}
