package httpapi

import (
	"encoding/json"
	"net/http"

	"gigtracker/internal/models"
)

func (s *Server) handleCreateInteraction(w http.ResponseWriter, r *http.Request, user *models.User) {
	var in models.Interaction
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON payload"})
		return
	}

	created, err := s.interactions.Create(r.Context(), user.ID, &in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListInteractions(w http.ResponseWriter, r *http.Request, user *models.User) {
	interactions, err := s.interactions.List(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, interactions)
}

func (s *Server) handleGetInteraction(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid interaction id"})
		return
	}

	in, err := s.interactions.Get(r.Context(), user.ID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) handleUpdateInteraction(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid interaction id"})
		return
	}

	var update models.InteractionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON payload"})
		return
	}

	updated, err := s.interactions.Update(r.Context(), user.ID, id, update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteInteraction(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid interaction id"})
		return
	}

	if err := s.interactions.Delete(r.Context(), user.ID, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "interaction removed"})
}

func (s *Server) handleInteractionsByVenue(w http.ResponseWriter, r *http.Request, user *models.User) {
	venueID, err := pathID(r, "venueId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid venue id"})
		return
	}

	interactions, err := s.interactions.ByVenue(r.Context(), user.ID, venueID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, interactions)
}

func (s *Server) handleFollowUps(w http.ResponseWriter, r *http.Request, user *models.User) {
	interactions, err := s.interactions.FollowUps(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, interactions)
}
