package httpapi

import (
	"encoding/json"
	"net/http"

	"gigtracker/internal/models"
)

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request, user *models.User) {
	var venue models.Venue
	if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON payload"})
		return
	}

	created, err := s.venues.Create(r.Context(), user.ID, &venue)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request, user *models.User) {
	venues, err := s.venues.List(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, venues)
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid venue id"})
		return
	}

	venue, err := s.venues.Get(r.Context(), user.ID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

func (s *Server) handleUpdateVenue(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid venue id"})
		return
	}

	var update models.VenueUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON payload"})
		return
	}

	updated, err := s.venues.Update(r.Context(), user.ID, id, update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid venue id"})
		return
	}

	if err := s.venues.Delete(r.Context(), user.ID, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "venue removed"})
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request, user *models.User) {
	venues, err := s.venues.Search(r.Context(), user.ID, r.PathValue("query"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, venues)
}

func (s *Server) handleVenuesByLocation(w http.ResponseWriter, r *http.Request, user *models.User) {
	venues, err := s.venues.ByLocation(r.Context(), user.ID, r.PathValue("city"), r.PathValue("country"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, venues)
}
