package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"gigtracker/internal/app/auth"
	"gigtracker/internal/models"
	"gigtracker/internal/store"
)

// AuthService captures registration, login and credential verification.
type AuthService interface {
	Register(ctx context.Context, reg models.Registration) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	UserFromToken(ctx context.Context, token string) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

// UserService exposes self-profile management.
type UserService interface {
	Profile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

// VenueService coordinates venue workflows.
type VenueService interface {
	Create(ctx context.Context, userID int64, venue *models.Venue) (*models.Venue, error)
	List(ctx context.Context, userID int64) ([]*models.Venue, error)
	Get(ctx context.Context, userID, id int64) (*models.Venue, error)
	Update(ctx context.Context, userID, id int64, update models.VenueUpdate) (*models.Venue, error)
	Delete(ctx context.Context, userID, id int64) error
	Search(ctx context.Context, userID int64, query string) ([]*models.Venue, error)
	ByLocation(ctx context.Context, userID int64, city, country string) ([]*models.Venue, error)
}

// PerformanceService coordinates performance workflows.
type PerformanceService interface {
	Create(ctx context.Context, userID int64, perf *models.Performance) (*models.Performance, error)
	List(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error)
	Get(ctx context.Context, userID, id int64) (*models.PerformanceWithVenue, error)
	Update(ctx context.Context, userID, id int64, update models.PerformanceUpdate) (*models.Performance, error)
	Delete(ctx context.Context, userID, id int64) error
	ByVenue(ctx context.Context, userID, venueID int64) ([]*models.PerformanceWithVenue, error)
	Upcoming(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error)
	Past(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error)
}

// InteractionService coordinates interaction workflows.
type InteractionService interface {
	Create(ctx context.Context, userID int64, in *models.Interaction) (*models.Interaction, error)
	List(ctx context.Context, userID int64) ([]*models.InteractionWithVenue, error)
	Get(ctx context.Context, userID, id int64) (*models.InteractionWithVenue, error)
	Update(ctx context.Context, userID, id int64, update models.InteractionUpdate) (*models.Interaction, error)
	Delete(ctx context.Context, userID, id int64) error
	ByVenue(ctx context.Context, userID, venueID int64) ([]*models.InteractionWithVenue, error)
	FollowUps(ctx context.Context, userID int64) ([]*models.InteractionWithVenue, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	auth         AuthService
	users        UserService
	venues       VenueService
	performances PerformanceService
	interactions InteractionService
}

// New configures a Server with the given services.
func New(
	auth AuthService,
	users UserService,
	venues VenueService,
	performances PerformanceService,
	interactions InteractionService,
) *Server {
	return &Server{
		auth:         auth,
		users:        users,
		venues:       venues,
		performances: performances,
		interactions: interactions,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth routes (register/login/forgot/reset are public)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/me", s.withUser(s.handleMe))
	mux.HandleFunc("POST /api/auth/logout", s.withUser(s.handleLogout))
	mux.HandleFunc("POST /api/auth/forgot-password", s.handleForgotPassword)
	mux.HandleFunc("PUT /api/auth/reset-password/{token}", s.handleResetPassword)

	// Venue routes
	mux.HandleFunc("POST /api/venues", s.withUser(s.handleCreateVenue))
	mux.HandleFunc("GET /api/venues", s.withUser(s.handleListVenues))
	mux.HandleFunc("GET /api/venues/{id}", s.withUser(s.handleGetVenue))
	mux.HandleFunc("PUT /api/venues/{id}", s.withUser(s.handleUpdateVenue))
	mux.HandleFunc("DELETE /api/venues/{id}", s.withUser(s.handleDeleteVenue))
	mux.HandleFunc("GET /api/venues/search/{query}", s.withUser(s.handleSearchVenues))
	mux.HandleFunc("GET /api/venues/location/{city}/{country}", s.withUser(s.handleVenuesByLocation))

	// Performance routes
	mux.HandleFunc("POST /api/performances", s.withUser(s.handleCreatePerformance))
	mux.HandleFunc("GET /api/performances", s.withUser(s.handleListPerformances))
	mux.HandleFunc("GET /api/performances/{id}", s.withUser(s.handleGetPerformance))
	mux.HandleFunc("PUT /api/performances/{id}", s.withUser(s.handleUpdatePerformance))
	mux.HandleFunc("DELETE /api/performances/{id}", s.withUser(s.handleDeletePerformance))
	mux.HandleFunc("GET /api/performances/venue/{venueId}", s.withUser(s.handlePerformancesByVenue))
	mux.HandleFunc("GET /api/performances/upcoming", s.withUser(s.handleUpcomingPerformances))
	mux.HandleFunc("GET /api/performances/past", s.withUser(s.handlePastPerformances))

	// Interaction routes
	mux.HandleFunc("POST /api/interactions", s.withUser(s.handleCreateInteraction))
	mux.HandleFunc("GET /api/interactions", s.withUser(s.handleListInteractions))
	mux.HandleFunc("GET /api/interactions/{id}", s.withUser(s.handleGetInteraction))
	mux.HandleFunc("PUT /api/interactions/{id}", s.withUser(s.handleUpdateInteraction))
	mux.HandleFunc("DELETE /api/interactions/{id}", s.withUser(s.handleDeleteInteraction))
	mux.HandleFunc("GET /api/interactions/venue/{venueId}", s.withUser(s.handleInteractionsByVenue))
	mux.HandleFunc("GET /api/interactions/followups", s.withUser(s.handleFollowUps))

	// User routes
	mux.HandleFunc("GET /api/users/profile", s.withUser(s.handleGetProfile))
	mux.HandleFunc("PUT /api/users/profile", s.withUser(s.handleUpdateProfile))
	mux.HandleFunc("PUT /api/users/change-password", s.withUser(s.handleChangePassword))

	return mux
}

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []models.FieldError `json:"errors,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// withUser runs the authentication gate before the wrapped handler. Every
// failure mode short-circuits as 401.
func (s *Server) withUser(next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := parseBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "not authorized, no token"})
			return
		}

		user, err := s.auth.UserFromToken(r.Context(), token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		next(w, r, user)
	}
}

// writeError is the single translation point from the error taxonomy to
// HTTP status codes. Unexpected failures are logged and reported as a bare
// server error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "validation failed", Errors: vErr.Fields})
	case errors.Is(err, store.ErrEmailTaken):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "user already exists"})
	case errors.Is(err, store.ErrResetTokenInvalid):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid token"})
	case errors.Is(err, store.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "invalid credentials"})
	case errors.Is(err, auth.ErrInactiveAccount):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "account is inactive"})
	case errors.Is(err, auth.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "not authorized, invalid token"})
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrVenueNotFound),
		errors.Is(err, store.ErrPerformanceNotFound),
		errors.Is(err, store.ErrInteractionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "server error"})
	}
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
