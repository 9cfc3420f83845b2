package main

import (
	"net/http"

	"gigtracker/internal/app/auth"
	"gigtracker/internal/app/interactions"
	"gigtracker/internal/app/performances"
	"gigtracker/internal/app/users"
	"gigtracker/internal/app/venues"
	"gigtracker/internal/httpapi"
	"gigtracker/internal/middleware"
	"gigtracker/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	authSvc := auth.New(dataStore, tokens)
	userSvc := users.New(dataStore)
	venueSvc := venues.New(dataStore)
	performanceSvc := performances.New(dataStore)
	interactionSvc := interactions.New(dataStore)

	handler := httpapi.New(authSvc, userSvc, venueSvc, performanceSvc, interactionSvc).Routes()

	// Outermost first: recovery wraps logging wraps CORS wraps the routes.
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)

	return handler
}
