package http

import (
	"net/http"

	"promodesk-backend/internal/console"
	"promodesk-backend/internal/service"

	"github.com/gorilla/mux"
)

// RouterDeps collects everything the API router needs.
type RouterDeps struct {
	Auth      *AuthMiddleware
	Sessions  *console.SessionManager
	Promoters service.PromoterService
	Orgs      service.OrganizationService
	Admins    service.AdminService
	Reasons   service.RejectionReasonService
}

// NewRouter builds the full API router. Everything under /api/v1 sits behind
// the auth middleware; /health is public for load balancer probes.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(deps.Auth.Handler)

	RegisterConsoleRoutes(api, deps.Sessions)
	RegisterPromoterRoutes(api, deps.Promoters)
	RegisterOrganizationRoutes(api, deps.Orgs)
	RegisterAdminRoutes(api, deps.Admins)
	RegisterRejectionReasonRoutes(api, deps.Reasons)

	return router
}
