package http

import (
	"net/http"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type OrganizationHandler struct {
	svc service.OrganizationService
}

func NewOrganizationHandler(svc service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{svc: svc}
}

func (h *OrganizationHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	orgs, err := h.svc.ListOrganizations(r.Context(), scope)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"organizations": orgs})
}

func (h *OrganizationHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	org, err := h.svc.GetOrganization(r.Context(), scope, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	var org domain.Organization
	if err := decodeBody(r, &org); err != nil {
		writeError(w, err)
		return
	}
	org.ID = mux.Vars(r)["id"]
	if err := h.svc.UpdateOrganization(r.Context(), scope, &org); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	campaigns, err := h.svc.ListCampaigns(r.Context(), scope, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"campaigns": campaigns})
}

// RegisterOrganizationRoutes mounts the organization and campaign endpoints.
func RegisterOrganizationRoutes(router *mux.Router, svc service.OrganizationService) {
	h := NewOrganizationHandler(svc)
	router.HandleFunc("/organizations", h.ListOrganizations).Methods("GET")
	router.HandleFunc("/organizations/{id}", h.GetOrganization).Methods("GET")
	router.HandleFunc("/organizations/{id}", h.UpdateOrganization).Methods("PUT")
	router.HandleFunc("/organizations/{id}/campaigns", h.ListCampaigns).Methods("GET")
}
