package http

import (
	"net/http"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	svc service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Me returns the calling admin's own record so the front end can shape its
// navigation around the role and assignments.
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	admin, err := h.svc.GetAdmin(r.Context(), scope.Actor().UID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, admin)
}

func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	admins, err := h.svc.ListAdmins(r.Context(), scope, r.URL.Query().Get("organizationId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"admins": admins})
}

type updateAssignmentsRequest struct {
	States    []string            `json:"states"`
	Campaigns map[string][]string `json:"campaigns"`
}

func (h *AdminHandler) UpdateAssignments(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	var req updateAssignmentsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	admin, err := h.svc.UpdateAssignments(r.Context(), scope, mux.Vars(r)["uid"], req.States, req.Campaigns)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, admin)
}

func (h *AdminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	apps, err := h.svc.ListApplications(r.Context(), scope, r.URL.Query().Get("organizationId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

type approveApplicationRequest struct {
	Role   string   `json:"role"`
	States []string `json:"states"`
}

func (h *AdminHandler) ApproveApplication(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	var req approveApplicationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	admin, err := h.svc.ApproveApplication(r.Context(), scope, mux.Vars(r)["id"], domain.AdminRole(req.Role), req.States)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, admin)
}

func (h *AdminHandler) RejectApplication(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	if err := h.svc.RejectApplication(r.Context(), scope, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// RegisterAdminRoutes mounts the admin management endpoints.
func RegisterAdminRoutes(router *mux.Router, svc service.AdminService) {
	h := NewAdminHandler(svc)
	router.HandleFunc("/admins/me", h.Me).Methods("GET")
	router.HandleFunc("/admins", h.ListAdmins).Methods("GET")
	router.HandleFunc("/admins/{uid}/assignments", h.UpdateAssignments).Methods("PUT")
	router.HandleFunc("/admin-applications", h.ListApplications).Methods("GET")
	router.HandleFunc("/admin-applications/{id}/approve", h.ApproveApplication).Methods("POST")
	router.HandleFunc("/admin-applications/{id}/reject", h.RejectApplication).Methods("POST")
}
