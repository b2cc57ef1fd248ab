package http

import (
	"net/http"

	"promodesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type RejectionReasonHandler struct {
	svc service.RejectionReasonService
}

func NewRejectionReasonHandler(svc service.RejectionReasonService) *RejectionReasonHandler {
	return &RejectionReasonHandler{svc: svc}
}

func (h *RejectionReasonHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	reasons, err := h.svc.ListOptions(r.Context(), scope.OrganizationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reasons": reasons})
}

type createReasonRequest struct {
	Text string `json:"text"`
}

func (h *RejectionReasonHandler) CreateReason(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	var req createReasonRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	reason, err := h.svc.CreateReason(r.Context(), scope, scope.OrganizationID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reason)
}

func (h *RejectionReasonHandler) DeleteReason(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	if err := h.svc.DeleteReason(r.Context(), scope, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// RegisterRejectionReasonRoutes mounts the canned rejection reason endpoints.
func RegisterRejectionReasonRoutes(router *mux.Router, svc service.RejectionReasonService) {
	h := NewRejectionReasonHandler(svc)
	router.HandleFunc("/rejection-reasons", h.ListOptions).Methods("GET")
	router.HandleFunc("/rejection-reasons", h.CreateReason).Methods("POST")
	router.HandleFunc("/rejection-reasons/{id}", h.DeleteReason).Methods("DELETE")
}
