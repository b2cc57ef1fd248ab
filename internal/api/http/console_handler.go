package http

import (
	"net/http"

	"promodesk-backend/internal/console"
	"promodesk-backend/internal/domain"

	"github.com/gorilla/mux"
)

// ConsoleHandler exposes the stateful promoter list controller over HTTP.
// Each admin opens a session holding one controller; the front end replays
// user actions against it and renders the returned snapshots.
type ConsoleHandler struct {
	sessions *console.SessionManager
}

func NewConsoleHandler(sessions *console.SessionManager) *ConsoleHandler {
	return &ConsoleHandler{sessions: sessions}
}

type openSessionResponse struct {
	SessionID string           `json:"sessionId"`
	Snapshot  console.Snapshot `json:"snapshot"`
}

func (h *ConsoleHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}

	id, ctrl := h.sessions.Open(scope)
	if err := ctrl.Load(r.Context()); err != nil {
		h.sessions.Close(id)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, openSessionResponse{SessionID: id, Snapshot: ctrl.Snapshot()})
}

func (h *ConsoleHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *ConsoleHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	if _, found := h.sessions.Get(mux.Vars(r)["id"], scope.Actor().UID); !found {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	h.sessions.Close(mux.Vars(r)["id"])
	writeJSON(w, http.StatusNoContent, nil)
}

type setFilterRequest struct {
	Dimension string `json:"dimension"`
	Value     string `json:"value"`
}

func (h *ConsoleHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	var req setFilterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := ctrl.SetFilter(r.Context(), console.FilterDimension(req.Dimension), req.Value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

type localSearchRequest struct {
	Query string `json:"query"`
}

func (h *ConsoleHandler) SetLocalSearch(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	var req localSearchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	ctrl.SetLocalSearch(req.Query)
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *ConsoleHandler) NextPage(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := ctrl.NextPage(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *ConsoleHandler) PrevPage(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := ctrl.PrevPage(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *ConsoleHandler) ApprovePromoter(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := ctrl.Approve(r.Context(), mux.Vars(r)["promoterId"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

type rejectRequest struct {
	Reason            string `json:"reason"`
	AllowFurtherEdits bool   `json:"allowFurtherEdits"`
}

func (h *ConsoleHandler) RejectPromoter(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	var req rejectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := ctrl.Reject(r.Context(), mux.Vars(r)["promoterId"], req.Reason, req.AllowFurtherEdits); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *ConsoleHandler) EditPromoter(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	var update domain.PromoterUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, err)
		return
	}
	if err := ctrl.ApplyEdit(r.Context(), mux.Vars(r)["promoterId"], update); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (h *ConsoleHandler) LookupByEmail(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	promoters, err := ctrl.LookupByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"promoters": promoters})
}

func (h *ConsoleHandler) controller(w http.ResponseWriter, r *http.Request) (*console.Controller, bool) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return nil, false
	}
	ctrl, found := h.sessions.Get(mux.Vars(r)["id"], scope.Actor().UID)
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return nil, false
	}
	return ctrl, true
}

// RegisterConsoleRoutes mounts the console session endpoints.
func RegisterConsoleRoutes(router *mux.Router, sessions *console.SessionManager) {
	h := NewConsoleHandler(sessions)
	router.HandleFunc("/console/sessions", h.OpenSession).Methods("POST")
	router.HandleFunc("/console/sessions/{id}", h.GetSnapshot).Methods("GET")
	router.HandleFunc("/console/sessions/{id}", h.CloseSession).Methods("DELETE")
	router.HandleFunc("/console/sessions/{id}/filter", h.SetFilter).Methods("PUT")
	router.HandleFunc("/console/sessions/{id}/search", h.SetLocalSearch).Methods("PUT")
	router.HandleFunc("/console/sessions/{id}/next", h.NextPage).Methods("POST")
	router.HandleFunc("/console/sessions/{id}/prev", h.PrevPage).Methods("POST")
	router.HandleFunc("/console/sessions/{id}/promoters/{promoterId}/approve", h.ApprovePromoter).Methods("POST")
	router.HandleFunc("/console/sessions/{id}/promoters/{promoterId}/reject", h.RejectPromoter).Methods("POST")
	router.HandleFunc("/console/sessions/{id}/promoters/{promoterId}", h.EditPromoter).Methods("PATCH")
	router.HandleFunc("/console/sessions/{id}/lookup", h.LookupByEmail).Methods("GET")
}
