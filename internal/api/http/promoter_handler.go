package http

import (
	"net/http"
	"strconv"

	"promodesk-backend/internal/console"
	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/service"

	"github.com/gorilla/mux"
)

// PromoterHandler is the stateless promoter surface. The console session
// endpoints cover the interactive review flow; these exist for direct reads
// and for clients that manage their own pagination.
type PromoterHandler struct {
	svc service.PromoterService
}

func NewPromoterHandler(svc service.PromoterService) *PromoterHandler {
	return &PromoterHandler{svc: svc}
}

func (h *PromoterHandler) GetPromoter(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	promoter, err := h.svc.GetPromoter(r.Context(), scope, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promoter)
}

func (h *PromoterHandler) ListPromoters(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}

	q := r.URL.Query()
	filters := domain.PromoterFilters{
		Status:   domain.PromoterStatus(q.Get("status")),
		State:    q.Get("state"),
		Campaign: q.Get("campaign"),
	}
	pageSize := console.DefaultPageSize
	if raw := q.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, domain.NewValidationError("pageSize", "must be a positive integer"))
			return
		}
		pageSize = n
	}

	page, err := h.svc.ListPage(r.Context(), scope, filters, pageSize, q.Get("cursor"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *PromoterHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	q := r.URL.Query()
	filters := domain.PromoterFilters{
		State:    q.Get("state"),
		Campaign: q.Get("campaign"),
	}
	stats, err := h.svc.Stats(r.Context(), scope, filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *PromoterHandler) EditPromoter(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	var update domain.PromoterUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, err)
		return
	}
	promoter, err := h.svc.ApplyEdit(r.Context(), scope, mux.Vars(r)["id"], update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promoter)
}

func (h *PromoterHandler) LookupByEmail(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	promoters, err := h.svc.LookupByEmail(r.Context(), scope, r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"promoters": promoters})
}

func (h *PromoterHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no access scope"})
		return
	}
	states, campaignsByState, err := h.svc.FilterOptions(r.Context(), scope)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"states":           states,
		"campaignsByState": campaignsByState,
	})
}

// RegisterPromoterRoutes mounts the stateless promoter endpoints.
func RegisterPromoterRoutes(router *mux.Router, svc service.PromoterService) {
	h := NewPromoterHandler(svc)
	router.HandleFunc("/promoters", h.ListPromoters).Methods("GET")
	router.HandleFunc("/promoters/stats", h.GetStats).Methods("GET")
	router.HandleFunc("/promoters/lookup", h.LookupByEmail).Methods("GET")
	router.HandleFunc("/promoters/filter-options", h.GetFilterOptions).Methods("GET")
	router.HandleFunc("/promoters/{id}", h.GetPromoter).Methods("GET")
	router.HandleFunc("/promoters/{id}", h.EditPromoter).Methods("PATCH")
}
