package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"promodesk-backend/internal/console"
	"promodesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Validation", domain.NewValidationError("state", "not assigned"), http.StatusBadRequest},
		{"NotFound", domain.ErrNotFound, http.StatusNotFound},
		{"WrappedNotFound", domain.NewWriteError("update promoter", domain.ErrNotFound), http.StatusNotFound},
		{"MutationInFlight", console.ErrMutationInFlight, http.StatusConflict},
		{"FetchInFlight", console.ErrFetchInFlight, http.StatusConflict},
		{"Fetch", domain.NewFetchError("list promoters", errors.New("timeout")), http.StatusBadGateway},
		{"Write", domain.NewWriteError("approve promoter", errors.New("timeout")), http.StatusBadGateway},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
