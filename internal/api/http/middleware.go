package http

import (
	"net/http"
	"strings"

	"promodesk-backend/internal/logger"
	"promodesk-backend/internal/repository"
	"promodesk-backend/internal/security"
)

// AuthMiddleware verifies the bearer token, resolves the calling admin and
// injects their access scope into the request context. Requests from
// identities without an admin record are rejected; an admin application is
// not an admin.
type AuthMiddleware struct {
	verifier  security.TokenVerifier
	adminRepo repository.AdminUserRepository
}

func NewAuthMiddleware(verifier security.TokenVerifier, adminRepo repository.AdminUserRepository) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, adminRepo: adminRepo}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization token is not provided"})
			return
		}

		identity, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		admin, err := m.adminRepo.GetByUID(r.Context(), identity.UID)
		if err != nil {
			logger.Warn("Authenticated identity has no admin record", "uid", identity.UID)
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "no admin access"})
			return
		}

		ctx := contextWithScope(r.Context(), admin.Scope())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[0:7], "bearer ") {
		return header[7:]
	}
	return header
}
