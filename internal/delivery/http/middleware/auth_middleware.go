package middleware

import (
	"context"
	"errors"
	"net/http"

	"clinic-api/internal/service"
	"clinic-api/pkg/jwt"
	"clinic-api/pkg/response"

	"github.com/google/uuid"
)

// SessionCookieName is the HTTP-only cookie carrying the session
// credential.
const SessionCookieName = "clinic_token"

type contextKey string

const identityKey contextKey = "identity"

// Identity is the verified caller, derived from the session cookie
// and threaded through the request context into every domain call.
type Identity struct {
	UserID  uuid.UUID
	Email   string
	Role    string
	Name    string
	TokenID string
}

var errNoSession = errors.New("no valid session")

type AuthMiddleware struct {
	jwtService   *jwt.JWTService
	sessionStore *service.SessionStore
}

func NewAuthMiddleware(jwtService *jwt.JWTService, sessionStore *service.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// IdentifyRequest resolves the caller from the session cookie. All
// failure causes (missing cookie, expired or malformed token, revoked
// session) collapse into one error so callers cannot distinguish them.
func (m *AuthMiddleware) IdentifyRequest(r *http.Request) (*Identity, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, errNoSession
	}

	claims, err := m.jwtService.ValidateToken(cookie.Value)
	if err != nil {
		return nil, errNoSession
	}

	live, err := m.sessionStore.Exists(r.Context(), claims.UserID, claims.TokenID)
	if err != nil || !live {
		return nil, errNoSession
	}

	return &Identity{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    claims.Role,
		Name:    claims.Name,
		TokenID: claims.TokenID,
	}, nil
}

// Authenticate rejects requests without a valid session. The 401
// message is uniform regardless of the underlying cause.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.IdentifyRequest(r)
		if err != nil {
			response.Unauthorized(w, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentityFromContext extracts the verified caller from context.
func GetIdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok
}

// WithIdentity returns a context carrying the given identity. Used by
// tests and by handlers that resolve identity outside Authenticate.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
