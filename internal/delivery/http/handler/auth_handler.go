package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"clinic-api/config"
	"clinic-api/internal/delivery/dto"
	"clinic-api/internal/delivery/http/middleware"
	"clinic-api/internal/usecase"
	"clinic-api/pkg/response"
	"clinic-api/pkg/validator"
)

type AuthHandler struct {
	authUsecase    usecase.AuthUsecase
	validator      *validator.CustomValidator
	authMiddleware *middleware.AuthMiddleware
	appConfig      config.AppConfig
	sessionExpiry  time.Duration
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validator *validator.CustomValidator,
	authMiddleware *middleware.AuthMiddleware,
	appConfig config.AppConfig,
	sessionExpiry time.Duration,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:    authUsecase,
		validator:      validator,
		authMiddleware: authMiddleware,
		appConfig:      appConfig,
		sessionExpiry:  sessionExpiry,
	}
}

// Register handles patient self-registration. A successful response
// carries the user summary and sets the session cookie.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, token, err := h.authUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "An account with this email already exists")
		default:
			response.InternalServerError(w, "Failed to register")
		}
		return
	}

	h.setSessionCookie(w, token)
	response.Success(w, http.StatusCreated, "Registered successfully", dto.SessionResponse{User: *user})
}

// Login verifies credentials and sets the session cookie. The failure
// message never reveals which field was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, token, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid email or password")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	h.setSessionCookie(w, token)
	response.Success(w, http.StatusOK, "Login successful", dto.SessionResponse{User: *user})
}

// Logout revokes the session server-side and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), identity); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	h.clearSessionCookie(w)
	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// Me returns the caller's user summary, or a null user when no valid
// session is present. Never a 401: the page shell probes this on load.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, err := h.authMiddleware.IdentifyRequest(r)
	if err != nil {
		response.JSON(w, http.StatusOK, map[string]interface{}{"user": nil})
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), identity.UserID)
	if err != nil {
		response.JSON(w, http.StatusOK, map[string]interface{}{"user": nil})
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionExpiry.Seconds()),
		HttpOnly: true,
		Secure:   h.appConfig.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.appConfig.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
