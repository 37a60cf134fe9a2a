package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func requestAs(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	identity := &Identity{UserID: uuid.New(), Role: role}
	return req.WithContext(WithIdentity(req.Context(), identity))
}

func TestRequireStaff(t *testing.T) {
	tests := []struct {
		role       string
		wantStatus int
	}{
		{entity.RoleAdmin, http.StatusOK},
		{entity.RoleDoctor, http.StatusOK},
		{entity.RoleReceptionist, http.StatusOK},
		{entity.RolePatient, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			called := false
			rec := httptest.NewRecorder()

			RequireStaff(okHandler(&called)).ServeHTTP(rec, requestAs(tt.role))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != (tt.wantStatus == http.StatusOK) {
				t.Errorf("handler called = %v", called)
			}
		})
	}
}

func TestRequireDoctorRejectsOthers(t *testing.T) {
	for _, role := range []string{entity.RoleAdmin, entity.RoleReceptionist, entity.RolePatient} {
		called := false
		rec := httptest.NewRecorder()

		RequireDoctor(okHandler(&called)).ServeHTTP(rec, requestAs(role))

		if rec.Code != http.StatusForbidden || called {
			t.Errorf("role %s: status = %d, called = %v, want 403 and not called", role, rec.Code, called)
		}
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RequireStaff(okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized || called {
		t.Errorf("status = %d, called = %v, want 401 and not called", rec.Code, called)
	}
}
