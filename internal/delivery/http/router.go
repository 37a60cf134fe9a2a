package http

import (
	"net/http"

	"clinic-api/internal/delivery/http/handler"
	"clinic-api/internal/delivery/http/middleware"
	"clinic-api/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	patientHandler      *handler.PatientHandler
	doctorHandler       *handler.DoctorHandler
	appointmentHandler  *handler.AppointmentHandler
	consultationHandler *handler.ConsultationHandler
	seedHandler         *handler.SeedHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	consultationHandler *handler.ConsultationHandler,
	seedHandler *handler.SeedHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		patientHandler:      patientHandler,
		doctorHandler:       doctorHandler,
		appointmentHandler:  appointmentHandler,
		consultationHandler: consultationHandler,
		seedHandler:         seedHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Demo data seeding (idempotent)
	api.HandleFunc("/seed", r.seedHandler.Seed).Methods(http.MethodPost)

	// Auth routes (public). /me resolves the session itself so it can
	// answer with a null user instead of a 401.
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Patient routes
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.HandleFunc("", r.patientHandler.List).Methods(http.MethodGet)
	patients.HandleFunc("", middleware.RequireStaff(http.HandlerFunc(r.patientHandler.Create)).ServeHTTP).Methods(http.MethodPost)
	patients.HandleFunc("", r.patientHandler.Update).Methods(http.MethodPatch)
	patients.HandleFunc("/search", middleware.RequireStaff(http.HandlerFunc(r.patientHandler.Search)).ServeHTTP).Methods(http.MethodGet)

	// Doctor directory
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("", r.doctorHandler.List).Methods(http.MethodGet)

	// Appointment routes
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)
	appointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	appointments.HandleFunc("/slots", r.appointmentHandler.AvailableSlots).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/status",
		middleware.RequireRole(entity.RoleAdmin, entity.RoleDoctor, entity.RoleReceptionist)(http.HandlerFunc(r.appointmentHandler.UpdateStatus)).ServeHTTP,
	).Methods(http.MethodPatch)

	// Consultation routes
	consultations := api.PathPrefix("/consultations").Subrouter()
	consultations.Use(r.authMiddleware.Authenticate)
	consultations.HandleFunc("", r.consultationHandler.List).Methods(http.MethodGet)
	consultations.HandleFunc("", middleware.RequireDoctor(http.HandlerFunc(r.consultationHandler.Create)).ServeHTTP).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
