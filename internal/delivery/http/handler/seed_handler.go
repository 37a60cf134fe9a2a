package handler

import (
	"net/http"

	"clinic-api/internal/service"
	"clinic-api/pkg/response"
)

type SeedHandler struct {
	seedService *service.SeedService
}

func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// Seed creates the demo accounts and demo patient. Idempotent.
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	results, err := h.seedService.Run(r.Context())
	if err != nil {
		response.InternalServerError(w, "Seed failed")
		return
	}

	response.Success(w, http.StatusOK, "Seed completed", map[string]interface{}{
		"results": results,
	})
}
