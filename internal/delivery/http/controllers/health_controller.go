package controllers

import (
	"net/http"

	"mergingtonactivities/internal/delivery/http/helpers"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthResponse
// @Router /healthz [get]
func Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
