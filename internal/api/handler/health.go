package handler

import (
	"net/http"

	"github.com/ecofinds/ecofinds-api/internal/api/response"
	"github.com/ecofinds/ecofinds-api/internal/repository/mongo"
)

// HealthCheck returns a simple liveness response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status":  "ok",
		"message": "EcoFinds API is running!",
	})
}

// ReadyCheck reports readiness including database connectivity
func ReadyCheck(db *mongo.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database not ready")
			return
		}

		response.OK(w, map[string]string{
			"status": "ready",
		})
	}
}
