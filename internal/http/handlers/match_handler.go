// README: Match handler. Builds a per-request engine that excludes the caller's own rides.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/geocode"
	"carpool/internal/http/middleware"
	"carpool/internal/modules/match"
	"carpool/internal/modules/ride"
)

type MatchHandler struct {
	geocoder  geocode.Geocoder
	rides     *ride.Service
	threshold float64
	logger    *slog.Logger
}

func NewMatchHandler(geocoder geocode.Geocoder, rides *ride.Service, threshold float64, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{geocoder: geocoder, rides: rides, threshold: threshold, logger: logger}
}

// excludingSource feeds the engine every ride except the caller's own.
type excludingSource struct {
	rides *ride.Service
	phone string
}

func (s excludingSource) List(ctx context.Context) ([]ride.Offer, error) {
	return s.rides.ListOthers(ctx, s.phone)
}

func (h *MatchHandler) Find(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		writeError(c, http.StatusBadRequest, "from and to are required")
		return
	}

	source := excludingSource{rides: h.rides, phone: middleware.CallerPhone(c)}
	engine := match.NewEngine(h.geocoder, source, h.threshold, h.logger)
	results, err := engine.FindMatches(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"matches": results})
}
