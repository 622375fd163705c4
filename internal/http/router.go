// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carpool/internal/geocode"
	"carpool/internal/http/handlers"
	"carpool/internal/http/middleware"
	"carpool/internal/modules/booking"
	"carpool/internal/modules/message"
	"carpool/internal/modules/ride"
	"carpool/internal/modules/user"
)

type RouterDeps struct {
	Users          *user.Service
	Rides          *ride.Service
	Bookings       *booking.Service
	Messages       *message.Service
	Geocoder       geocode.Geocoder
	ScoreThreshold float64
	Logger         *slog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(deps.Users)
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)

	api := r.Group("/api", middleware.Auth(deps.Users))

	rideHandler := handlers.NewRideHandler(deps.Rides)
	api.POST("/rides", rideHandler.Publish)
	api.GET("/rides", rideHandler.ListOthers)
	api.GET("/rides/mine", rideHandler.ListMine)
	api.DELETE("/rides/:id", rideHandler.Delete)

	matchHandler := handlers.NewMatchHandler(deps.Geocoder, deps.Rides, deps.ScoreThreshold, deps.Logger)
	api.GET("/matches", matchHandler.Find)

	bookingHandler := handlers.NewBookingHandler(deps.Bookings)
	api.POST("/bookings", bookingHandler.Create)
	api.GET("/bookings/rider", bookingHandler.RiderView)
	api.GET("/bookings/requests", bookingHandler.DriverRequests)
	api.POST("/bookings/:id/accept", bookingHandler.Accept)
	api.POST("/bookings/:id/reject", bookingHandler.Reject)

	messageHandler := handlers.NewMessageHandler(deps.Messages)
	api.POST("/messages", messageHandler.Send)
	api.GET("/messages", messageHandler.Conversation)

	return r
}
