// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"midway/internal/ai"
	"midway/internal/config"
	"midway/internal/http/handlers"
	"midway/internal/http/middleware"
)

type RouterDeps struct {
	Planner    handlers.MeetingPlanner
	Resolver   handlers.AddressResolver
	Classifier ai.IntentClassifier
	HTTP       config.HTTPConfig
	RateLimit  config.RateLimitConfig
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(deps.HTTP.AllowedOrigins))
	r.Use(middleware.NewRateLimiter(deps.RateLimit.RPS, deps.RateLimit.Burst).Handler())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	geocodeHandler := handlers.NewGeocodeHandler(deps.Resolver)
	r.POST("/api/geocode", geocodeHandler.Resolve)

	intentHandler := handlers.NewIntentHandler(deps.Classifier)
	r.POST("/api/interpret", intentHandler.Interpret)

	meetingHandler := handlers.NewMeetingHandler(deps.Planner, deps.Resolver, deps.Classifier)
	r.POST("/api/find-middle", meetingHandler.FindMiddle)

	return r
}
