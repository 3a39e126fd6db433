// README: HTTP route wiring.
package http

import (
	"github.com/gin-gonic/gin"

	"voyager/internal/http/handlers"
	"voyager/internal/http/middleware"
)

// NewRouter assembles the API surface.
func NewRouter(
	trips *handlers.TripHandler,
	asst *handlers.AssistantHandler,
	voice *handlers.VoiceHandler,
	briefing *handlers.BriefingHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	api := r.Group("/api")
	{
		api.GET("/trip/state", trips.State)
		api.POST("/trip/start", trips.Start)
		api.POST("/trip/plan", trips.Plan)
		api.GET("/trip", trips.Current)
		api.PUT("/trip/days/:day", trips.SelectDay)

		api.POST("/assistant/:conv/messages", asst.Send)
		api.POST("/assistant/:conv/image", asst.AnalyzeImage)
		api.GET("/assistant/:conv", asst.History)

		api.POST("/voice/transcribe", voice.Transcribe)
		api.GET("/voice/live", voice.Live)

		api.POST("/briefing", briefing.Create)
	}

	return r
}
