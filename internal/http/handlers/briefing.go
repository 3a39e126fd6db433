// README: Concierge briefing endpoint: day summary text plus spoken audio.
package handlers

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voyager/internal/ai"
	"voyager/internal/modules/trip"
)

type BriefingHandler struct {
	trips       *trip.Service
	synthesizer ai.Synthesizer
}

func NewBriefingHandler(trips *trip.Service, synthesizer ai.Synthesizer) *BriefingHandler {
	return &BriefingHandler{trips: trips, synthesizer: synthesizer}
}

type briefingRequest struct {
	Day int `json:"day"`
}

// Create composes the day briefing and, when a synthesizer is wired,
// attaches the spoken version as base64 audio.
func (h *BriefingHandler) Create(c *gin.Context) {
	var req briefingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if raw := c.Query("day"); raw != "" {
			n, convErr := strconv.Atoi(raw)
			if convErr != nil {
				writeError(c, trip.ErrBadRequest)
				return
			}
			req.Day = n
		}
	}
	if req.Day == 0 {
		req.Day = 1
	}

	text, err := h.trips.Briefing(req.Day)
	if err != nil {
		writeError(c, err)
		return
	}

	body := gin.H{"text": text}
	if h.synthesizer != nil {
		audio, err := h.synthesizer.SynthesizeSpeech(c.Request.Context(), "Concierge voice: "+text)
		if err != nil {
			writeError(c, err)
			return
		}
		body["audio"] = base64.StdEncoding.EncodeToString(audio)
	}
	writeJSON(c, http.StatusOK, body)
}
