// README: Conversational assistant endpoints.
package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyager/internal/modules/assistant"
	"voyager/internal/types"
)

type AssistantHandler struct {
	assistant *assistant.Service
}

func NewAssistantHandler(svc *assistant.Service) *AssistantHandler {
	return &AssistantHandler{assistant: svc}
}

type sendMessageRequest struct {
	Text string   `json:"text"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

// Send posts a user message and returns the assistant's reply.
func (h *AssistantHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, assistant.ErrEmptyMessage)
		return
	}

	var at *types.LatLng
	if req.Lat != nil && req.Lng != nil {
		at = &types.LatLng{Lat: *req.Lat, Lng: *req.Lng}
	}

	reply, err := h.assistant.Send(c.Request.Context(), c.Param("conv"), req.Text, at)
	if err != nil {
		writeError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, reply)
}

type analyzeImageRequest struct {
	Data     string `json:"data"`
	MIMEType string `json:"mimeType"`
}

// AnalyzeImage accepts a base64 image and returns the model's reading.
func (h *AssistantHandler) AnalyzeImage(c *gin.Context) {
	var req analyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, assistant.ErrEmptyMessage)
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil || len(data) == 0 {
		writeError(c, assistant.ErrEmptyMessage)
		return
	}

	reply, err := h.assistant.AnalyzeImage(c.Request.Context(), c.Param("conv"), data, req.MIMEType)
	if err != nil {
		writeError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, reply)
}

// History returns the conversation log.
func (h *AssistantHandler) History(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"messages": h.assistant.History(c.Param("conv"))})
}
