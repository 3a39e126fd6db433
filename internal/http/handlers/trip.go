// README: Trip planning endpoints: the wizard flow and the dashboard reads.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voyager/internal/modules/trip"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(trips *trip.Service) *TripHandler {
	return &TripHandler{trips: trips}
}

// Start begins the preference wizard.
func (h *TripHandler) Start(c *gin.Context) {
	if err := h.trips.StartPlanning(); err != nil {
		writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"state": h.trips.State()})
}

// Plan submits the finished preference snapshot and returns the generated
// (or fallback) itinerary.
func (h *TripHandler) Plan(c *gin.Context) {
	var prefs trip.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		writeError(c, trip.ErrBadRequest)
		return
	}

	it, err := h.trips.SubmitPreferences(c.Request.Context(), prefs)
	if err != nil {
		writeError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"state": h.trips.State(), "itinerary": it})
}

// Current returns the itinerary backing the dashboard.
func (h *TripHandler) Current(c *gin.Context) {
	it, err := h.trips.Current()
	if err != nil {
		writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}

// SelectDay switches the active day and returns its plan.
func (h *TripHandler) SelectDay(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		writeError(c, trip.ErrBadRequest)
		return
	}
	d, err := h.trips.SelectDay(n)
	if err != nil {
		writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}

// State reports the page state for client reconciliation.
func (h *TripHandler) State(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"state": h.trips.State()})
}
