// README: Logistics service produces the door-to-door transport plan for a
// preference snapshot.
package logistics

import (
	"fmt"
	"strings"

	"voyager/internal/modules/trip"
)

// Service stands in for a routing engine. Airport choice and pricing follow a
// fixed table keyed on postcode and budget tier.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Optimize builds the outbound and inbound legs between the traveler's home
// and the destination city center.
func (s *Service) Optimize(prefs trip.Preferences) trip.DoorToDoor {
	postcode := strings.ToUpper(prefs.Postcode)
	isLondon := strings.HasPrefix(postcode, "SW") || strings.HasPrefix(postcode, "E")
	departureAirport := "LGW (Gatwick)"
	if isLondon {
		departureAirport = "LHR (Heathrow)"
	}

	taxiCost := "$45 (UberX)"
	flightCost := "$1,120 (Economy)"
	if prefs.Budget == trip.BudgetElite {
		taxiCost = "$85 (Uber Black)"
		flightCost = "$4,200 (Business)"
	}

	city := prefs.Destination
	if i := strings.IndexByte(city, ' '); i >= 0 {
		city = city[:i]
	}

	outbound := []trip.TransportSegment{
		{
			Type:      trip.SegmentTaxi,
			Label:     fmt.Sprintf("Home to %s", departureAirport),
			Duration:  "45m",
			Cost:      taxiCost,
			Optimized: true,
			Notes:     "Scheduled for 06:15 AM",
		},
		{
			Type:      trip.SegmentFlight,
			Label:     fmt.Sprintf("Direct to %s", city),
			Duration:  "11h 20m",
			Cost:      flightCost,
			Optimized: true,
			Notes:     "Lufthansa / JAL codeshare",
		},
		{
			Type:      trip.SegmentTrain,
			Label:     "Airport Express to City Center",
			Duration:  "35m",
			Cost:      "$22",
			Optimized: true,
			Notes:     "Contactless payment enabled",
		},
	}

	inbound := []trip.TransportSegment{
		{Type: trip.SegmentTrain, Label: "City Express to Airport", Duration: "40m", Cost: "$22", Optimized: true},
		{Type: trip.SegmentFlight, Label: "Return Flight", Duration: "12h 10m", Cost: "Included", Optimized: true},
		{Type: trip.SegmentTaxi, Label: "Airport to Home", Duration: "50m", Cost: "$50", Optimized: true},
	}

	return trip.DoorToDoor{
		Outbound:  outbound,
		Inbound:   inbound,
		TotalCost: "$$",
		TotalTime: "12h",
	}
}
