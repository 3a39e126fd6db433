// README: Fixed fallback itinerary substituted when generation fails.
package trip

// FallbackID is the identifier of the pre-authored itinerary.
const FallbackID = "fallback-itinerary-001"

// FallbackItinerary returns a deep copy of the pre-authored Tokyo & Kyoto
// itinerary. Every field the dashboard can read is populated; the fixture is
// validated by the same schema checks as a live response.
func FallbackItinerary() *Itinerary {
	return &Itinerary{
		ID:       FallbackID,
		Location: "Tokyo & Kyoto",
		Dates:    "Oct 12 — Oct 19, 2024",
		Status:   StatusGenerated,
		Days: []DayPlan{
			{
				DayNumber: 1,
				Label:     "Arrival",
				Items: []ItineraryItem{
					{
						Time:        "09:00 AM",
						Period:      PeriodMorning,
						Title:       "Touchdown & Transit",
						Description: "Proceed to Terminal 1. Voyager AI predicts a smooth 45min queue based on current flight data. Board the 10:45 AM N'EX Express to Shinjuku.",
						Meta:        &ItemMeta{Distance: "Direct from NRT"},
					},
					{
						Time:        "12:30 PM",
						Period:      PeriodLunch,
						Title:       "Fuunji Ramen",
						Description: "Try the Special Archer Tsukemen (Dipping Noodles). The broth is a thick, rich fish and pork blend legendary in Shinjuku.",
						ImageURL:    "https://picsum.photos/seed/ramen/600/400",
						Meta:        &ItemMeta{Wifi: "85 Mbps", Vibe: "Bustling", Payment: "Cash Only", Distance: "8 min from Station"},
					},
					{
						Time:        "02:30 PM",
						Period:      PeriodAfternoon,
						Title:       "Gyoen National Garden",
						Description: "Best route starts at Shinjuku Gate. Aim for the French Formal Garden area for the best late-afternoon light.",
						Meta:        &ItemMeta{Vibe: "Serene"},
					},
				},
			},
		},
		DoorToDoor: DoorToDoor{
			Outbound: []TransportSegment{
				{Type: SegmentTaxi, Label: "06:15 AM Uber Pick-up", Duration: "45m", Cost: "$85", Optimized: true},
				{Type: SegmentFlight, Label: "JAL · Direct · 13h 20m", Duration: "13h 20m", Cost: "$1,120", Optimized: true},
			},
			Inbound:   []TransportSegment{},
			TotalCost: "$1,120",
			TotalTime: "14h",
		},
		Accommodation: Accommodation{
			Name:          "Park Hyatt Tokyo",
			Location:      "Shinjuku-ku, Tokyo",
			ImageURL:      "https://picsum.photos/seed/hotel/200/200",
			BookingStatus: "Confirmed",
		},
		Essentials: Essentials{
			ESIM: []ESIMOption{
				{Provider: "Airalo (Moshi Moshi)", Plan: "10GB · 30 Days", Price: "$18.00", Coverage: "Japan-wide"},
				{Provider: "Ubigi", Plan: "Unlimited · 7 Days", Price: "$24.00", Coverage: "Japan-wide"},
			},
			Currency: CurrencyInfo{From: "USD", To: "JPY", Rate: 149.20, Recommendation: "Exchange at 7-Eleven ATMs for best rates."},
			Souvenir: SouvenirTip{Name: "Tokyo Banana (Star Edition)", Description: "Found at Gate 15. Only available in evening slots."},
			Weather:  WeatherInfo{Forecast: "Sunny", Temp: "22°C", Icon: "sunny"},
		},
		AIInsights: []Insight{
			{Title: "Smart Travel", Message: "Shinjuku station is less crowded before 8:00 AM.", Priority: PriorityLow},
		},
	}
}
