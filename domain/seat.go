package domain

// Seat kinds as the booking core reports them in seat_type.
const (
	SeatKindWindow = "window"
	SeatKindAisle  = "aisle"
	SeatKindMiddle = "middle"
)

// Seat is one entry of a flight's seat map snapshot. The booking core is the
// system of record; the gateway only overlays a single pending selection on
// top of the snapshot it last read.
type Seat struct {
	SeatID     string  `json:"seat_id"`
	Row        int     `json:"row"`
	Letter     string  `json:"letter"`
	SeatType   string  `json:"seat_type"`
	CabinClass string  `json:"cabin_class"`
	Booked     bool    `json:"booked"`
	BookingPNR *string `json:"booking_pnr"`
}

// SeatState is the client-side view of one seat.
type SeatState string

const (
	SeatAvailable SeatState = "available"
	// SeatPending marks the optimistic local selection while an assignment
	// request is in flight.
	SeatPending  SeatState = "pending"
	SeatAssigned SeatState = "assigned"
	SeatOccupied SeatState = "occupied"
)

// PreferenceSignal is the aggregated history the booking core attaches to a
// check-in lookup. Field names follow the analytics feed verbatim. Read-only
// input to seat matching; never written back.
type PreferenceSignal struct {
	UserGUID             string  `json:"USR_GUID"`
	TotalPNR             int     `json:"TOTALPNR"`
	TotalSegments        int     `json:"TOTALSEGMENTS"`
	TotalSpend           float64 `json:"TOTALSPEND"`
	PreferredOrigin      string  `json:"PREFERREDORIGIN"`
	PreferredDestination string  `json:"PREFERREDDESTINATION"`
	WindowCount          int     `json:"WINDOW"`
	AisleCount           int     `json:"AISLE"`
	LeisureTrips         int     `json:"LEISURE"`
	BusinessTrips        int     `json:"BUSINESS"`
}

// RecommendationResult is the matcher's output: a single best available
// seat plus a display price. Recomputed on every inventory refresh, never
// persisted, and never authoritative for pricing.
type RecommendationResult struct {
	SeatID             string   `json:"seat_id"`
	SeatType           string   `json:"seat_type"`
	Rationale          string   `json:"rationale"`
	DisplayPrice       float64  `json:"display_price"`
	PreferredKind      string   `json:"preferred_kind"`
	PreferredRemaining int      `json:"preferred_remaining"`
	Features           []string `json:"features,omitempty"`
}
