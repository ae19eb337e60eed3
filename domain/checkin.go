package domain

// Booking mirrors the booking core's record for one PNR.
type Booking struct {
	ID            int      `json:"id"`
	UserID        int      `json:"user_id"`
	FlightID      int      `json:"flight_id"`
	PNR           string   `json:"pnr"`
	Status        string   `json:"status"`
	Passengers    int      `json:"passengers"`
	TotalFare     float64  `json:"total_fare"`
	PaymentStatus string   `json:"payment_status"`
	PaymentMethod string   `json:"payment_method"`
	CheckedIn     bool     `json:"checked_in"`
	SelectedSeats []string `json:"selected_seats"`

	AnalyticsBookingDetails []PreferenceSignal `json:"analytics_booking_details,omitempty"`
}

// PassengerInfo is the passenger identity attached to a check-in lookup.
type PassengerInfo struct {
	ID          int    `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	LoyaltyTier string `json:"loyalty_tier"`
}

// RecommendedSeat is the decision service's one-shot seat recommendation,
// carried inside agent_response.response. The flat agent_response.
// recommended_seat variant of the old backend is superseded and not parsed.
type RecommendedSeat struct {
	SeatID       string   `json:"seat_id"`
	SeatType     string   `json:"seat_type"`
	Row          int      `json:"row"`
	CabinClass   string   `json:"cabin_class"`
	Features     []string `json:"features,omitempty"`
	PriceUpgrade float64  `json:"price_upgrade,omitempty"`
}

type AgentRecommendation struct {
	RecommendedSeat *RecommendedSeat `json:"recommended_seat,omitempty"`
	Reason          string           `json:"reason,omitempty"`
}

// AgentResponse is loosely typed on the wire; Error/Detail are set when the
// decision service could not produce a recommendation. That case degrades to
// the locally derived recommendation, never to a user-facing error.
type AgentResponse struct {
	Response *AgentRecommendation `json:"response,omitempty"`
	Error    string               `json:"error,omitempty"`
	Detail   string               `json:"detail,omitempty"`
}

// CheckinRecord is the booking core's answer to a check-in lookup.
type CheckinRecord struct {
	Booking       Booking       `json:"booking"`
	PassengerInfo PassengerInfo `json:"user_info"`
	SeatMap       []Seat        `json:"seat_map"`
	AgentResponse AgentResponse `json:"agent_response"`
}

// SeatAssignment is the booking core's answer to a seat assignment request.
// The booking it carries holds the authoritative price and seat list.
type SeatAssignment struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Booking Booking `json:"booking"`
}
