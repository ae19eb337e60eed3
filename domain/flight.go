package domain

// Flight is one search result row as the results page holds it. The gateway
// keeps the page's current list so directive actions can reorder it.
type Flight struct {
	ID             int     `json:"id"`
	Airline        string  `json:"airline"`
	FlightNumber   string  `json:"flight_number"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departure_time"`
	ArrivalTime    string  `json:"arrival_time"`
	Duration       int     `json:"duration"`
	Price          float64 `json:"price"`
	AvailableSeats int     `json:"available_seats"`
	CabinClass     string  `json:"cabin_class"`
	FareFamily     string  `json:"fare_family"`
}

// Ancillary is an optional add-on offered on the add-ons page.
type Ancillary struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Payment methods the payment page can switch between.
const (
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodDebitCard  = "debit_card"
	PaymentMethodWallet     = "wallet"
)
