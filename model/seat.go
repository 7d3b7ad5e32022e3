package model

type SeatCategory string

const (
	SeatStandard SeatCategory = "Standard"
	SeatPremium  SeatCategory = "Premium"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "Available"
	SeatBooked    SeatStatus = "Booked"
)

// SeatTemplate is the static layout definition of one seat on a screen,
// shared by every showing on that screen.
type SeatTemplate struct {
	Id        SeatTemplateID `json:"id"`
	Label     string         `json:"label"`
	Category  SeatCategory   `json:"category"`
	BasePrice float64        `json:"basePrice"`
	ScreenId  ScreenID       `json:"screenId"`
}

// SeatAvailability is the per-showing instance of one seat: exactly one per
// (showing, seat template) pair, created when the showing's seat map is
// first materialised.
type SeatAvailability struct {
	Id             SeatAvailabilityID `json:"id"`
	Price          float64            `json:"price"`
	Status         SeatStatus         `json:"status"`
	BookingId      *BookingID         `json:"bookingId,omitempty"`
	ShowingId      ShowingID          `json:"showingId"`
	SeatTemplateId SeatTemplateID     `json:"seatTemplateId"`
}
