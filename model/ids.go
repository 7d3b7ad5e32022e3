package model

// Each identifier gets its own type. Seat-availability ids and seat-template
// ids in particular travel through different call paths and must never be
// mixed up when building a booking request.
type (
	MovieID            int
	TheatreID          int
	ScreenID           int
	SeatTemplateID     int
	ShowingID          int
	SeatAvailabilityID int
	BookingID          int
	PaymentID          int
	UserID             int
)
