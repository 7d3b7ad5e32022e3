package model

import "time"

type BookingStatus string

const (
	// BookingConfirmed is a booking acknowledged by the backend.
	BookingConfirmed BookingStatus = "Confirmed"
	// BookingConfirmedOffline is a booking synthesized locally after the
	// backend submission failed.
	BookingConfirmedOffline BookingStatus = "ConfirmedOffline"
)

type Booking struct {
	Id            BookingID     `json:"id"`
	BookingNumber string        `json:"bookingNumber"`
	CreatedAt     time.Time     `json:"createdAt"`
	Status        BookingStatus `json:"status"`
	TotalAmount   float64       `json:"totalAmount"`
	PaymentId     PaymentID     `json:"paymentId"`
	ShowingId     ShowingID     `json:"showingId"`
	UserId        UserID        `json:"userId"`

	// Denormalized display fields.
	MovieTitle  string    `json:"movieTitle"`
	PosterUrl   string    `json:"posterUrl"`
	TheatreName string    `json:"theatreName"`
	ScreenName  string    `json:"screenName"`
	ShowTime    time.Time `json:"showTime"`
	SeatLabels  string    `json:"seatLabels"`
}

type PaymentStatus string

const PaymentSuccessful PaymentStatus = "Successful"

// Payment is a simulated record minted alongside every completed booking
// flow. One-to-one with a Booking via Booking.PaymentId.
type Payment struct {
	Id             PaymentID
	Amount         float64
	Method         string
	Timestamp      time.Time
	Status         PaymentStatus
	TransactionRef string
}
