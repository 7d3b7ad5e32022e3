package catalog

import (
	"math/rand"
	"time"

	"cinebook-cli/model"
)

// Seat-availability ids derived locally are namespaced by showing so two
// showings never collide.
const availabilityIDStride = 1000

// Synthetic booking ids attached to simulated occupied seats live far above
// any real booking id.
const syntheticBookingBase = 900000

// OccupancyPolicy reports whether a freshly materialised seat starts out
// booked.
type OccupancyPolicy func(model.SeatTemplateID) bool

// SimulatedOccupancy marks roughly the given fraction of seats as booked.
// It is a placeholder for a real seat-lock service: the occupancy it
// fabricates has no authoritative backing and changes on every session.
func SimulatedOccupancy(rate float64) OccupancyPolicy {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func(model.SeatTemplateID) bool {
		return rng.Float64() < rate
	}
}

// DeriveSeatMap materialises one SeatAvailability per seat template of the
// showing's screen, priced from the template and occupied per the policy.
func DeriveSeatMap(showing model.Showing, templates []model.SeatTemplate, occupied OccupancyPolicy) []model.SeatAvailability {
	var seats []model.SeatAvailability
	for _, tpl := range templates {
		if tpl.ScreenId != showing.ScreenId {
			continue
		}
		seat := model.SeatAvailability{
			Id:             model.SeatAvailabilityID(int(showing.Id)*availabilityIDStride + int(tpl.Id)),
			Price:          tpl.BasePrice,
			Status:         model.SeatAvailable,
			ShowingId:      showing.Id,
			SeatTemplateId: tpl.Id,
		}
		if occupied != nil && occupied(tpl.Id) {
			seat.Status = model.SeatBooked
			synthetic := model.BookingID(syntheticBookingBase + int(seat.Id))
			seat.BookingId = &synthetic
		}
		seats = append(seats, seat)
	}
	return seats
}
