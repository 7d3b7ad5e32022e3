// Package store holds all session state behind explicit update operations:
// the catalog reference data, materialised per-showing seat maps, the
// booking and payment collections, and the active user. A single Store is
// owned by the program and mutated only from the UI event loop.
package store

import (
	"sort"

	"cinebook-cli/catalog"
	"cinebook-cli/model"
)

type Store struct {
	movies            []model.Movie
	theatres          map[model.TheatreID]model.Theatre
	screens           map[model.ScreenID]model.Screen
	templates         map[model.SeatTemplateID]model.SeatTemplate
	templatesByScreen map[model.ScreenID][]model.SeatTemplate
	showings          map[model.ShowingID]model.Showing
	seatMaps          map[model.ShowingID][]model.SeatAvailability

	bookings []model.Booking
	payments []model.Payment

	currentUser    *model.User
	lastBookingId  model.BookingID
	hasLastBooking bool
}

// New creates a Store seeded with the static reference data: theatres,
// screens and seat templates. Movies and showings arrive later, from the
// backend or the fixture fallback.
func New() *Store {
	s := &Store{
		theatres:          map[model.TheatreID]model.Theatre{},
		screens:           map[model.ScreenID]model.Screen{},
		templates:         map[model.SeatTemplateID]model.SeatTemplate{},
		templatesByScreen: map[model.ScreenID][]model.SeatTemplate{},
		showings:          map[model.ShowingID]model.Showing{},
		seatMaps:          map[model.ShowingID][]model.SeatAvailability{},
	}
	for _, theatre := range catalog.Theatres() {
		s.theatres[theatre.Id] = theatre
	}
	for _, screen := range catalog.Screens() {
		s.screens[screen.Id] = screen
	}
	for _, tpl := range catalog.SeatTemplates() {
		s.templates[tpl.Id] = tpl
		s.templatesByScreen[tpl.ScreenId] = append(s.templatesByScreen[tpl.ScreenId], tpl)
	}
	return s
}

func (s *Store) SetMovies(movies []model.Movie) {
	s.movies = movies
}

func (s *Store) Movies() []model.Movie {
	return s.movies
}

func (s *Store) MovieById(id model.MovieID) (model.Movie, bool) {
	for _, movie := range s.movies {
		if movie.Id == id {
			return movie, true
		}
	}
	return model.Movie{}, false
}

func (s *Store) TheatreById(id model.TheatreID) (model.Theatre, bool) {
	theatre, ok := s.theatres[id]
	return theatre, ok
}

func (s *Store) ScreenById(id model.ScreenID) (model.Screen, bool) {
	screen, ok := s.screens[id]
	return screen, ok
}

func (s *Store) TemplateById(id model.SeatTemplateID) (model.SeatTemplate, bool) {
	tpl, ok := s.templates[id]
	return tpl, ok
}

func (s *Store) TemplatesForScreen(id model.ScreenID) []model.SeatTemplate {
	return s.templatesByScreen[id]
}

// PutShowings merges fetched showings into the index so later stages
// (seat-map derivation, booking display backfill) can resolve them by id.
func (s *Store) PutShowings(showings []model.Showing) {
	for _, show := range showings {
		s.showings[show.Id] = show
	}
}

func (s *Store) ShowingById(id model.ShowingID) (model.Showing, bool) {
	show, ok := s.showings[id]
	return show, ok
}

// SetSeatMap stores the materialised seat map of one showing, replacing any
// previous materialisation.
func (s *Store) SetSeatMap(showingID model.ShowingID, seats []model.SeatAvailability) {
	s.seatMaps[showingID] = seats
}

func (s *Store) SeatMap(showingID model.ShowingID) ([]model.SeatAvailability, bool) {
	seats, ok := s.seatMaps[showingID]
	return seats, ok
}

// MarkSeatsBooked transitions the given seats of one showing to Booked,
// referencing the booking that claimed them.
func (s *Store) MarkSeatsBooked(showingID model.ShowingID, ids []model.SeatAvailabilityID, bookingID model.BookingID) {
	seats, ok := s.seatMaps[showingID]
	if !ok {
		return
	}
	chosen := make(map[model.SeatAvailabilityID]bool, len(ids))
	for _, id := range ids {
		chosen[id] = true
	}
	for i := range seats {
		if chosen[seats[i].Id] {
			ref := bookingID
			seats[i].Status = model.SeatBooked
			seats[i].BookingId = &ref
		}
	}
}

// NextBookingId is the current maximum booking id plus one, or zero when no
// bookings exist yet.
func (s *Store) NextBookingId() model.BookingID {
	if len(s.bookings) == 0 {
		return 0
	}
	max := s.bookings[0].Id
	for _, booking := range s.bookings[1:] {
		if booking.Id > max {
			max = booking.Id
		}
	}
	return max + 1
}

func (s *Store) AppendBooking(booking model.Booking) {
	s.bookings = append(s.bookings, booking)
}

func (s *Store) Bookings() []model.Booking {
	return s.bookings
}

func (s *Store) BookingsForUser(userID model.UserID) []model.Booking {
	var out []model.Booking
	for _, booking := range s.bookings {
		if booking.UserId == userID {
			out = append(out, booking)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) NextPaymentId() model.PaymentID {
	return model.PaymentID(len(s.payments) + 1)
}

func (s *Store) AppendPayment(payment model.Payment) {
	s.payments = append(s.payments, payment)
}

func (s *Store) Payments() []model.Payment {
	return s.payments
}

func (s *Store) SetCurrentUser(user model.User) {
	s.currentUser = &user
}

func (s *Store) CurrentUser() *model.User {
	return s.currentUser
}

func (s *Store) SetLastBooking(id model.BookingID) {
	s.lastBookingId = id
	s.hasLastBooking = true
}

// LastBooking returns the most recently finalized booking for the
// confirmation view.
func (s *Store) LastBooking() (model.Booking, bool) {
	if !s.hasLastBooking {
		return model.Booking{}, false
	}
	for _, booking := range s.bookings {
		if booking.Id == s.lastBookingId {
			return booking, true
		}
	}
	return model.Booking{}, false
}
