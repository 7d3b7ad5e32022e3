package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cinebook-cli/model"
	"cinebook-cli/service"
	"cinebook-cli/store"
)

var (
	// ErrSeatDetailsIncomplete aborts finalization when the selection cannot
	// be fully resolved to labelled seats.
	ErrSeatDetailsIncomplete = errors.New("seat details incomplete")
	// ErrNoActiveUser aborts finalization until the user signs in.
	ErrNoActiveUser = errors.New("sign in to confirm a booking")
)

// Submitter sends one booking request to the backend.
type Submitter interface {
	SubmitBooking(ctx context.Context, req service.BookingRequest) (model.Booking, error)
}

// Finalizer turns the current selection into a confirmed booking: it mints
// the simulated payment, submits the request once, reconciles or
// synthesizes the booking record, and transitions the chosen seats to
// Booked.
type Finalizer struct {
	Store  *store.Store
	Submit Submitter
	Logger *zap.Logger

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Result is what the confirmation view displays.
type Result struct {
	Booking model.Booking
	Payment model.Payment
	Offline bool
}

// Finalize runs the confirmation flow for the given showing and selection.
// The preconditions (resolvable seat details, active user) fail before any
// state is mutated. A failed submission is not an error: the booking is
// synthesized locally and the user still reaches a confirmation.
func (f *Finalizer) Finalize(ctx context.Context, showingID model.ShowingID, sel *Selection, rows []SeatRow) (Result, error) {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}

	if err := ValidateProceed(sel); err != nil {
		return Result{}, err
	}

	seats := resolveSelection(sel, rows)
	if len(seats) != sel.Count() {
		return Result{}, ErrSeatDetailsIncomplete
	}
	for _, seat := range seats {
		if strings.TrimSpace(seat.Label()) == "" {
			return Result{}, ErrSeatDetailsIncomplete
		}
	}

	user := f.Store.CurrentUser()
	if user == nil {
		return Result{}, ErrNoActiveUser
	}

	total := ComputeTotal(sel, rows)

	// The payment ledger entry exists for every completed flow, whether or
	// not the submission below succeeds.
	payment := model.Payment{
		Id:             f.Store.NextPaymentId(),
		Amount:         total,
		Method:         "SIMULATED",
		Timestamp:      now,
		Status:         model.PaymentSuccessful,
		TransactionRef: uuid.NewString(),
	}
	f.Store.AppendPayment(payment)

	templateIds := make([]model.SeatTemplateID, 0, len(seats))
	availIds := make([]model.SeatAvailabilityID, 0, len(seats))
	for _, seat := range seats {
		templateIds = append(templateIds, seat.Template.Id)
		availIds = append(availIds, seat.Availability.Id)
	}

	req := service.BookingRequest{
		UserId:          user.Id,
		ShowingId:       showingID,
		SeatTemplateIds: templateIds,
	}

	var final model.Booking
	offline := false
	remote, err := f.Submit.SubmitBooking(ctx, req)
	if err != nil {
		logger.Warn("booking submission failed, synthesizing local record",
			zap.Int("showingId", int(showingID)), zap.Error(err))
		final = f.synthesizeBooking(now, *user, showingID, seats, total)
		offline = true
	} else {
		final = f.reconcileBooking(remote, *user, showingID, seats)
	}

	// The backend total is not trusted for display; the locally computed
	// payment and price win on both paths.
	final.PaymentId = payment.Id
	final.TotalAmount = total

	f.Store.AppendBooking(final)
	f.Store.MarkSeatsBooked(showingID, availIds, final.Id)
	f.Store.SetLastBooking(final.Id)
	sel.Clear()

	return Result{Booking: final, Payment: payment, Offline: offline}, nil
}

func resolveSelection(sel *Selection, rows []SeatRow) []Seat {
	var seats []Seat
	for _, row := range rows {
		for _, seat := range row.Seats {
			if sel.Has(seat.Availability.Id) {
				seats = append(seats, seat)
			}
		}
	}
	return seats
}

func (f *Finalizer) synthesizeBooking(now time.Time, user model.User, showingID model.ShowingID, seats []Seat, total float64) model.Booking {
	booking := model.Booking{
		Id:            f.Store.NextBookingId(),
		BookingNumber: bookingNumber(now),
		CreatedAt:     now,
		Status:        model.BookingConfirmedOffline,
		TotalAmount:   total,
		ShowingId:     showingID,
		UserId:        user.Id,
		SeatLabels:    joinSeatLabels(seats),
	}
	f.fillDisplayFields(&booking)
	return booking
}

func (f *Finalizer) reconcileBooking(remote model.Booking, user model.User, showingID model.ShowingID, seats []Seat) model.Booking {
	booking := remote
	if booking.ShowingId == 0 {
		booking.ShowingId = showingID
	}
	if booking.UserId == 0 {
		booking.UserId = user.Id
	}
	if booking.Status == "" {
		booking.Status = model.BookingConfirmed
	}
	if strings.TrimSpace(booking.SeatLabels) == "" {
		booking.SeatLabels = joinSeatLabels(seats)
	}
	f.fillDisplayFields(&booking)
	return booking
}

// fillDisplayFields backfills any denormalized display field the source
// left empty from the locally known showing, screen, theatre and movie.
func (f *Finalizer) fillDisplayFields(b *model.Booking) {
	showing, ok := f.Store.ShowingById(b.ShowingId)
	if !ok {
		return
	}
	if b.ShowTime.IsZero() {
		b.ShowTime = showing.StartTime
	}
	if b.TheatreName == "" {
		b.TheatreName = showing.TheatreName
	}
	if b.ScreenName == "" {
		b.ScreenName = showing.ScreenName
	}
	if b.TheatreName == "" || b.ScreenName == "" {
		if screen, found := f.Store.ScreenById(showing.ScreenId); found {
			if b.ScreenName == "" {
				b.ScreenName = screen.Name
			}
			if b.TheatreName == "" {
				if theatre, ok := f.Store.TheatreById(screen.TheatreId); ok {
					b.TheatreName = theatre.Name
				}
			}
		}
	}
	if movie, found := f.Store.MovieById(showing.MovieId); found {
		if b.MovieTitle == "" {
			b.MovieTitle = movie.Title
		}
		if b.PosterUrl == "" {
			b.PosterUrl = movie.PosterUrl
		}
	}
}

func bookingNumber(now time.Time) string {
	return "BK-" + now.Format("20060102-150405")
}

func joinSeatLabels(seats []Seat) string {
	labels := make([]string, 0, len(seats))
	for _, seat := range seats {
		labels = append(labels, seat.Label())
	}
	return strings.Join(labels, ", ")
}
