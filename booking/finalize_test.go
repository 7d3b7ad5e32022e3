package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinebook-cli/catalog"
	"cinebook-cli/model"
	"cinebook-cli/service"
	"cinebook-cli/store"
)

type stubSubmitter struct {
	calls   int
	lastReq service.BookingRequest
	booking model.Booking
	err     error
}

func (s *stubSubmitter) SubmitBooking(_ context.Context, req service.BookingRequest) (model.Booking, error) {
	s.calls++
	s.lastReq = req
	return s.booking, s.err
}

func fixedNow() time.Time {
	return time.Date(2025, time.October, 24, 8, 45, 10, 0, time.Local)
}

// seatMapFixture materialises the seat map of fixture showing 1 (Dune: Part
// Two, Cineplex Royale Screen 1, 09:00) with every seat available.
func seatMapFixture(t *testing.T, st *store.Store) []SeatRow {
	t.Helper()
	st.SetMovies(catalog.Movies())
	st.PutShowings(catalog.Showings())
	show, ok := st.ShowingById(1)
	if !ok {
		t.Fatal("fixture showing 1 missing")
	}
	seats := catalog.DeriveSeatMap(show, st.TemplatesForScreen(show.ScreenId), nil)
	st.SetSeatMap(show.Id, seats)
	return BuildSeatRows(seats, st.TemplateById, nil)
}

func TestFinalize_OfflineBookingWhenSubmissionFails(t *testing.T) {
	st := store.New()
	rows := seatMapFixture(t, st)
	st.SetCurrentUser(model.User{Id: 1, Name: "Aarav Mehta"})

	sel := NewSelection()
	sel.Toggle(1001) // A1, Standard 150
	sel.Toggle(1041) // E1, Premium 250

	submit := &stubSubmitter{err: errors.New("connection refused")}
	f := &Finalizer{Store: st, Submit: submit, Now: fixedNow}

	result, err := f.Finalize(context.Background(), 1, sel, rows)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !result.Offline {
		t.Fatal("expected offline result")
	}
	if submit.calls != 1 {
		t.Fatalf("expected one submission attempt, got %d", submit.calls)
	}

	b := result.Booking
	if b.Id != 0 {
		t.Fatalf("expected first booking id 0, got %d", b.Id)
	}
	if b.Status != model.BookingConfirmedOffline {
		t.Fatalf("expected offline status, got %q", b.Status)
	}
	if b.BookingNumber != "BK-20251024-084510" {
		t.Fatalf("unexpected booking number %q", b.BookingNumber)
	}
	if b.TotalAmount != 400 {
		t.Fatalf("expected total 400, got %v", b.TotalAmount)
	}
	if b.SeatLabels != "A1, E1" {
		t.Fatalf("unexpected seat labels %q", b.SeatLabels)
	}
	if b.MovieTitle != "Dune: Part Two" || b.TheatreName != "Cineplex Royale" || b.ScreenName != "Screen 1" {
		t.Fatalf("display fields not backfilled: %+v", b)
	}

	if result.Payment.Id != 1 || result.Payment.Amount != 400 || result.Payment.Status != model.PaymentSuccessful {
		t.Fatalf("unexpected payment: %+v", result.Payment)
	}
	if b.PaymentId != result.Payment.Id {
		t.Fatalf("booking does not reference its payment: %+v", b)
	}
	if result.Payment.TransactionRef == "" {
		t.Fatal("expected a transaction reference")
	}

	seats, _ := st.SeatMap(1)
	booked := 0
	for _, seat := range seats {
		if seat.Id == 1001 || seat.Id == 1041 {
			if seat.Status != model.SeatBooked {
				t.Fatalf("expected seat %d booked, got %q", seat.Id, seat.Status)
			}
			if seat.BookingId == nil || *seat.BookingId != b.Id {
				t.Fatalf("seat %d does not reference the booking", seat.Id)
			}
			booked++
		} else if seat.Status != model.SeatAvailable {
			t.Fatalf("seat %d unexpectedly booked", seat.Id)
		}
	}
	if booked != 2 {
		t.Fatalf("expected 2 booked seats, got %d", booked)
	}

	if sel.Count() != 0 {
		t.Fatal("expected selection cleared after confirmation")
	}
	if last, ok := st.LastBooking(); !ok || last.Id != b.Id {
		t.Fatalf("last booking not recorded: %+v ok=%v", last, ok)
	}
}

func TestFinalize_ReconcilesRemoteBooking(t *testing.T) {
	st := store.New()
	rows := seatMapFixture(t, st)
	st.SetCurrentUser(model.User{Id: 2, Name: "Diya Sharma"})

	sel := NewSelection()
	sel.Toggle(1002) // A2

	submit := &stubSubmitter{booking: model.Booking{
		Id:            42,
		BookingNumber: "BK-REMOTE-42",
		TotalAmount:   999, // backend total is not trusted for display
	}}
	f := &Finalizer{Store: st, Submit: submit, Now: fixedNow}

	result, err := f.Finalize(context.Background(), 1, sel, rows)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Offline {
		t.Fatal("expected online result")
	}

	if submit.lastReq.UserId != 2 || submit.lastReq.ShowingId != 1 {
		t.Fatalf("unexpected request: %+v", submit.lastReq)
	}
	if len(submit.lastReq.SeatTemplateIds) != 1 || submit.lastReq.SeatTemplateIds[0] != 2 {
		t.Fatalf("expected seat-template ids in the request, got %v", submit.lastReq.SeatTemplateIds)
	}

	b := result.Booking
	if b.Id != 42 || b.BookingNumber != "BK-REMOTE-42" {
		t.Fatalf("remote identity lost: %+v", b)
	}
	if b.Status != model.BookingConfirmed {
		t.Fatalf("expected confirmed status backfilled, got %q", b.Status)
	}
	if b.UserId != 2 || b.ShowingId != 1 {
		t.Fatalf("expected ids backfilled, got %+v", b)
	}
	if b.SeatLabels != "A2" {
		t.Fatalf("expected seat labels backfilled, got %q", b.SeatLabels)
	}
	if b.TotalAmount != 150 {
		t.Fatalf("expected locally computed total to win, got %v", b.TotalAmount)
	}
	if b.PaymentId != result.Payment.Id {
		t.Fatalf("booking does not reference the local payment: %+v", b)
	}
}

func TestFinalize_EmptySelection(t *testing.T) {
	st := store.New()
	rows := seatMapFixture(t, st)
	st.SetCurrentUser(model.User{Id: 1})

	submit := &stubSubmitter{}
	f := &Finalizer{Store: st, Submit: submit}

	_, err := f.Finalize(context.Background(), 1, NewSelection(), rows)
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if submit.calls != 0 {
		t.Fatal("expected no submission attempt")
	}
	if len(st.Payments()) != 0 {
		t.Fatal("expected no payment minted")
	}
}

func TestFinalize_RequiresActiveUser(t *testing.T) {
	st := store.New()
	rows := seatMapFixture(t, st)

	sel := NewSelection()
	sel.Toggle(1001)

	submit := &stubSubmitter{}
	f := &Finalizer{Store: st, Submit: submit}

	_, err := f.Finalize(context.Background(), 1, sel, rows)
	if !errors.Is(err, ErrNoActiveUser) {
		t.Fatalf("expected ErrNoActiveUser, got %v", err)
	}
	if submit.calls != 0 || len(st.Payments()) != 0 || len(st.Bookings()) != 0 {
		t.Fatal("expected no state mutated before the user precondition")
	}
	if sel.Count() != 1 {
		t.Fatal("expected the selection to survive the failed precondition")
	}
}

func TestFinalize_IncompleteSeatDetails(t *testing.T) {
	st := store.New()
	rows := seatMapFixture(t, st)
	st.SetCurrentUser(model.User{Id: 1})

	sel := NewSelection()
	sel.Toggle(999999) // resolves to no seat in the built rows

	submit := &stubSubmitter{}
	f := &Finalizer{Store: st, Submit: submit}

	_, err := f.Finalize(context.Background(), 1, sel, rows)
	if !errors.Is(err, ErrSeatDetailsIncomplete) {
		t.Fatalf("expected ErrSeatDetailsIncomplete, got %v", err)
	}
	if submit.calls != 0 || len(st.Payments()) != 0 {
		t.Fatal("expected no state mutated")
	}
}

func TestFinalize_SequentialBookingIdsOffline(t *testing.T) {
	st := store.New()
	rows := seatMapFixture(t, st)
	st.SetCurrentUser(model.User{Id: 1})

	submit := &stubSubmitter{err: errors.New("backend down")}
	f := &Finalizer{Store: st, Submit: submit, Now: fixedNow}

	first := NewSelection()
	first.Toggle(1001)
	res1, err := f.Finalize(context.Background(), 1, first, rows)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	second := NewSelection()
	second.Toggle(1002)
	res2, err := f.Finalize(context.Background(), 1, second, rows)
	if err != nil {
		t.Fatalf("second booking failed: %v", err)
	}

	if res1.Booking.Id != 0 || res2.Booking.Id != 1 {
		t.Fatalf("expected ids 0 then 1, got %d and %d", res1.Booking.Id, res2.Booking.Id)
	}
	if res2.Payment.Id != 2 {
		t.Fatalf("expected second payment id 2, got %d", res2.Payment.Id)
	}
}
