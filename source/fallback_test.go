package source

import (
	"context"
	"errors"
	"testing"

	"cinebook-cli/model"
	"cinebook-cli/store"
)

type fakeCatalog struct {
	movies   []model.Movie
	showings []model.Showing
	seats    []model.SeatAvailability
	bookings []model.Booking
	err      error

	movieCalls int
}

func (f *fakeCatalog) Movies(context.Context) ([]model.Movie, error) {
	f.movieCalls++
	return f.movies, f.err
}

func (f *fakeCatalog) ShowingsForMovie(context.Context, model.MovieID) ([]model.Showing, error) {
	return f.showings, f.err
}

func (f *fakeCatalog) SeatMapForShowing(context.Context, model.ShowingID) ([]model.SeatAvailability, error) {
	return f.seats, f.err
}

func (f *fakeCatalog) BookingsForUser(context.Context, model.UserID) ([]model.Booking, error) {
	return f.bookings, f.err
}

func TestFallback_UsesRemoteWhenHealthy(t *testing.T) {
	remote := &fakeCatalog{movies: []model.Movie{{Id: 9, Title: "Remote Movie"}}}
	local := &fakeCatalog{movies: []model.Movie{{Id: 1, Title: "Local Movie"}}}

	f := NewFallback(remote, local, nil)
	movies, err := f.Movies(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Remote Movie" {
		t.Fatalf("expected remote data, got %+v", movies)
	}
	if local.movieCalls != 0 {
		t.Fatal("local source should not be consulted")
	}
}

func TestFallback_SubstitutesOnError(t *testing.T) {
	remote := &fakeCatalog{err: errors.New("connection refused")}
	local := &fakeCatalog{movies: []model.Movie{{Id: 1, Title: "Local Movie"}}}

	f := NewFallback(remote, local, nil)
	movies, err := f.Movies(context.Background())
	if err != nil {
		t.Fatalf("expected substitution, not error: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Local Movie" {
		t.Fatalf("expected local data, got %+v", movies)
	}
}

func TestFallback_SubstitutesOnEmptyResult(t *testing.T) {
	remote := &fakeCatalog{}
	local := &fakeCatalog{showings: []model.Showing{{Id: 1}}}

	f := NewFallback(remote, local, nil)
	showings, err := f.ShowingsForMovie(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(showings) != 1 {
		t.Fatalf("expected local showings, got %+v", showings)
	}
}

func TestFallback_BookingsEmptyIsNotSubstituted(t *testing.T) {
	remote := &fakeCatalog{}
	local := &fakeCatalog{bookings: []model.Booking{{Id: 1}}}

	f := NewFallback(remote, local, nil)
	bookings, err := f.BookingsForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	// A user with no bookings is a valid remote answer.
	if len(bookings) != 0 {
		t.Fatalf("expected empty remote result to stand, got %+v", bookings)
	}
}

func TestLocal_DerivesSeatMapFromStore(t *testing.T) {
	st := store.New()
	local := NewLocal(st)

	movies, err := local.Movies(context.Background())
	if err != nil || len(movies) == 0 {
		t.Fatalf("expected fixture movies, got %v err=%v", movies, err)
	}

	showings, err := local.ShowingsForMovie(context.Background(), 1)
	if err != nil || len(showings) != 3 {
		t.Fatalf("expected 3 fixture showings, got %d err=%v", len(showings), err)
	}
	st.PutShowings(showings)

	seats, err := local.SeatMapForShowing(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(seats) != 60 {
		t.Fatalf("expected 60 seats, got %d", len(seats))
	}
}

func TestLocal_OccupancyPolicyInjectable(t *testing.T) {
	st := store.New()
	local := NewLocalWithPolicy(st, func(model.SeatTemplateID) bool { return false })

	showings, _ := local.ShowingsForMovie(context.Background(), 1)
	st.PutShowings(showings)

	seats, err := local.SeatMapForShowing(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	for _, seat := range seats {
		if seat.Status != model.SeatAvailable {
			t.Fatalf("expected every seat available, got %+v", seat)
		}
	}
}
