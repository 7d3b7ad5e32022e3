// Package source abstracts where catalog data comes from. Remote reads from
// the backend, Local serves the fixture data, and Fallback chains the two so
// a backend outage never blocks the user.
package source

import (
	"context"
	"fmt"

	"cinebook-cli/catalog"
	"cinebook-cli/model"
	"cinebook-cli/service"
	"cinebook-cli/store"
)

// Catalog is the read surface the UI fetches through.
type Catalog interface {
	Movies(ctx context.Context) ([]model.Movie, error)
	ShowingsForMovie(ctx context.Context, movieID model.MovieID) ([]model.Showing, error)
	SeatMapForShowing(ctx context.Context, showingID model.ShowingID) ([]model.SeatAvailability, error)
	BookingsForUser(ctx context.Context, userID model.UserID) ([]model.Booking, error)
}

// Remote reads through the backend client.
type Remote struct {
	client *service.Client
}

func NewRemote(client *service.Client) *Remote {
	return &Remote{client: client}
}

func (r *Remote) Movies(ctx context.Context) ([]model.Movie, error) {
	return r.client.GetMovies(ctx)
}

func (r *Remote) ShowingsForMovie(ctx context.Context, movieID model.MovieID) ([]model.Showing, error) {
	return r.client.GetShowingsForMovie(ctx, movieID)
}

func (r *Remote) SeatMapForShowing(ctx context.Context, showingID model.ShowingID) ([]model.SeatAvailability, error) {
	return r.client.GetSeatAvailability(ctx, showingID)
}

func (r *Remote) BookingsForUser(ctx context.Context, userID model.UserID) ([]model.Booking, error) {
	return r.client.GetBookingsForUser(ctx, userID)
}

// Local serves fixture data and derives seat maps from the seat templates
// held in the store.
type Local struct {
	store    *store.Store
	occupied catalog.OccupancyPolicy
}

func NewLocal(st *store.Store) *Local {
	return &Local{store: st, occupied: catalog.SimulatedOccupancy(0.2)}
}

// NewLocalWithPolicy overrides the occupancy policy; tests use this to make
// derivation deterministic.
func NewLocalWithPolicy(st *store.Store, occupied catalog.OccupancyPolicy) *Local {
	return &Local{store: st, occupied: occupied}
}

func (l *Local) Movies(context.Context) ([]model.Movie, error) {
	return catalog.Movies(), nil
}

func (l *Local) ShowingsForMovie(_ context.Context, movieID model.MovieID) ([]model.Showing, error) {
	return catalog.ShowingsForMovie(movieID), nil
}

func (l *Local) SeatMapForShowing(_ context.Context, showingID model.ShowingID) ([]model.SeatAvailability, error) {
	showing, ok := l.store.ShowingById(showingID)
	if !ok {
		return nil, fmt.Errorf("unknown showing %d", showingID)
	}
	templates := l.store.TemplatesForScreen(showing.ScreenId)
	if len(templates) == 0 {
		return nil, fmt.Errorf("no seat templates for screen %d", showing.ScreenId)
	}
	return catalog.DeriveSeatMap(showing, templates, l.occupied), nil
}

func (l *Local) BookingsForUser(_ context.Context, userID model.UserID) ([]model.Booking, error) {
	return l.store.BookingsForUser(userID), nil
}
