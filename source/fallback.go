package source

import (
	"context"

	"go.uber.org/zap"

	"cinebook-cli/model"
)

// Fallback reads from the remote source and substitutes local data when the
// remote fails. Substitution is logged, never surfaced: a backend outage
// degrades to fixture data instead of an error screen.
type Fallback struct {
	remote Catalog
	local  Catalog
	logger *zap.Logger
}

func NewFallback(remote Catalog, local Catalog, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{remote: remote, local: local, logger: logger}
}

func (f *Fallback) Movies(ctx context.Context) ([]model.Movie, error) {
	movies, err := f.remote.Movies(ctx)
	if err == nil && len(movies) > 0 {
		return movies, nil
	}
	f.logSubstitution("movies", err)
	return f.local.Movies(ctx)
}

func (f *Fallback) ShowingsForMovie(ctx context.Context, movieID model.MovieID) ([]model.Showing, error) {
	showings, err := f.remote.ShowingsForMovie(ctx, movieID)
	if err == nil && len(showings) > 0 {
		return showings, nil
	}
	f.logSubstitution("showings", err, zap.Int("movieId", int(movieID)))
	return f.local.ShowingsForMovie(ctx, movieID)
}

func (f *Fallback) SeatMapForShowing(ctx context.Context, showingID model.ShowingID) ([]model.SeatAvailability, error) {
	seats, err := f.remote.SeatMapForShowing(ctx, showingID)
	if err == nil && len(seats) > 0 {
		return seats, nil
	}
	f.logSubstitution("seat map", err, zap.Int("showingId", int(showingID)))
	return f.local.SeatMapForShowing(ctx, showingID)
}

func (f *Fallback) BookingsForUser(ctx context.Context, userID model.UserID) ([]model.Booking, error) {
	bookings, err := f.remote.BookingsForUser(ctx, userID)
	if err == nil {
		return bookings, nil
	}
	f.logSubstitution("bookings", err, zap.Int("userId", int(userID)))
	return f.local.BookingsForUser(ctx, userID)
}

func (f *Fallback) logSubstitution(what string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("data", what))
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	f.logger.Warn("remote fetch unavailable, using local data", fields...)
}
