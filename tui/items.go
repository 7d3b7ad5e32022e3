package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"cinebook-cli/booking"
	"cinebook-cli/model"
)

type movieItem struct {
	movie model.Movie
}

func (i movieItem) Title() string { return i.movie.Title }

func (i movieItem) Description() string {
	parts := []string{fmt.Sprintf("%d min", i.movie.DurationMin)}
	if i.movie.Genre != "" {
		parts = append(parts, i.movie.Genre)
	}
	if i.movie.Language != "" {
		parts = append(parts, i.movie.Language)
	}
	return strings.Join(parts, " • ")
}

func (i movieItem) FilterValue() string {
	return strings.ToLower(i.movie.Title + " " + i.movie.Genre + " " + i.movie.Language)
}

func buildMovieItems(movies []model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, movie := range movies {
		items = append(items, movieItem{movie: movie})
	}
	return items
}

type showItem struct {
	showing model.Showing
	theatre string
	address string
}

func (i showItem) Title() string {
	return fmt.Sprintf("%s • %s • %s",
		i.showing.StartTime.Format("15:04"), i.theatre, i.showing.ScreenName)
}

func (i showItem) Description() string {
	desc := i.showing.StartTime.Format("Mon 02 Jan")
	if i.address != "" {
		desc += " • " + i.address
	}
	return desc
}

func (i showItem) FilterValue() string {
	return strings.ToLower(i.theatre + " " + i.showing.ScreenName + " " + i.showing.StartTime.Format("15:04"))
}

// buildShowItems flattens the theatre groups into one list; each group's
// showings stay contiguous so the theatre ordering survives.
func buildShowItems(groups []booking.TheatreGroup) []list.Item {
	var items []list.Item
	for _, group := range groups {
		for _, show := range group.Showings {
			items = append(items, showItem{showing: show, theatre: group.Name, address: group.Address})
		}
	}
	return items
}

type userItem struct {
	user model.User
}

func (i userItem) Title() string       { return i.user.Name }
func (i userItem) Description() string { return i.user.Email }
func (i userItem) FilterValue() string {
	return strings.ToLower(i.user.Name + " " + i.user.Email)
}

func buildUserItems(users []model.User) []list.Item {
	items := make([]list.Item, 0, len(users))
	for _, user := range users {
		items = append(items, userItem{user: user})
	}
	return items
}

type bookingItem struct {
	booking model.Booking
}

func (i bookingItem) Title() string {
	return fmt.Sprintf("%s • %s", i.booking.BookingNumber, i.booking.MovieTitle)
}

func (i bookingItem) Description() string {
	parts := []string{}
	if i.booking.TheatreName != "" {
		parts = append(parts, i.booking.TheatreName)
	}
	if i.booking.ScreenName != "" {
		parts = append(parts, i.booking.ScreenName)
	}
	if !i.booking.ShowTime.IsZero() {
		parts = append(parts, i.booking.ShowTime.Format("02 Jan 15:04"))
	}
	if i.booking.SeatLabels != "" {
		parts = append(parts, i.booking.SeatLabels)
	}
	parts = append(parts, formatPrice(i.booking.TotalAmount), statusLabel(i.booking.Status))
	return strings.Join(parts, " • ")
}

func (i bookingItem) FilterValue() string {
	return strings.ToLower(i.booking.BookingNumber + " " + i.booking.MovieTitle + " " + i.booking.TheatreName)
}

func buildBookingItems(bookings []model.Booking) []list.Item {
	items := make([]list.Item, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, bookingItem{booking: b})
	}
	return items
}
