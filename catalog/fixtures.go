// Package catalog holds the local fixture data used whenever the backend
// cannot serve a request, and the derivation of per-showing seat maps from
// static seat templates.
package catalog

import (
	"fmt"
	"time"

	"cinebook-cli/model"
)

const (
	seatsPerRow   = 10
	premiumRows   = 2
	standardPrice = 150
	premiumPrice  = 250
)

func Movies() []model.Movie {
	return []model.Movie{
		{
			Id:          1,
			Title:       "Dune: Part Two",
			Description: "Paul Atreides unites with the Fremen and seeks revenge against the conspirators who destroyed his family.",
			DurationMin: 166,
			Genre:       "Sci-Fi",
			Language:    "English",
			PosterUrl:   "posters/dune-part-two.jpg",
		},
		{
			Id:          2,
			Title:       "Oppenheimer",
			Description: "The story of J. Robert Oppenheimer and the development of the atomic bomb.",
			DurationMin: 180,
			Genre:       "Drama",
			Language:    "English",
			PosterUrl:   "posters/oppenheimer.jpg",
		},
		{
			Id:          3,
			Title:       "Jawan",
			Description: "A man driven by a personal vendetta rights the wrongs done to society.",
			DurationMin: 169,
			Genre:       "Action",
			Language:    "Hindi",
			PosterUrl:   "posters/jawan.jpg",
		},
		{
			Id:          4,
			Title:       "Inside Out 2",
			Description: "Riley's mind headquarters undergoes a sudden demolition to make room for brand-new emotions.",
			DurationMin: 96,
			Genre:       "Animation",
			Language:    "English",
			PosterUrl:   "posters/inside-out-2.jpg",
		},
	}
}

func Theatres() []model.Theatre {
	return []model.Theatre{
		{Id: 1, Name: "Cineplex Royale", Address: "12 MG Road", ScreenCount: 3},
		{Id: 2, Name: "Starlight Cinemas", Address: "48 Lake View Avenue", ScreenCount: 2},
	}
}

func Screens() []model.Screen {
	return []model.Screen{
		{Id: 1, Name: "Screen 1", Capacity: 60, TheatreId: 1},
		{Id: 2, Name: "Screen 2", Capacity: 80, TheatreId: 1},
		{Id: 3, Name: "Audi 3", Capacity: 50, TheatreId: 1},
		{Id: 4, Name: "Screen 1", Capacity: 60, TheatreId: 2},
		{Id: 5, Name: "Screen 2", Capacity: 70, TheatreId: 2},
	}
}

func Users() []model.User {
	return []model.User{
		{Id: 1, Name: "Aarav Mehta", Email: "aarav@example.com"},
		{Id: 2, Name: "Diya Sharma", Email: "diya@example.com"},
	}
}

// SeatTemplates generates the seat layout of every screen: rows of ten
// labelled A1..A10, B1.., with the last two rows of each screen priced as
// Premium. Template ids run sequentially across screens in Screens() order,
// so screen 1 holds ids 1-60 with labels A1-F10.
func SeatTemplates() []model.SeatTemplate {
	var templates []model.SeatTemplate
	var id model.SeatTemplateID
	for _, screen := range Screens() {
		rows := screen.Capacity / seatsPerRow
		for r := 0; r < rows; r++ {
			for n := 1; n <= seatsPerRow; n++ {
				id++
				category := model.SeatStandard
				price := float64(standardPrice)
				if r >= rows-premiumRows {
					category = model.SeatPremium
					price = float64(premiumPrice)
				}
				templates = append(templates, model.SeatTemplate{
					Id:        id,
					Label:     fmt.Sprintf("%c%d", 'A'+r, n),
					Category:  category,
					BasePrice: price,
					ScreenId:  screen.Id,
				})
			}
		}
	}
	return templates
}

func Showings() []model.Showing {
	day := time.Date(2025, time.October, 24, 0, 0, 0, 0, time.Local)
	return []model.Showing{
		showing(1, 1, 1, day.Add(9*time.Hour)),
		showing(2, 1, 1, day.Add(13*time.Hour)),
		showing(3, 1, 4, day.Add(18*time.Hour+30*time.Minute)),
		showing(4, 2, 2, day.Add(10*time.Hour)),
		showing(5, 2, 5, day.Add(20*time.Hour)),
		showing(6, 3, 3, day.Add(11*time.Hour+30*time.Minute)),
		showing(7, 3, 2, day.Add(17*time.Hour)),
		showing(8, 4, 3, day.Add(15*time.Hour)),
	}
}

// ShowingsForMovie filters the fixture showings by movie id, keeping source
// order.
func ShowingsForMovie(movieID model.MovieID) []model.Showing {
	var out []model.Showing
	for _, show := range Showings() {
		if show.MovieId == movieID {
			out = append(out, show)
		}
	}
	return out
}

func showing(id model.ShowingID, movieID model.MovieID, screenID model.ScreenID, start time.Time) model.Showing {
	show := model.Showing{
		Id:        id,
		StartTime: start,
		MovieId:   movieID,
		ScreenId:  screenID,
	}
	for _, movie := range Movies() {
		if movie.Id == movieID {
			show.EndTime = start.Add(time.Duration(movie.DurationMin) * time.Minute)
			break
		}
	}
	for _, screen := range Screens() {
		if screen.Id == screenID {
			show.ScreenName = screen.Name
			show.TheatreId = screen.TheatreId
			break
		}
	}
	for _, theatre := range Theatres() {
		if theatre.Id == show.TheatreId {
			show.TheatreName = theatre.Name
			break
		}
	}
	return show
}
