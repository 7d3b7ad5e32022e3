// Package booking implements the seat-selection and booking-confirmation
// flow: grouping showings by theatre, building seat rows from availability
// and templates, tracking the user's selection, and finalizing a booking.
package booking

import (
	"cinebook-cli/model"
)

const unknownTheatreName = "Unknown Theatre"

// TheatreGroup is the showings of one theatre, in source order.
type TheatreGroup struct {
	TheatreId model.TheatreID
	Name      string
	Address   string
	Showings  []model.Showing
}

// Reference resolves static theatre and screen records.
type Reference interface {
	TheatreById(model.TheatreID) (model.Theatre, bool)
	ScreenById(model.ScreenID) (model.Screen, bool)
}

// GroupShowingsByTheatre partitions showings into per-theatre groups.
// Groups appear in first-encounter order and showings keep their source
// order within a group. A showing whose theatre cannot be resolved, even
// via its screen, lands in a synthetic unknown-theatre group rather than
// being dropped.
func GroupShowingsByTheatre(showings []model.Showing, ref Reference) []TheatreGroup {
	var groups []TheatreGroup
	index := map[model.TheatreID]int{}

	for _, show := range showings {
		theatreID := show.TheatreId
		if theatreID == 0 {
			if screen, ok := ref.ScreenById(show.ScreenId); ok {
				theatreID = screen.TheatreId
			}
		}

		i, ok := index[theatreID]
		if !ok {
			group := TheatreGroup{TheatreId: theatreID, Name: show.TheatreName}
			if theatre, found := ref.TheatreById(theatreID); found {
				if group.Name == "" {
					group.Name = theatre.Name
				}
				group.Address = theatre.Address
			}
			if group.Name == "" {
				group.Name = unknownTheatreName
			}
			i = len(groups)
			index[theatreID] = i
			groups = append(groups, group)
		}
		groups[i].Showings = append(groups[i].Showings, show)
	}
	return groups
}
