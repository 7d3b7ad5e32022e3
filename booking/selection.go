package booking

import (
	"errors"
	"sort"

	"cinebook-cli/model"
)

// ErrEmptySelection is surfaced inline when the user tries to proceed
// without choosing a seat.
var ErrEmptySelection = errors.New("select at least one seat")

// Selection is the set of seat-availability ids chosen for the in-progress
// booking.
type Selection struct {
	ids map[model.SeatAvailabilityID]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: map[model.SeatAvailabilityID]struct{}{}}
}

// Toggle adds the seat if absent and removes it if present. Callers must
// not toggle booked seats; the seat map view never wires the handler for
// them.
func (s *Selection) Toggle(id model.SeatAvailabilityID) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

func (s *Selection) Has(id model.SeatAvailabilityID) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Count() int {
	return len(s.ids)
}

func (s *Selection) Clear() {
	s.ids = map[model.SeatAvailabilityID]struct{}{}
}

// Ids returns the selected ids in ascending order.
func (s *Selection) Ids() []model.SeatAvailabilityID {
	out := make([]model.SeatAvailabilityID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ComputeTotal sums the price of every selected seat resolved against the
// built rows. Selected ids that no longer resolve contribute zero.
func ComputeTotal(sel *Selection, rows []SeatRow) float64 {
	if sel == nil {
		return 0
	}
	var total float64
	for _, row := range rows {
		for _, seat := range row.Seats {
			if sel.Has(seat.Availability.Id) {
				total += seat.Availability.Price
			}
		}
	}
	return total
}

// ValidateProceed permits advancing to the summary only with a non-empty
// selection.
func ValidateProceed(sel *Selection) error {
	if sel == nil || sel.Count() == 0 {
		return ErrEmptySelection
	}
	return nil
}
