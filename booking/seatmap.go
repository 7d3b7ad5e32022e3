package booking

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"cinebook-cli/model"
)

// Seat joins one SeatAvailability with its resolved SeatTemplate.
type Seat struct {
	Availability model.SeatAvailability
	Template     model.SeatTemplate
}

func (s Seat) Label() string {
	return s.Template.Label
}

func (s Seat) Booked() bool {
	return s.Availability.Status == model.SeatBooked
}

// SeatRow is one display row of the seat map, keyed by the row letter.
type SeatRow struct {
	Label string
	Seats []Seat
}

// TemplateResolver looks up a seat template by id.
type TemplateResolver func(model.SeatTemplateID) (model.SeatTemplate, bool)

// BuildSeatRows joins availability records to their templates and arranges
// them into rows: partitioned by the first character of the seat label,
// rows sorted lexicographically, seats sorted by numeric suffix. Records
// whose template cannot be resolved or whose label is empty are dropped and
// logged as data-integrity gaps. Building twice from the same inputs yields
// identical ordering.
func BuildSeatRows(avail []model.SeatAvailability, resolve TemplateResolver, logger *zap.Logger) []SeatRow {
	if logger == nil {
		logger = zap.NewNop()
	}

	rows := map[string][]Seat{}
	for _, seat := range avail {
		tpl, ok := resolve(seat.SeatTemplateId)
		if !ok {
			logger.Warn("seat availability references unknown seat template",
				zap.Int("seatAvailabilityId", int(seat.Id)),
				zap.Int("seatTemplateId", int(seat.SeatTemplateId)))
			continue
		}
		label := strings.TrimSpace(tpl.Label)
		if label == "" {
			logger.Warn("seat template has empty label",
				zap.Int("seatTemplateId", int(tpl.Id)))
			continue
		}
		row := string([]rune(label)[0])
		rows[row] = append(rows[row], Seat{Availability: seat, Template: tpl})
	}

	labels := make([]string, 0, len(rows))
	for label := range rows {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]SeatRow, 0, len(labels))
	for _, label := range labels {
		seats := rows[label]
		sort.SliceStable(seats, func(i, j int) bool {
			left, leftOk := seatNumber(seats[i].Template.Label)
			right, rightOk := seatNumber(seats[j].Template.Label)
			if leftOk && rightOk {
				return left < right
			}
			// Unparsable suffixes keep their relative order.
			return false
		})
		out = append(out, SeatRow{Label: label, Seats: seats})
	}
	return out
}

func seatNumber(label string) (int, bool) {
	runes := []rune(strings.TrimSpace(label))
	if len(runes) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(string(runes[1:]))
	if err != nil {
		return 0, false
	}
	return n, true
}
