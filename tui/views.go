package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cinebook-cli/booking"
	"cinebook-cli/model"
)

func (m appModel) selectedSeats() []booking.Seat {
	var seats []booking.Seat
	for _, row := range m.rows {
		for _, seat := range row.Seats {
			if m.selection.Has(seat.Availability.Id) {
				seats = append(seats, seat)
			}
		}
	}
	return seats
}

func (m appModel) selectedSeatLabels() []string {
	var labels []string
	for _, seat := range m.selectedSeats() {
		labels = append(labels, seat.Label())
	}
	return labels
}

func (m appModel) selectionTotal() float64 {
	return booking.ComputeTotal(m.selection, m.rows)
}

func (m appModel) summaryView() string {
	headerChip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(0, 2)
	label := lipgloss.NewStyle().Faint(true).Width(10)
	value := lipgloss.NewStyle().Bold(true)

	line := func(name, text string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, label.Render(name), value.Render(text))
	}

	seats := m.selectedSeats()
	var seatLines []string
	for _, seat := range seats {
		seatLines = append(seatLines, fmt.Sprintf("  %s • %s • %s",
			seat.Label(), seat.Template.Category, formatPrice(seat.Availability.Price)))
	}

	userLine := "not signed in yet"
	if user := m.deps.Store.CurrentUser(); user != nil {
		userLine = user.Name
	}

	content := strings.Join(append([]string{
		headerChip.Render("Booking Summary"),
		"",
		line("Movie", m.movie.Title),
		line("Theatre", m.showing.TheatreName),
		line("Screen", m.showing.ScreenName),
		line("Show", formatShowTime(m.showing.StartTime)),
		line("User", userLine),
		"",
		value.Render(fmt.Sprintf("Seats (%d)", len(seats))),
	}, append(seatLines,
		"",
		line("Total", formatPrice(m.selectionTotal())),
		"",
		hint("ENTER confirm booking • ESC back to seats • CTRL+C quit"),
	)...), "\n")

	return m.panel(content)
}

func (m appModel) confirmationView() string {
	b := m.result.Booking

	chipColor := lipgloss.Color("35")
	title := "Booking Confirmed"
	note := ""
	if m.result.Offline {
		chipColor = lipgloss.Color("214")
		title = "Booking Confirmed (offline)"
		note = "The booking service was unreachable; this booking was recorded locally."
	}
	headerChip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(chipColor).
		Padding(0, 2)

	label := lipgloss.NewStyle().Faint(true).Width(10)
	value := lipgloss.NewStyle().Bold(true)
	line := func(name, text string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, label.Render(name), value.Render(text))
	}

	lines := []string{
		headerChip.Render(title),
		"",
		line("Booking", b.BookingNumber),
		line("Movie", b.MovieTitle),
		line("Theatre", b.TheatreName),
		line("Screen", b.ScreenName),
		line("Show", formatShowTime(b.ShowTime)),
		line("Seats", b.SeatLabels),
		line("Total", formatPrice(b.TotalAmount)),
		line("Payment", fmt.Sprintf("%s • %s", m.result.Payment.Method, m.result.Payment.Status)),
		line("Status", string(b.Status)),
	}
	if note != "" {
		lines = append(lines, "", hint(note))
	}
	lines = append(lines, "", hint("CTRL+B my bookings • ESC back to movies • CTRL+C quit"))

	return m.panel(strings.Join(lines, "\n"))
}

func (m appModel) panel(content string) string {
	panelStyle := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		MarginTop(1)
	if m.width > 56 {
		cardWidth := m.width - 8
		if cardWidth > 84 {
			cardWidth = 84
		}
		panelStyle = panelStyle.Width(cardWidth)
	}
	panel := panelStyle.Render(content)
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(panel)
}

func statusLabel(status model.BookingStatus) string {
	if status == model.BookingConfirmedOffline {
		return "Confirmed (offline)"
	}
	return string(status)
}
