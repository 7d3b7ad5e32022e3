package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	tokenAvailable = "[]"
	tokenBooked    = "XX"
	tokenSelected  = "##"
)

func (m appModel) renderSeatMap() string {
	if len(m.rows) == 0 {
		return "No seat map data."
	}

	rowWidth := 2
	for _, row := range m.rows {
		if len(row.Label) > rowWidth {
			rowWidth = len(row.Label)
		}
	}

	maxLabelWidth := 2
	if m.showSeatNumbers {
		for _, row := range m.rows {
			for _, seat := range row.Seats {
				if l := len(seat.Label()); l > maxLabelWidth {
					maxLabelWidth = l
				}
			}
		}
	}
	cellWidth := maxLabelWidth
	if cellWidth < 2 {
		cellWidth = 2
	}

	seatStyleAvailable := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleBooked := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatStyleSelected := lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	available := 0
	booked := 0
	total := 0
	maxCols := 0

	var b strings.Builder
	for r, row := range m.rows {
		if len(row.Seats) > maxCols {
			maxCols = len(row.Seats)
		}
		b.WriteString(fmt.Sprintf("%*s ", rowWidth, row.Label))
		for c, seat := range row.Seats {
			total++
			token := tokenAvailable
			style := seatStyleAvailable
			switch {
			case seat.Booked():
				booked++
				token = tokenBooked
				style = seatStyleBooked
			case m.selection.Has(seat.Availability.Id):
				available++
				token = tokenSelected
				style = seatStyleSelected
			default:
				available++
			}

			text := token
			if m.showSeatNumbers {
				text = seat.Label()
			}
			rendered := style.Render(padCell(text, cellWidth))
			if m.state == stateSeatMap && r == m.cursorRow && c == m.cursorCol {
				rendered = cursorStyle.Render(padCell(text, cellWidth))
			}
			b.WriteString(rendered)
			if c < len(row.Seats)-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString(fmt.Sprintf(" %*s\n", rowWidth, row.Label))
	}

	gridWidth := maxCols*(cellWidth+1) - 1
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))

	screenBar := screenBarBlock(gridWidth, "SCREEN")

	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(screenBorderStyle.Render(screenBar.top))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(screenStyle.Render(screenBar.mid))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(screenBorderStyle.Render(screenBar.bot))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(hint("Front / Screen"))
	b.WriteString("\n\n")

	legend := "Legend: [] available • XX booked • ## selected"
	if m.showSeatNumbers {
		legend = "Legend: green available • red booked • cyan selected"
	}

	selectedLabels := m.selectedSeatLabels()
	selectedLine := "Selected: none"
	if len(selectedLabels) > 0 {
		selectedLine = fmt.Sprintf("Selected: %s • Total: %s",
			strings.Join(selectedLabels, ", "),
			formatPrice(m.selectionTotal()))
	}

	percent := float64(available) / float64(maxInt(1, total)) * 100
	counts := fmt.Sprintf("Available: %d • Booked: %d • Total: %d • %.0f%% available",
		available, booked, total, percent)

	out := b.String() + hint(legend) + "\n" + hint(counts) + "\n" + selectedLine
	if m.validationMsg != "" {
		out += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.validationMsg)
	}
	return out
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
