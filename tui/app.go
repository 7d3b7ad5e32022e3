package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"cinebook-cli/booking"
	"cinebook-cli/catalog"
	"cinebook-cli/model"
	"cinebook-cli/source"
	"cinebook-cli/store"
)

type appState int

const (
	stateLoadingMovies appState = iota
	stateSelectMovie
	stateLoadingShows
	stateSelectShow
	stateLoadingSeatMap
	stateSeatMap
	stateSummary
	stateSelectUser
	stateSubmitting
	stateConfirmation
	stateLoadingBookings
	stateMyBookings
	stateError
)

// Deps wires the app to its collaborators.
type Deps struct {
	Source    source.Catalog
	Store     *store.Store
	Finalizer *booking.Finalizer
	Logger    *zap.Logger
}

type appModel struct {
	deps Deps

	state     appState
	lastState appState
	err       error

	width  int
	height int

	movieList   list.Model
	showList    list.Model
	userList    list.Model
	bookingList list.Model

	movie   model.Movie
	showing model.Showing
	groups  []booking.TheatreGroup
	rows    []booking.SeatRow

	selection *booking.Selection
	cursorRow int
	cursorCol int

	showSeatNumbers bool
	validationMsg   string

	// afterLogin is where the user picker returns to once a user is chosen.
	afterLogin appState

	result booking.Result

	spinner spinner.Model
}

type errMsg struct {
	err error
}

type moviesMsg struct {
	movies []model.Movie
	err    error
}

type showsMsg struct {
	movieId  model.MovieID
	showings []model.Showing
	err      error
}

type seatMapMsg struct {
	showingId model.ShowingID
	seats     []model.SeatAvailability
	err       error
}

type bookingDoneMsg struct {
	result booking.Result
	err    error
}

type bookingsMsg struct {
	userId   model.UserID
	bookings []model.Booking
	err      error
}

func New(deps Deps) tea.Model {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	m := appModel{
		deps:      deps,
		state:     stateLoadingMovies,
		selection: booking.NewSelection(),
	}

	m.movieList = newList("Select Movie")
	m.showList = newList("Showtimes")
	m.userList = newList("Who is booking?")
	m.bookingList = newList("My Bookings")

	m.showSeatNumbers = true

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.handleFilterInput(msg) {
			return m, nil
		}
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		m.lastState = recoverStateFrom(m.state)
		m.state = stateError
		return m, nil

	case moviesMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.deps.Store.SetMovies(msg.movies)
		m.movieList.SetItems(buildMovieItems(msg.movies))
		m.state = stateSelectMovie
		return m, nil

	case showsMsg:
		// Responses for a superseded movie are dropped.
		if msg.movieId != m.movie.Id || m.state != stateLoadingShows {
			return m, nil
		}
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.deps.Store.PutShowings(msg.showings)
		m.groups = booking.GroupShowingsByTheatre(msg.showings, m.deps.Store)
		m.showList.Title = fmt.Sprintf("Showtimes • %s", m.movie.Title)
		m.showList.SetItems(buildShowItems(m.groups))
		m.state = stateSelectShow
		return m, nil

	case seatMapMsg:
		if msg.showingId != m.showing.Id || m.state != stateLoadingSeatMap {
			return m, nil
		}
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.deps.Store.SetSeatMap(msg.showingId, msg.seats)
		m.rows = booking.BuildSeatRows(msg.seats, m.deps.Store.TemplateById, m.deps.Logger)
		m.cursorRow, m.cursorCol = 0, 0
		m.state = stateSeatMap
		return m, nil

	case bookingDoneMsg:
		if msg.err != nil {
			switch {
			case errors.Is(msg.err, booking.ErrNoActiveUser):
				m.userList.SetItems(buildUserItems(catalog.Users()))
				m.afterLogin = stateSummary
				m.state = stateSelectUser
				return m, nil
			case errors.Is(msg.err, booking.ErrEmptySelection):
				m.validationMsg = msg.err.Error()
				m.state = stateSeatMap
				return m, nil
			default:
				return m, errCmd(msg.err)
			}
		}
		m.result = msg.result
		m.refreshSeatRows()
		m.state = stateConfirmation
		return m, nil

	case bookingsMsg:
		if m.state != stateLoadingBookings {
			return m, nil
		}
		if user := m.deps.Store.CurrentUser(); user == nil || user.Id != msg.userId {
			return m, nil
		}
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.bookingList.SetItems(buildBookingItems(msg.bookings))
		m.state = stateMyBookings
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectMovie:
		m.movieList, cmd = m.movieList.Update(msg)
	case stateSelectShow:
		m.showList, cmd = m.showList.Update(msg)
	case stateSelectUser:
		m.userList, cmd = m.userList.Update(msg)
	case stateMyBookings:
		m.bookingList, cmd = m.bookingList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoadingMovies, stateLoadingShows, stateLoadingSeatMap, stateSubmitting, stateLoadingBookings:
		return header + "\n\n" + m.loadingView()
	case stateSelectMovie:
		return header + "\n\n" + m.movieList.View()
	case stateSelectShow:
		return header + "\n\n" + m.showList.View()
	case stateSeatMap:
		return header + "\n\n" + m.renderSeatMap()
	case stateSummary:
		return header + "\n\n" + m.summaryView()
	case stateSelectUser:
		return header + "\n\n" + m.userList.View()
	case stateConfirmation:
		return header + "\n\n" + m.confirmationView()
	case stateMyBookings:
		return header + "\n\n" + m.bookingList.View()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("CineBook")
	sub := []string{}
	if m.movie.Title != "" && m.state != stateSelectMovie && m.state != stateLoadingMovies {
		sub = append(sub, fmt.Sprintf("Movie: %s", m.movie.Title))
	}
	if m.showing.Id != 0 && (m.state == stateSeatMap || m.state == stateSummary || m.state == stateSubmitting || m.state == stateConfirmation) {
		sub = append(sub, fmt.Sprintf("Show: %s • %s", m.showing.StartTime.Format("02 Jan 15:04"), m.showing.TheatreName))
	}
	if user := m.deps.Store.CurrentUser(); user != nil {
		sub = append(sub, fmt.Sprintf("User: %s", user.Name))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • esc back • type to filter"
	switch m.state {
	case stateSelectMovie:
		hints = "ctrl+c quit • enter showtimes • ctrl+b my bookings • type to filter"
	case stateSelectShow:
		hints = "ctrl+c quit • esc back • enter pick seats • type to filter"
	case stateSeatMap:
		hints = "arrows move • space toggle seat • enter continue • n numbers • esc back"
	case stateSummary:
		hints = "enter confirm booking • esc back to seats"
	case stateSelectUser:
		hints = "enter sign in • esc back"
	case stateConfirmation:
		hints = "ctrl+b my bookings • esc back to movies • ctrl+c quit"
	case stateMyBookings:
		hints = "esc back • type to filter"
	}

	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingMovies:
		title = "Loading movies"
	case stateLoadingShows:
		title = "Loading showtimes"
	case stateLoadingSeatMap:
		title = "Loading seat map"
	case stateSubmitting:
		title = "Confirming booking"
	case stateLoadingBookings:
		title = "Loading bookings"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		return m.goBack()
	case "n":
		if m.state == stateSeatMap {
			m.showSeatNumbers = !m.showSeatNumbers
			return m, nil, true
		}
	case "ctrl+b":
		if m.state == stateSelectMovie || m.state == stateConfirmation {
			return m.openMyBookings()
		}
	case "up", "k":
		if m.state == stateSeatMap {
			m.moveCursor(-1, 0)
			return m, nil, true
		}
	case "down", "j":
		if m.state == stateSeatMap {
			m.moveCursor(1, 0)
			return m, nil, true
		}
	case "left", "h":
		if m.state == stateSeatMap {
			m.moveCursor(0, -1)
			return m, nil, true
		}
	case "right", "l":
		if m.state == stateSeatMap {
			m.moveCursor(0, 1)
			return m, nil, true
		}
	case " ", "x":
		if m.state == stateSeatMap {
			m.toggleSeatUnderCursor()
			return m, nil, true
		}
	}

	if msg.Type == tea.KeyEnter {
		switch m.state {
		case stateSelectMovie:
			item, ok := m.movieList.SelectedItem().(movieItem)
			if !ok {
				return m, nil, true
			}
			m.movie = item.movie
			// Dependent state is cleared before the fetch resolves so stale
			// showings never render against the new movie.
			m.groups = nil
			m.showList.SetItems(nil)
			m.state = stateLoadingShows
			return m, tea.Batch(m.fetchShowsCmd(m.movie.Id), m.spinner.Tick), true

		case stateSelectShow:
			item, ok := m.showList.SelectedItem().(showItem)
			if !ok {
				return m, nil, true
			}
			m.showing = item.showing
			m.rows = nil
			m.selection = booking.NewSelection()
			m.validationMsg = ""
			m.cursorRow, m.cursorCol = 0, 0
			if seats, cached := m.deps.Store.SeatMap(m.showing.Id); cached {
				m.rows = booking.BuildSeatRows(seats, m.deps.Store.TemplateById, m.deps.Logger)
				m.state = stateSeatMap
				return m, nil, true
			}
			m.state = stateLoadingSeatMap
			return m, tea.Batch(m.fetchSeatMapCmd(m.showing.Id), m.spinner.Tick), true

		case stateSeatMap:
			if err := booking.ValidateProceed(m.selection); err != nil {
				m.validationMsg = err.Error()
				return m, nil, true
			}
			m.validationMsg = ""
			m.state = stateSummary
			return m, nil, true

		case stateSummary:
			m.state = stateSubmitting
			return m, tea.Batch(m.confirmCmd(), m.spinner.Tick), true

		case stateSelectUser:
			item, ok := m.userList.SelectedItem().(userItem)
			if !ok {
				return m, nil, true
			}
			m.deps.Store.SetCurrentUser(item.user)
			if m.afterLogin == stateLoadingBookings {
				m.state = stateLoadingBookings
				return m, tea.Batch(m.fetchBookingsCmd(item.user.Id), m.spinner.Tick), true
			}
			m.state = stateSummary
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m appModel) goBack() (appModel, tea.Cmd, bool) {
	switch m.state {
	case stateSelectShow:
		m.state = stateSelectMovie
	case stateSeatMap:
		// Navigating away from seat selection abandons the selection.
		m.selection = booking.NewSelection()
		m.validationMsg = ""
		m.state = stateSelectShow
	case stateSummary:
		m.state = stateSeatMap
	case stateSelectUser:
		if m.afterLogin == stateLoadingBookings {
			m.state = stateSelectMovie
		} else {
			m.state = stateSummary
		}
	case stateConfirmation, stateMyBookings:
		m.state = stateSelectMovie
	case stateError:
		m.state = m.lastState
	default:
		return m, nil, true
	}
	return m, nil, true
}

func (m appModel) openMyBookings() (appModel, tea.Cmd, bool) {
	user := m.deps.Store.CurrentUser()
	if user == nil {
		m.userList.SetItems(buildUserItems(catalog.Users()))
		m.afterLogin = stateLoadingBookings
		m.state = stateSelectUser
		return m, nil, true
	}
	m.state = stateLoadingBookings
	return m, tea.Batch(m.fetchBookingsCmd(user.Id), m.spinner.Tick), true
}

func (m *appModel) moveCursor(dRow int, dCol int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursorRow += dRow
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	if m.cursorRow >= len(m.rows) {
		m.cursorRow = len(m.rows) - 1
	}
	m.cursorCol += dCol
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if limit := len(m.rows[m.cursorRow].Seats); m.cursorCol >= limit {
		m.cursorCol = limit - 1
	}
}

func (m *appModel) toggleSeatUnderCursor() {
	if m.cursorRow >= len(m.rows) {
		return
	}
	row := m.rows[m.cursorRow]
	if m.cursorCol >= len(row.Seats) {
		return
	}
	seat := row.Seats[m.cursorCol]
	if seat.Booked() {
		return
	}
	m.selection.Toggle(seat.Availability.Id)
	m.validationMsg = ""
}

// refreshSeatRows rebuilds the rows from the store so seats claimed by the
// booking render as Booked.
func (m *appModel) refreshSeatRows() {
	if seats, ok := m.deps.Store.SeatMap(m.showing.Id); ok {
		m.rows = booking.BuildSeatRows(seats, m.deps.Store.TemplateById, m.deps.Logger)
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingMovies ||
		m.state == stateLoadingShows ||
		m.state == stateLoadingSeatMap ||
		m.state == stateSubmitting ||
		m.state == stateLoadingBookings
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.movieList.SetSize(m.width, h)
	m.showList.SetSize(m.width, h)
	m.userList.SetSize(m.width, h)
	m.bookingList.SetSize(m.width, h)
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectMovie:
		return &m.movieList
	case stateSelectShow:
		return &m.showList
	case stateSelectUser:
		return &m.userList
	case stateMyBookings:
		return &m.bookingList
	default:
		return nil
	}
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m appModel) fetchMoviesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		movies, err := m.deps.Source.Movies(ctx)
		return moviesMsg{movies: movies, err: err}
	}
}

func (m appModel) fetchShowsCmd(movieID model.MovieID) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		showings, err := m.deps.Source.ShowingsForMovie(ctx, movieID)
		return showsMsg{movieId: movieID, showings: showings, err: err}
	}
}

func (m appModel) fetchSeatMapCmd(showingID model.ShowingID) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		seats, err := m.deps.Source.SeatMapForShowing(ctx, showingID)
		return seatMapMsg{showingId: showingID, seats: seats, err: err}
	}
}

func (m appModel) confirmCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		result, err := m.deps.Finalizer.Finalize(ctx, m.showing.Id, m.selection, m.rows)
		return bookingDoneMsg{result: result, err: err}
	}
}

func (m appModel) fetchBookingsCmd(userID model.UserID) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		bookings, err := m.deps.Source.BookingsForUser(ctx, userID)
		return bookingsMsg{userId: userID, bookings: bookings, err: err}
	}
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingMovies:
		return stateSelectMovie
	case stateLoadingShows:
		return stateSelectMovie
	case stateLoadingSeatMap:
		return stateSelectShow
	case stateSubmitting:
		return stateSummary
	case stateLoadingBookings:
		return stateSelectMovie
	case stateError:
		return stateSelectMovie
	default:
		return state
	}
}

func formatPrice(price float64) string {
	return fmt.Sprintf("₹%.0f", price)
}

func formatShowTime(t time.Time) string {
	return t.Format("Mon 02 Jan • 15:04")
}
