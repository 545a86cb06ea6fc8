package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cinebook/model"
	"cinebook/service"
)

type appState int

const (
	stateAuthMenu appState = iota
	stateSignIn
	stateSignUp
	stateMainMenu
	stateSelectGenre
	stateSelectMovie
	stateTicketCount
	stateSelectSeats
	stateCustomerInfo
	stateConfirm
	stateBookingList
	stateFindBooking
	stateBookingDetail
	stateTicketEdit
	stateSeatOverview
	stateLedgerReport
	stateError
)

// detailMode says what the booking list and detail screens are being used
// for: plain viewing, the cancel flow, or the admin update flow.
type detailMode int

const (
	modeView detailMode = iota
	modeCancel
	modeAdmin
)

type appModel struct {
	svc  *service.Bookings
	auth *service.Auth

	state     appState
	lastState appState
	err       error

	width  int
	height int

	user     model.User
	signedIn bool

	authList    list.Model
	menuList    list.Model
	genreList   list.Model
	movieList   list.Model
	bookingList list.Model

	inputs     []textinput.Model
	focusIndex int

	pendingMovie model.Movie
	attempt      *service.Attempt
	cursorRow    int
	cursorCol    int

	mode   detailMode
	detail model.Booking

	notice   string
	seatWarn string
}

// New builds the interactive app over prebuilt services.
func New(svc *service.Bookings, auth *service.Auth) tea.Model {
	m := appModel{
		svc:   svc,
		auth:  auth,
		state: stateAuthMenu,
	}

	m.authList = newList("Welcome to Cinebook")
	m.authList.SetItems([]list.Item{
		menuItem{title: "Sign in", desc: "Use an existing account"},
		menuItem{title: "Create account", desc: "Register a new account"},
		menuItem{title: "Continue as guest", desc: "Book without an account"},
	})

	m.menuList = newList("Main Menu")
	m.menuList.SetItems([]list.Item{
		menuItem{title: "Browse & book shows", desc: "Pick a genre and a movie"},
		menuItem{title: "My bookings", desc: "Bookings for your email"},
		menuItem{title: "Find a booking", desc: "Look up by id or short code"},
		menuItem{title: "Cancel a booking", desc: "Cancel a confirmed booking"},
		menuItem{title: "Update a booking", desc: "Admin: status and ticket count"},
		menuItem{title: "Seat availability", desc: "Current auditorium view"},
		menuItem{title: "Ledger report", desc: "Replay diagnostics from startup"},
		menuItem{title: "Quit", desc: "Leave the app"},
	})

	m.genreList = newList("Select Genre")
	genres := svc.Catalog().MenuGenres()
	genreItems := make([]list.Item, 0, len(genres))
	for _, genre := range genres {
		genreItems = append(genreItems, genreItem{genre: genre})
	}
	m.genreList.SetItems(genreItems)

	m.movieList = newList("Select Movie")
	m.bookingList = newList("Bookings")

	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.inFormState() {
			return m.handleFormKey(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	if listPtr := m.activeList(); listPtr != nil {
		*listPtr, cmd = listPtr.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		next, cmd := m.goBack()
		return next, cmd, true
	}

	switch m.state {
	case stateSelectSeats:
		return m.handleSeatKey(msg)
	case stateConfirm:
		return m.handleConfirmKey(msg)
	case stateBookingDetail:
		return m.handleDetailKey(msg)
	case stateSeatOverview, stateLedgerReport:
		return m, nil, true
	case stateError:
		if msg.Type == tea.KeyEnter {
			m.state = m.lastState
			m.err = nil
		}
		return m, nil, true
	}

	if msg.Type != tea.KeyEnter {
		return m, nil, false
	}

	switch m.state {
	case stateAuthMenu:
		item, ok := m.authList.SelectedItem().(menuItem)
		if !ok {
			return m, nil, true
		}
		switch item.title {
		case "Sign in":
			m.openSignIn()
		case "Create account":
			m.openSignUp()
		default:
			m.state = stateMainMenu
		}
		return m, nil, true

	case stateMainMenu:
		item, ok := m.menuList.SelectedItem().(menuItem)
		if !ok {
			return m, nil, true
		}
		return m.openMenuEntry(item)

	case stateSelectGenre:
		item, ok := m.genreList.SelectedItem().(genreItem)
		if !ok {
			return m, nil, true
		}
		movies := m.svc.Catalog().MoviesByGenre(item.genre.Prefix)
		if len(movies) == 0 {
			m.fail(fmt.Errorf("no movies in %s yet", item.genre.Name), stateSelectGenre)
			return m, nil, true
		}
		movieItems := make([]list.Item, 0, len(movies))
		for _, movie := range movies {
			movieItems = append(movieItems, movieItem{movie: movie})
		}
		m.movieList.Title = fmt.Sprintf("Select Movie • %s", item.genre.Name)
		m.movieList.SetItems(movieItems)
		m.movieList.Select(0)
		m.state = stateSelectMovie
		return m, nil, true

	case stateSelectMovie:
		item, ok := m.movieList.SelectedItem().(movieItem)
		if !ok {
			return m, nil, true
		}
		m.openTicketCount(item.movie)
		return m, nil, true

	case stateBookingList:
		item, ok := m.bookingList.SelectedItem().(bookingItem)
		if !ok {
			return m, nil, true
		}
		m.detail = item.booking
		m.state = stateBookingDetail
		return m, nil, true
	}

	return m, nil, false
}

func (m appModel) openMenuEntry(item menuItem) (tea.Model, tea.Cmd, bool) {
	m.notice = ""
	switch item.title {
	case "Quit":
		return m, tea.Quit, true
	case "Browse & book shows":
		m.genreList.Select(0)
		m.state = stateSelectGenre
	case "My bookings":
		m.mode = modeView
		if m.signedIn {
			m.showBookingsFor(m.user.Email)
			return m, nil, true
		}
		m.openFindInput("My Bookings", "email address")
	case "Find a booking":
		m.mode = modeView
		m.openFindInput("Find Booking", "booking id or short code")
	case "Cancel a booking":
		m.mode = modeCancel
		m.openFindInput("Cancel Booking", "booking id or short code")
	case "Update a booking":
		m.mode = modeAdmin
		m.openFindInput("Update Booking", "booking id or short code")
	case "Seat availability":
		m.state = stateSeatOverview
	case "Ledger report":
		m.state = stateLedgerReport
	}
	return m, nil, true
}

func (m *appModel) showBookingsFor(email string) {
	bookings, err := m.svc.ByEmail(email)
	if err != nil {
		m.fail(err, stateMainMenu)
		return
	}
	if len(bookings) == 0 {
		m.fail(fmt.Errorf("no bookings found for %s", email), stateMainMenu)
		return
	}
	items := make([]list.Item, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, bookingItem{booking: booking})
	}
	m.bookingList.Title = fmt.Sprintf("Bookings • %s", email)
	m.bookingList.SetItems(items)
	m.bookingList.Select(0)
	m.state = stateBookingList
}

func (m *appModel) fail(err error, returnState appState) {
	m.err = err
	m.lastState = returnState
	m.state = stateError
}

// --- form states ---

func (m appModel) inFormState() bool {
	switch m.state {
	case stateSignIn, stateSignUp, stateTicketCount, stateCustomerInfo, stateFindBooking, stateTicketEdit:
		return true
	}
	return false
}

func (m *appModel) openSignIn() {
	m.inputs = []textinput.Model{
		newInput("email", 64, false),
		newInput("password", 64, true),
	}
	m.focusInput(0)
	m.state = stateSignIn
}

func (m *appModel) openSignUp() {
	m.inputs = []textinput.Model{
		newInput("name", 64, false),
		newInput("email", 64, false),
		newInput("password (6+ chars)", 64, true),
	}
	m.focusInput(0)
	m.state = stateSignUp
}

func (m *appModel) openTicketCount(movie model.Movie) {
	m.abandonAttempt()
	m.pendingMovie = movie
	m.inputs = []textinput.Model{newInput("number of tickets", 4, false)}
	m.focusInput(0)
	m.state = stateTicketCount
}

func (m *appModel) openCustomerInfo() {
	name := newInput("your name", 64, false)
	email := newInput("your email", 64, false)
	if m.signedIn {
		name.SetValue(m.user.Name)
		email.SetValue(m.user.Email)
	}
	m.inputs = []textinput.Model{name, email}
	m.focusInput(0)
	m.state = stateCustomerInfo
}

func (m *appModel) openFindInput(title, placeholder string) {
	m.inputs = []textinput.Model{newInput(placeholder, 64, false)}
	m.focusInput(0)
	m.notice = title
	m.state = stateFindBooking
}

func (m *appModel) openTicketEdit() {
	input := newInput("new number of tickets", 4, false)
	input.SetValue(strconv.Itoa(m.detail.Tickets))
	m.inputs = []textinput.Model{input}
	m.focusInput(0)
	m.state = stateTicketEdit
}

func (m *appModel) focusInput(index int) {
	m.focusIndex = index
	for i := range m.inputs {
		if i == index {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m appModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m.goBack()
	case "tab", "down":
		m.focusInput((m.focusIndex + 1) % len(m.inputs))
		return m, nil
	case "shift+tab", "up":
		m.focusInput((m.focusIndex + len(m.inputs) - 1) % len(m.inputs))
		return m, nil
	case "enter":
		if m.focusIndex < len(m.inputs)-1 {
			m.focusInput(m.focusIndex + 1)
			return m, nil
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateSignIn:
		user, err := m.auth.Login(m.inputs[0].Value(), m.inputs[1].Value())
		if err != nil {
			m.fail(err, stateSignIn)
			return m, nil
		}
		m.user = user
		m.signedIn = true
		m.notice = fmt.Sprintf("Signed in as %s", user.Name)
		m.state = stateMainMenu

	case stateSignUp:
		user, err := m.auth.Register(m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value())
		if err != nil {
			m.fail(err, stateSignUp)
			return m, nil
		}
		m.user = user
		m.signedIn = true
		m.notice = fmt.Sprintf("Welcome, %s", user.Name)
		m.state = stateMainMenu

	case stateTicketCount:
		count, err := strconv.Atoi(strings.TrimSpace(m.inputs[0].Value()))
		if err != nil {
			m.fail(service.ErrTicketCount, stateTicketCount)
			return m, nil
		}
		attempt, err := m.svc.Begin(m.pendingMovie.Id, count)
		if err != nil {
			m.fail(err, stateTicketCount)
			return m, nil
		}
		m.attempt = attempt
		m.cursorRow, m.cursorCol = 0, 0
		m.seatWarn = ""
		m.state = stateSelectSeats

	case stateCustomerInfo:
		name := strings.TrimSpace(m.inputs[0].Value())
		email := strings.TrimSpace(m.inputs[1].Value())
		if name == "" || email == "" {
			m.fail(errors.New("name and email are required"), stateCustomerInfo)
			return m, nil
		}
		m.inputs[0].SetValue(name)
		m.inputs[1].SetValue(email)
		m.state = stateConfirm

	case stateFindBooking:
		m.submitFind()

	case stateTicketEdit:
		count, err := strconv.Atoi(strings.TrimSpace(m.inputs[0].Value()))
		if err != nil {
			m.fail(service.ErrTicketCount, stateTicketEdit)
			return m, nil
		}
		updated, err := m.svc.SetTickets(m.detail, count)
		if err != nil {
			m.fail(err, stateTicketEdit)
			return m, nil
		}
		m.detail = updated
		m.notice = fmt.Sprintf("Booking #%d now has %d tickets", updated.Id, updated.Tickets)
		m.state = stateBookingDetail
	}
	return m, nil
}

func (m *appModel) submitFind() {
	query := strings.TrimSpace(m.inputs[0].Value())
	if query == "" {
		return
	}
	if strings.Contains(query, "@") {
		m.showBookingsFor(query)
		return
	}
	booking, found, err := m.svc.Find(query)
	if err != nil {
		m.fail(err, stateFindBooking)
		return
	}
	if !found {
		m.fail(fmt.Errorf("no booking matches %q", query), stateFindBooking)
		return
	}
	m.detail = booking
	m.notice = ""
	m.state = stateBookingDetail
}

// --- seat selection ---

func (m appModel) handleSeatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	inv := m.svc.Inventory()
	switch msg.String() {
	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "down", "j":
		if m.cursorRow < inv.Rows()-1 {
			m.cursorRow++
		}
	case "left", "h":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "right", "l":
		if m.cursorCol < inv.Cols()-1 {
			m.cursorCol++
		}
	case "enter", " ":
		seat := inv.SeatLabel(m.cursorRow, m.cursorCol)
		if m.attempt.Selected(seat) {
			m.attempt.UnselectSeat(seat)
			m.seatWarn = ""
			return m, nil, true
		}
		if err := m.attempt.SelectSeat(seat); err != nil {
			m.seatWarn = err.Error()
			return m, nil, true
		}
		m.seatWarn = ""
	case "c":
		if !m.attempt.Complete() {
			m.seatWarn = service.ErrSelectionShort.Error()
			return m, nil, true
		}
		m.openCustomerInfo()
	}
	return m, nil, true
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "y", "enter":
		booking, err := m.attempt.Confirm(m.inputs[0].Value(), m.inputs[1].Value())
		if err != nil {
			m.fail(err, stateConfirm)
			return m, nil, true
		}
		m.attempt = nil
		m.notice = fmt.Sprintf("Booking #%d confirmed • code %s • details sent to %s", booking.Id, booking.Code, booking.CustomerEmail)
		m.state = stateMainMenu
	case "n":
		m.abandonAttempt()
		m.notice = "Booking abandoned"
		m.state = stateMainMenu
	}
	return m, nil, true
}

func (m appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch m.mode {
	case modeCancel:
		switch msg.String() {
		case "y", "enter":
			cancelled, err := m.svc.Cancel(m.detail)
			if err != nil {
				if errors.Is(err, service.ErrAlreadyCancelled) {
					m.notice = "This booking is already cancelled"
					m.state = stateMainMenu
					return m, nil, true
				}
				m.fail(err, stateBookingDetail)
				return m, nil, true
			}
			m.notice = fmt.Sprintf("Booking #%d cancelled • refund of $%.2f to %s", cancelled.Id, cancelled.TotalPrice, cancelled.CustomerEmail)
			m.state = stateMainMenu
		case "n":
			m.notice = "Cancellation aborted, booking kept"
			m.state = stateMainMenu
		}
	case modeAdmin:
		switch msg.String() {
		case "s":
			target := model.StatusCancelled
			if m.detail.Status == model.StatusCancelled {
				target = model.StatusConfirmed
			}
			updated, err := m.svc.SetStatus(m.detail, target)
			if err != nil {
				m.fail(err, stateBookingDetail)
				return m, nil, true
			}
			m.detail = updated
			m.notice = fmt.Sprintf("Status set to %s", updated.Status)
		case "t":
			m.openTicketEdit()
		}
	}
	return m, nil, true
}

// --- navigation ---

func (m appModel) goBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateSignIn, stateSignUp:
		m.state = stateAuthMenu
	case stateMainMenu:
		return m, tea.Quit
	case stateSelectGenre:
		m.state = stateMainMenu
	case stateSelectMovie:
		m.state = stateSelectGenre
	case stateTicketCount:
		m.state = stateSelectMovie
	case stateSelectSeats, stateConfirm:
		m.abandonAttempt()
		m.state = stateSelectMovie
	case stateCustomerInfo:
		m.state = stateSelectSeats
	case stateBookingList, stateFindBooking, stateSeatOverview, stateLedgerReport:
		m.state = stateMainMenu
	case stateBookingDetail:
		if m.mode == modeView && len(m.bookingList.Items()) > 0 {
			m.state = stateBookingList
		} else {
			m.state = stateMainMenu
		}
	case stateTicketEdit:
		m.state = stateBookingDetail
	case stateError:
		m.state = m.lastState
		m.err = nil
	}
	return m, nil
}

func (m *appModel) abandonAttempt() {
	if m.attempt != nil {
		m.attempt.Abandon()
		m.attempt = nil
	}
}

// --- views ---

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateAuthMenu:
		return header + "\n\n" + m.authList.View()
	case stateMainMenu:
		return header + "\n\n" + m.menuList.View()
	case stateSelectGenre:
		return header + "\n\n" + m.genreList.View()
	case stateSelectMovie:
		return header + "\n\n" + m.movieList.View()
	case stateBookingList:
		return header + "\n\n" + m.bookingList.View()
	case stateSignIn:
		return header + "\n\n" + m.formView("Sign In", "enter submit • tab next field • esc back")
	case stateSignUp:
		return header + "\n\n" + m.formView("Create Account", "enter submit • tab next field • esc back")
	case stateTicketCount:
		return header + "\n\n" + m.ticketCountView()
	case stateSelectSeats:
		return header + "\n\n" + m.seatSelectView()
	case stateCustomerInfo:
		return header + "\n\n" + m.formView("Customer Details", "enter continue • tab next field • esc back to seats")
	case stateConfirm:
		return header + "\n\n" + m.confirmView()
	case stateFindBooking:
		return header + "\n\n" + m.formView(m.notice, "enter search • esc back")
	case stateBookingDetail:
		return header + "\n\n" + m.detailView()
	case stateTicketEdit:
		return header + "\n\n" + m.formView("Modify Tickets", "enter save • esc back")
	case stateSeatOverview:
		return header + "\n\n" + m.renderSeatGrid(false) + "\n" + hint("esc back")
	case stateLedgerReport:
		return header + "\n\n" + m.reportView()
	case stateError:
		return header + "\n\n" + errorStyle.Render(m.err.Error()) + "\n\n" + hint("Press enter or esc to go back, ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Cinebook")
	var sub []string
	if m.signedIn {
		sub = append(sub, fmt.Sprintf("User: %s", m.user.Name))
	}
	if m.attempt != nil {
		sub = append(sub, fmt.Sprintf("Movie: %s", m.attempt.Movie.Title))
		sub = append(sub, fmt.Sprintf("Tickets: %d", m.attempt.Tickets))
	}
	if report := m.svc.LoadReport(); report.Skipped > 0 || m.svc.SeatConflicts() > 0 {
		sub = append(sub, fmt.Sprintf("Ledger: %d skipped, %d seat conflicts", report.Skipped, m.svc.SeatConflicts()))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + hint(meta)
	}
	notice := ""
	if m.notice != "" && m.state == stateMainMenu {
		notice = "\n" + noticeStyle.Render(m.notice)
	}
	return title + meta + notice + "\n" + hint("ctrl+c quit • esc back")
}

func (m appModel) formView(title, hints string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hint(hints))
	return panelStyle.Render(b.String())
}

func (m appModel) ticketCountView() string {
	movie := m.pendingMovie
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(movie.Title))
	b.WriteString("\n")
	b.WriteString(hint(fmt.Sprintf("$%.2f per ticket • %s • %d seats available", movie.Price, movie.Showtime, m.svc.Inventory().AvailableCount())))
	if movie.Description != "" {
		b.WriteString("\n")
		b.WriteString(hint(movie.Description))
	}
	b.WriteString("\n\n")
	b.WriteString(m.inputs[0].View())
	b.WriteString("\n\n")
	b.WriteString(hint("enter continue • esc back"))
	return panelStyle.Render(b.String())
}

func (m appModel) seatSelectView() string {
	status := fmt.Sprintf("Selected %d of %d: %s", len(m.attempt.Seats), m.attempt.Tickets, strings.Join(m.attempt.Seats, ", "))
	warn := ""
	if m.seatWarn != "" {
		warn = "\n" + errorStyle.Render(m.seatWarn)
	}
	keys := "arrows/hjkl move • enter/space toggle seat • c continue • esc abort"
	return m.renderSeatGrid(true) + "\n" + status + warn + "\n" + hint(keys)
}

func (m appModel) confirmView() string {
	a := m.attempt
	rows := []string{
		fmt.Sprintf("Movie           : %s", a.Movie.Title),
		fmt.Sprintf("Showtime        : %s", a.Movie.Showtime),
		fmt.Sprintf("Tickets         : %d", a.Tickets),
		fmt.Sprintf("Seats           : %s", strings.Join(a.Seats, ", ")),
		fmt.Sprintf("Price per Ticket: $%.2f", a.Movie.Price),
		fmt.Sprintf("Total Price     : $%.2f", a.Total()),
		fmt.Sprintf("Customer        : %s", m.inputs[0].Value()),
		fmt.Sprintf("Email           : %s", m.inputs[1].Value()),
		fmt.Sprintf("Booking Code    : %s", a.Code()),
	}
	body := lipgloss.NewStyle().Bold(true).Render("Booking Summary") + "\n\n" +
		strings.Join(rows, "\n") + "\n\n" +
		hint("y/enter confirm • n abandon • esc back")
	return panelStyle.Render(body)
}

func (m appModel) detailView() string {
	b := m.detail
	code := b.Code
	if code == "" {
		code = "-"
	}
	seats := strings.Join(b.Seats, ", ")
	if seats == "" {
		seats = "-"
	}
	created := "-"
	if !b.CreatedAt.IsZero() {
		created = b.CreatedAt.Format("2006-01-02 15:04:05")
	}
	rows := []string{
		fmt.Sprintf("Booking ID      : %d", b.Id),
		fmt.Sprintf("Code            : %s", code),
		fmt.Sprintf("Movie           : %s", b.MovieTitle),
		fmt.Sprintf("Tickets         : %d", b.Tickets),
		fmt.Sprintf("Seats           : %s", seats),
		fmt.Sprintf("Price per Ticket: $%.2f", b.UnitPrice()),
		fmt.Sprintf("Total Price     : $%.2f", b.TotalPrice),
		fmt.Sprintf("Customer Name   : %s", b.CustomerName),
		fmt.Sprintf("Email           : %s", b.CustomerEmail),
		fmt.Sprintf("Showtime        : %s", b.Showtime),
		fmt.Sprintf("Status          : %s", renderStatus(b.Status)),
		fmt.Sprintf("Booking Date    : %s", created),
	}
	title := "Booking Details"
	keys := "esc back"
	switch m.mode {
	case modeCancel:
		title = "Cancel This Booking?"
		keys = "y/enter cancel booking • n keep it • esc back"
	case modeAdmin:
		title = "Update Booking"
		keys = "s toggle status • t modify tickets • esc back"
	}
	notice := ""
	if m.notice != "" {
		notice = "\n\n" + noticeStyle.Render(m.notice)
	}
	body := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" +
		strings.Join(rows, "\n") + notice + "\n\n" + hint(keys)
	return panelStyle.Render(body)
}

func (m appModel) reportView() string {
	report := m.svc.LoadReport()
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Ledger Report"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Lines read     : %d\n", report.Lines))
	b.WriteString(fmt.Sprintf("Records decoded: %d\n", report.Decoded))
	b.WriteString(fmt.Sprintf("Lines skipped  : %d\n", report.Skipped))
	b.WriteString(fmt.Sprintf("Seat conflicts : %d\n", m.svc.SeatConflicts()))
	warnings := append([]string{}, report.Warnings...)
	warnings = append(warnings, m.svc.Catalog().Warnings()...)
	if len(warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		limit := len(warnings)
		if limit > 12 {
			limit = 12
		}
		for _, warning := range warnings[:limit] {
			b.WriteString("  • " + warning + "\n")
		}
		if len(warnings) > limit {
			b.WriteString(fmt.Sprintf("  … and %d more\n", len(warnings)-limit))
		}
	}
	b.WriteString("\n")
	b.WriteString(hint("esc back"))
	return panelStyle.Render(b.String())
}

// renderSeatGrid draws the auditorium: column numbers on top, row letters
// on both sides, the screen bar underneath. With selectable set, the
// cursor cell is highlighted and the current attempt's seats show as
// selected.
func (m appModel) renderSeatGrid(selectable bool) string {
	inv := m.svc.Inventory()
	cellWidth := 2
	if inv.Cols() >= 10 {
		cellWidth = 3
	}

	var b strings.Builder
	b.WriteString("   ")
	for c := 0; c < inv.Cols(); c++ {
		b.WriteString(padCell(strconv.Itoa(c+1), cellWidth))
		if c < inv.Cols()-1 {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")

	for r := 0; r < inv.Rows(); r++ {
		label := string(rune('A' + r))
		b.WriteString(fmt.Sprintf("%2s ", label))
		for c := 0; c < inv.Cols(); c++ {
			seat := inv.SeatLabel(r, c)
			token := "[]"
			style := seatAvailableStyle
			switch {
			case selectable && m.attempt.Selected(seat):
				token = "OO"
				style = seatSelectedStyle
			case inv.IsBooked(r, c):
				token = "XX"
				style = seatBookedStyle
			}
			cell := padCell(token, cellWidth)
			if selectable && r == m.cursorRow && c == m.cursorCol {
				cell = seatCursorStyle.Render(cell)
			} else {
				cell = style.Render(cell)
			}
			b.WriteString(cell)
			if c < inv.Cols()-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString(fmt.Sprintf(" %s\n", label))
	}

	gridWidth := inv.Cols()*(cellWidth+1) - 1
	bar := screenBarBlock(gridWidth, "SCREEN")
	b.WriteString("\n")
	b.WriteString("   " + screenBorderStyle.Render(bar.top) + "\n")
	b.WriteString("   " + screenLabelStyle.Render(bar.mid) + "\n")
	b.WriteString("   " + screenBorderStyle.Render(bar.bot) + "\n\n")

	legend := "Legend: [] available • XX booked"
	if selectable {
		legend += " • OO selected"
	}
	counts := fmt.Sprintf("Available: %d of %d", inv.AvailableCount(), inv.Rows()*inv.Cols())
	return b.String() + hint(legend) + "\n" + hint(counts)
}

func renderStatus(status model.BookingStatus) string {
	if status == model.StatusCancelled {
		return errorStyle.Render(string(status))
	}
	return noticeStyle.Render(string(status))
}

// --- list plumbing ---

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateAuthMenu:
		return &m.authList
	case stateMainMenu:
		return &m.menuList
	case stateSelectGenre:
		return &m.genreList
	case stateSelectMovie:
		return &m.movieList
	case stateBookingList:
		return &m.bookingList
	default:
		return nil
	}
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil || !listPtr.FilteringEnabled() {
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
	listPtr.SetFilterText(listPtr.FilterValue() + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	runes := []rune(value)
	if len(runes) <= 1 {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(string(runes[:len(runes)-1]))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.authList.SetSize(m.width, h)
	m.menuList.SetSize(m.width, h)
	m.genreList.SetSize(m.width, h)
	m.movieList.SetSize(m.width, h)
	m.bookingList.SetSize(m.width, h)
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

func newInput(placeholder string, limit int, secret bool) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Width = 40
	if secret {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '•'
	}
	return input
}

// --- items ---

type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return strings.ToLower(i.title) }

type genreItem struct {
	genre model.Genre
}

func (i genreItem) Title() string {
	return fmt.Sprintf("%d. %s", i.genre.MenuNumber, i.genre.Name)
}

func (i genreItem) Description() string { return "Prefix " + i.genre.Prefix }
func (i genreItem) FilterValue() string { return strings.ToLower(i.genre.Name) }

type movieItem struct {
	movie model.Movie
}

func (i movieItem) Title() string { return i.movie.Title }

func (i movieItem) Description() string {
	return fmt.Sprintf("$%.2f • %s", i.movie.Price, i.movie.Showtime)
}

func (i movieItem) FilterValue() string { return strings.ToLower(i.movie.Title) }

type bookingItem struct {
	booking model.Booking
}

func (i bookingItem) Title() string {
	code := i.booking.Code
	if code == "" {
		code = "------"
	}
	return fmt.Sprintf("#%d %s • %s", i.booking.Id, code, i.booking.MovieTitle)
}

func (i bookingItem) Description() string {
	return fmt.Sprintf("%d tickets • $%.2f • %s", i.booking.Tickets, i.booking.TotalPrice, i.booking.Status)
}

func (i bookingItem) FilterValue() string {
	return strings.ToLower(fmt.Sprintf("%d %s %s %s", i.booking.Id, i.booking.Code, i.booking.MovieTitle, i.booking.CustomerEmail))
}

// --- styling ---

var (
	panelStyle = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63")).
			MarginTop(1)
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	noticeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	seatAvailableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatBookedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatSelectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	seatCursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))
	screenBorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Background(lipgloss.Color("236"))
	screenLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))
)

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
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
