package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/clientms/internal/app"
	"github.com/andy/clientms/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeSearch clientMode = iota
	clientModeResults
	clientModeForm
	clientModeConfirmDelete
)

// form field indices
const (
	fieldFirst = iota
	fieldLast
	fieldAddress
	fieldPostal
	fieldPhone
	fieldType
	fieldCount
)

var formFields = [fieldCount]struct {
	label       string
	placeholder string
	limit       int
}{
	fieldFirst:   {"First Name:", "Karim", 20},
	fieldLast:    {"Last Name:", "Ahmed", 20},
	fieldAddress: {"Address:", "123 Main Street NW", 50},
	fieldPostal:  {"Postal Code:", "T2N 1N4", 7},
	fieldPhone:   {"Phone:", "403-555-0199", 13},
	fieldType:    {"Client Type (C/R):", "R", 1},
}

// ClientsModel is the search panel, the result list and the client form
type ClientsModel struct {
	app  *app.App
	mode clientMode

	// Search panel
	field      domain.SearchField
	query      textinput.Model
	lastSearch *searchRequest

	results   []*domain.Client
	cursor    int
	loading   bool
	submitted bool // a search panel query is in flight

	// Status line: one message at a time
	statusMsg string
	err       error

	// Form state
	fields        []textinput.Model
	fieldFocus    int
	editingID     int64 // 0 for new client
	returnMode    clientMode
	autoNewClient bool // open new client form after data loads
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) *ClientsModel {
	q := textinput.New()
	q.Placeholder = "search"
	q.CharLimit = 20
	q.Width = 24
	q.Focus()

	return &ClientsModel{
		app:     a,
		mode:    clientModeSearch,
		field:   domain.SearchByLastName,
		query:   q,
		loading: true,
	}
}

// IsCapturingInput returns true when a text input has focus
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode == clientModeSearch || m.mode == clientModeForm
}

func (m *ClientsModel) Init() tea.Cmd {
	return tea.Batch(m.runSearch(nil), textinput.Blink)
}

// runSearch loads the result list for req, or every client when req is nil
func (m *ClientsModel) runSearch(req *searchRequest) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var (
			clients []*domain.Client
			err     error
		)
		if req == nil {
			clients, err = m.app.ClientRepo.List(ctx)
		} else {
			clients, err = m.app.SearchService.Search(ctx, req.field, req.query)
		}
		return searchResultsMsg{req: req, clients: clients, err: err}
	}
}

func (m *ClientsModel) setStatus(s string) {
	m.statusMsg = s
	m.err = nil
}

func (m *ClientsModel) setError(err error) {
	m.statusMsg = ""
	m.err = err
}

func (m *ClientsModel) selected() *domain.Client {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return nil
	}
	return m.results[m.cursor]
}

func (m *ClientsModel) focusSearch() tea.Cmd {
	m.mode = clientModeSearch
	return m.query.Focus()
}

func (m *ClientsModel) focusResults() {
	m.query.Blur()
	m.mode = clientModeResults
}

func (m *ClientsModel) initForm(editing *domain.Client) tea.Cmd {
	m.returnMode = m.mode
	if m.returnMode == clientModeForm || m.returnMode == clientModeConfirmDelete {
		m.returnMode = clientModeResults
	}
	m.query.Blur()
	m.mode = clientModeForm

	m.fields = make([]textinput.Model, fieldCount)
	for i, f := range formFields {
		m.fields[i] = textinput.New()
		m.fields[i].Placeholder = f.placeholder
		m.fields[i].CharLimit = f.limit
		m.fields[i].Width = f.limit + 4
	}

	// Pre-fill for editing
	if editing != nil {
		m.fields[fieldFirst].SetValue(editing.FirstName)
		m.fields[fieldLast].SetValue(editing.LastName)
		m.fields[fieldAddress].SetValue(editing.Address)
		m.fields[fieldPostal].SetValue(editing.PostalCode)
		m.fields[fieldPhone].SetValue(editing.PhoneNumber)
		m.fields[fieldType].SetValue(string(editing.Type))
		m.editingID = editing.ID
	} else {
		m.editingID = 0
	}

	m.err = nil
	m.fieldFocus = fieldFirst
	return m.fields[fieldFirst].Focus()
}

func (m *ClientsModel) closeForm() tea.Cmd {
	m.fields = nil
	if m.returnMode == clientModeSearch {
		return m.focusSearch()
	}
	m.mode = clientModeResults
	return nil
}

func (m *ClientsModel) saveClient() tea.Cmd {
	client := domain.NewClient(
		m.fields[fieldFirst].Value(),
		m.fields[fieldLast].Value(),
		m.fields[fieldAddress].Value(),
		m.fields[fieldPostal].Value(),
		m.fields[fieldPhone].Value(),
		m.fields[fieldType].Value(),
	)
	id := m.editingID

	return func() tea.Msg {
		ctx := context.Background()

		if id > 0 {
			err := m.app.ClientRepo.Update(ctx, id, client)
			return clientSavedMsg{id: id, err: err}
		}

		newID, err := m.app.ClientRepo.Create(ctx, client)
		return clientSavedMsg{id: newID, created: true, err: err}
	}
}

func (m *ClientsModel) deleteClient(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.app.ClientRepo.Delete(context.Background(), id)
		return clientDeletedMsg{id: id, err: err}
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle OpenNewClientFormMsg at the top so it works regardless of mode
	if _, ok := msg.(OpenNewClientFormMsg); ok {
		if m.loading {
			// Data hasn't loaded yet; set flag to auto-open form when it does
			m.autoNewClient = true
			return m, nil
		}
		return m, m.initForm(nil)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.runSearch(m.lastSearch)

	case searchResultsMsg:
		return m, m.handleResults(msg)

	case clientSavedMsg:
		if msg.err != nil {
			// Keep the form open so the user can fix the field
			m.setError(msg.err)
			return m, nil
		}
		verb := "updated"
		if msg.created {
			verb = "added"
		}
		m.setStatus(fmt.Sprintf("Client %s (ID: %d)", verb, msg.id))
		cmd := m.closeForm()
		m.loading = true
		return m, tea.Batch(cmd, m.runSearch(m.lastSearch))

	case clientDeletedMsg:
		m.mode = clientModeResults
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.results = removeResult(m.results, msg.id)
		if m.cursor >= len(m.results) {
			m.cursor = max(0, len(m.results)-1)
		}
		m.setStatus(fmt.Sprintf("Client deleted (ID: %d)", msg.id))
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case clientModeForm:
			return m.updateForm(msg)
		case clientModeConfirmDelete:
			return m.updateConfirm(msg)
		case clientModeSearch:
			return m.updateSearch(msg)
		default:
			return m.updateResults(msg)
		}
	}

	// Non-key messages (cursor blink) go to whichever input has focus
	var cmd tea.Cmd
	switch m.mode {
	case clientModeSearch:
		m.query, cmd = m.query.Update(msg)
	case clientModeForm:
		m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	}
	return m, cmd
}

func (m *ClientsModel) handleResults(msg searchResultsMsg) tea.Cmd {
	m.loading = false
	submitted := m.submitted
	m.submitted = false

	if msg.err != nil {
		// A rejected query leaves the previous results in place
		m.setError(msg.err)
		return nil
	}

	m.lastSearch = msg.req
	m.results = msg.clients
	if m.cursor >= len(m.results) {
		m.cursor = max(0, len(m.results)-1)
	}

	// Auto-open new client form on first run
	if m.autoNewClient {
		m.autoNewClient = false
		return m.initForm(nil)
	}

	if submitted {
		m.cursor = 0
		if len(m.results) == 0 {
			m.setStatus("No clients found")
			return nil
		}
		m.setStatus(fmt.Sprintf("%s found", pluralClients(len(m.results))))
		m.focusResults()
	}
	return nil
}

func (m *ClientsModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.NextField):
		m.field = nextSearchField(m.field, 1)
		return m, nil

	case key.Matches(msg, DefaultKeyMap.PrevField):
		m.field = nextSearchField(m.field, -1)
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Select):
		m.loading = true
		m.submitted = true
		return m, m.runSearch(&searchRequest{field: m.field, query: m.query.Value()})

	case key.Matches(msg, DefaultKeyMap.Back):
		if m.query.Value() != "" || m.lastSearch != nil {
			return m, m.clearSearch()
		}
		if len(m.results) > 0 {
			m.focusResults()
		}
		return m, nil

	case msg.String() == "down":
		if len(m.results) > 0 {
			m.focusResults()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return m, cmd
}

// clearSearch empties the query and goes back to listing every client
func (m *ClientsModel) clearSearch() tea.Cmd {
	m.query.Reset()
	m.lastSearch = nil
	m.cursor = 0
	m.setStatus("")
	m.loading = true
	return m.runSearch(nil)
}

func (m *ClientsModel) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	m.setStatus("")

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			return m, m.focusSearch()
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.Search):
		return m, m.focusSearch()
	case key.Matches(msg, DefaultKeyMap.ClearQuery), key.Matches(msg, DefaultKeyMap.Back):
		cmd := m.clearSearch()
		return m, tea.Batch(cmd, m.focusSearch())
	case key.Matches(msg, DefaultKeyMap.New):
		return m, m.initForm(nil)
	case key.Matches(msg, DefaultKeyMap.Select):
		// Enter key opens edit form for selected client
		if c := m.selected(); c != nil {
			return m, m.initForm(c)
		}
	case key.Matches(msg, DefaultKeyMap.Delete):
		if m.selected() != nil {
			m.mode = clientModeConfirmDelete
		}
	}

	return m, nil
}

func (m *ClientsModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.selected()
	if c == nil || !key.Matches(msg, DefaultKeyMap.Confirm) {
		m.mode = clientModeResults
		m.setStatus("Delete cancelled")
		return m, nil
	}
	return m, m.deleteClient(c.ID)
}

func (m *ClientsModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel form
		m.err = nil
		return m, m.closeForm()

	case "tab", "down":
		// Next field
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + 1) % fieldCount
		return m, m.fields[m.fieldFocus].Focus()

	case "shift+tab", "up":
		// Previous field
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus - 1 + fieldCount) % fieldCount
		return m, m.fields[m.fieldFocus].Focus()

	case "enter":
		// If on last field or explicit submit, save
		if m.fieldFocus == fieldCount-1 {
			return m, m.saveClient()
		}
		// Otherwise advance to next field
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus++
		return m, m.fields[m.fieldFocus].Focus()

	case "ctrl+s":
		// Save from any field
		return m, m.saveClient()
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) View() string {
	if m.mode == clientModeForm {
		return m.viewForm()
	}

	var s strings.Builder
	s.WriteString(m.viewSearchPanel())
	s.WriteString("\n\n")
	s.WriteString(m.viewResults())
	s.WriteString("\n")
	s.WriteString(m.viewStatus())
	s.WriteString("\n")
	s.WriteString(m.viewHelp())
	return s.String()
}

func (m *ClientsModel) viewSearchPanel() string {
	var selectors []string
	for _, f := range domain.SearchFields {
		label := f.Label()
		if f == m.field {
			selectors = append(selectors, selectorStyle.Render("["+label+"]"))
		} else {
			selectors = append(selectors, subtitleStyle.Render(" "+label+" "))
		}
	}

	title := titleStyle.Render("Search")
	if m.mode != clientModeSearch {
		title = subtitleStyle.Render("Search")
	}

	body := fmt.Sprintf("%s  %s\n%s", title, strings.Join(selectors, " "), m.query.View())
	return panelStyle.Render(body)
}

func (m *ClientsModel) viewResults() string {
	if m.loading && len(m.results) == 0 {
		return "Loading clients..."
	}

	header := "All Clients"
	if m.lastSearch != nil {
		header = fmt.Sprintf("Results for %s = %q", m.lastSearch.field.Label(), m.lastSearch.query)
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(header) + "\n\n")

	if len(m.results) == 0 {
		s.WriteString(subtitleStyle.Render("  No clients. Press 'n' to add one.") + "\n")
		return s.String()
	}

	for i, c := range m.results {
		s.WriteString(m.renderClient(i, c) + "\n")
	}

	return s.String()
}

func (m *ClientsModel) renderClient(index int, c *domain.Client) string {
	selected := index == m.cursor && m.mode != clientModeSearch

	indicator := "  "
	if selected {
		indicator = "> "
	}

	line := fmt.Sprintf("%s%-5d %-20s %-20s %s", indicator, c.ID,
		truncateStr(c.FirstName, 20), truncateStr(c.LastName, 20), c.Type)
	if selected {
		detail := fmt.Sprintf("\n        %s, %s  %s  %s", c.Address, c.PostalCode, c.PhoneNumber, c.Type.Label())
		return selectedStyle.Render(line) + subtitleStyle.Render(detail)
	}
	return line
}

func (m *ClientsModel) viewStatus() string {
	switch {
	case m.mode == clientModeConfirmDelete && m.selected() != nil:
		return confirmStyle.Render(fmt.Sprintf("Delete client %s? [y/N]", m.selected()))
	case m.err != nil:
		return errorStyle.Render("Error: " + m.err.Error())
	case m.statusMsg != "":
		return statusStyle.Render(m.statusMsg)
	}
	return ""
}

func (m *ClientsModel) viewHelp() string {
	if m.mode == clientModeSearch {
		return helpStyle.Render("  tab: change field  enter: search  esc: clear search  ↓: results  ctrl+c: quit")
	}
	return helpStyle.Render("  j/k: navigate  enter: edit  n: new  d: delete  /: search  c: clear search")
}

func (m *ClientsModel) viewForm() string {
	var s strings.Builder

	switch {
	case m.editingID > 0:
		s.WriteString(titleStyle.Render(fmt.Sprintf("Edit Client %d", m.editingID)) + "\n\n")
	case len(m.results) == 0 && m.lastSearch == nil:
		s.WriteString(titleStyle.Render("Welcome to clientms!") + "\n")
		s.WriteString(subtitleStyle.Render("  Add your first client to get started.") + "\n\n")
	default:
		s.WriteString(titleStyle.Render("New Client") + "\n\n")
	}

	for i, f := range formFields {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		fmt.Fprintf(&s, "%s%s\n  %s\n\n", indicator, labelStyle.Render(f.label), m.fields[i].View())
	}

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	}

	s.WriteString(helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel"))

	return s.String()
}
