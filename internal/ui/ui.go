package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"taskman/internal/config"
	"taskman/internal/export"
	"taskman/internal/task"
	"taskman/internal/view"
)

type uiMode int

const (
	modeList uiMode = iota
	modeAdd
	modeEdit
	modeSearch
	modeConfirmDelete
	modeConfirmClear
	modeConfirmQuit
	modeExport
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	colHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	statsStyle     = lipgloss.NewStyle().Faint(true)
	helpStyle      = lipgloss.NewStyle().Faint(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	highStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mediumStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type Model struct {
	store  *task.Store
	cfg    config.Config
	proj   view.Projection
	filter view.Filter
	search string
	cursor int
	mode   uiMode
	form   *taskForm
	input  textinput.Model
	status string

	pendingDelete string // id awaiting delete confirmation
	pendingExport string // id awaiting an export destination
}

// Run starts the TUI. status seeds the status line, e.g. a load warning.
func Run(store *task.Store, cfg config.Config, status string) error {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	if status == "" {
		status = fmt.Sprintf("Press '%s' to add, '%s' to toggle, '%s' to delete.",
			cfg.Keys.Add, cfg.Keys.Toggle, cfg.Keys.Delete)
	}

	m := Model{
		store:  store,
		cfg:    cfg,
		filter: view.ParseFilter(cfg.DefaultFilter),
		input:  ti,
		status: status,
	}
	m.refresh()

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m *Model) refresh() {
	m.proj = view.Project(m.store.Tasks(), view.Query{
		Filter: m.filter,
		Search: m.search,
		Today:  view.Date(time.Now()),
	})
	m.cursor = clampCursor(m.cursor, len(m.proj.Rows))
}

func (m Model) selectedRow() (view.Row, bool) {
	if len(m.proj.Rows) == 0 {
		return view.Row{}, false
	}
	return m.proj.Rows[clampCursor(m.cursor, len(m.proj.Rows))], true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateFormMode(msg)
		case modeSearch:
			return m.updateSearchMode(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		case modeConfirmClear:
			return m.updateClearConfirm(msg.String())
		case modeConfirmQuit:
			return m.updateQuitConfirm(msg.String())
		case modeExport:
			return m.updateExportMode(msg)
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m.requestQuit()
	case m.cfg.Keys.Down, "down":
		if len(m.proj.Rows) > 0 {
			m.cursor = clampCursor(m.cursor+1, len(m.proj.Rows))
		}
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.proj.Rows))
		}
	case m.cfg.Keys.Add:
		m.form = newTaskForm(m.cfg)
		m.mode = modeAdd
		m.status = "Add task: tab moves between fields, enter on the last field saves"
	case m.cfg.Keys.Edit:
		row, ok := m.selectedRow()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		m.form = editTaskForm(m.cfg, row.Task)
		m.mode = modeEdit
		m.status = "Edit task: tab moves between fields, enter on the last field saves"
	case m.cfg.Keys.Toggle:
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		done := !row.Task.Completed
		if err := m.store.SetCompleted(row.Task.ID, done); err != nil {
			m.status = err.Error()
		} else if done {
			m.status = "Task completed: " + row.Task.Text
		} else {
			m.status = "Task marked pending: " + row.Task.Text
		}
		m.refresh()
	case m.cfg.Keys.Delete:
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.pendingDelete = row.Task.ID
		m.mode = modeConfirmDelete
		m.status = fmt.Sprintf("Delete %q? y/n", row.Task.Text)
	case m.cfg.Keys.ClearCompleted:
		n := m.store.CountCompleted()
		if n == 0 {
			m.status = "No completed tasks to clear."
			return m, nil
		}
		m.mode = modeConfirmClear
		m.status = fmt.Sprintf("Clear %d completed task(s)? y/n", n)
	case m.cfg.Keys.Filter:
		m.filter = m.filter.Next()
		m.status = "Filter: " + m.filter.String()
		m.refresh()
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.input.Placeholder = "Search tasks"
		m.input.SetValue(m.search)
		m.input.Focus()
		m.status = "Search: type to filter, enter to keep, esc to clear"
	case m.cfg.Keys.Export:
		row, ok := m.selectedRow()
		if !ok {
			m.status = "No task selected"
			return m, nil
		}
		m.pendingExport = row.Task.ID
		m.mode = modeExport
		m.input.Placeholder = "Export path (.json for JSON)"
		m.input.SetValue("")
		m.input.Focus()
		m.status = fmt.Sprintf("Export task %s: enter a destination path", row.Task.ID)
	}
	return m, nil
}

func (m Model) requestQuit() (tea.Model, tea.Cmd) {
	if !m.store.Dirty() {
		return m, tea.Quit
	}
	m.mode = modeConfirmQuit
	m.status = "Unsaved changes. Save and quit? y = save, n = quit anyway, esc = stay"
	return m, nil
}

func (m Model) updateFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeList
		m.status = "Cancelled"
		return m, nil
	case "tab":
		m.form.nextField()
		return m, nil
	case "shift+tab":
		m.form.prevField()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		if m.form.field < formFieldCount-1 {
			m.form.nextField()
			return m, nil
		}
		return m.submitForm()
	}

	switch m.form.field {
	case fieldText:
		var cmd tea.Cmd
		m.form.text, cmd = m.form.text.Update(msg)
		return m, cmd
	case fieldPriority:
		switch key {
		case "right", "l", "j", "down", " ":
			m.form.priority = m.form.priority.Next()
		case "left", "h", "k", "up":
			m.form.priority = m.form.priority.Next().Next()
		}
		return m, nil
	default:
		_, cmd := m.form.due.HandleKey(msg)
		return m, cmd
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.form.text.Value())
	due, err := m.form.due.Value()
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	if m.form.editID == "" {
		t, err := m.store.Add(text, m.form.priority, due)
		if err != nil {
			if errors.Is(err, task.ErrEmptyText) || errors.Is(err, task.ErrBadDueDate) {
				m.status = err.Error()
				return m, nil
			}
			// The task was added; only the save failed.
			m.leaveForm(err.Error())
			m.moveCursorTo(t.ID)
			return m, nil
		}
		m.leaveForm("Task added: " + t.Text)
		m.moveCursorTo(t.ID)
		return m, nil
	}

	id := m.form.editID
	if err := m.store.Update(id, text, m.form.priority, due); err != nil {
		if errors.Is(err, task.ErrEmptyText) || errors.Is(err, task.ErrBadDueDate) {
			// Validation failed: nothing changed, keep editing.
			m.status = err.Error()
			return m, nil
		}
		m.leaveForm(err.Error())
		m.moveCursorTo(id)
		return m, nil
	}
	m.leaveForm("Task updated")
	m.moveCursorTo(id)
	return m, nil
}

func (m *Model) leaveForm(status string) {
	m.form = nil
	m.mode = modeList
	m.status = status
	m.refresh()
}

func (m *Model) moveCursorTo(id string) {
	for i, row := range m.proj.Rows {
		if row.Task.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Confirm, "enter":
		m.mode = modeList
		m.input.Blur()
		m.status = searchStatus(m.search)
		return m, nil
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.search = ""
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Search cleared"
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.search = m.input.Value()
	m.refresh()
	return m, cmd
}

func searchStatus(search string) string {
	if strings.TrimSpace(search) == "" {
		return "Search cleared"
	}
	return "Searching: " + search
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		id := m.pendingDelete
		m.pendingDelete = ""
		m.mode = modeList
		if err := m.store.SoftDelete(id); err != nil {
			m.status = err.Error()
		} else {
			m.status = "Task deleted"
		}
		m.refresh()
		return m, nil
	case "n", "N", m.cfg.Keys.Cancel, "esc":
		m.pendingDelete = ""
		m.mode = modeList
		m.status = "Delete cancelled"
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateClearConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.mode = modeList
		n, err := m.store.ClearCompleted()
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("Cleared %d completed tasks", n)
		}
		m.refresh()
		return m, nil
	case "n", "N", m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.status = "Clear cancelled"
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateQuitConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		if err := m.store.Flush(); err != nil {
			m.mode = modeList
			m.status = err.Error()
			return m, nil
		}
		return m, tea.Quit
	case "n", "N":
		return m, tea.Quit
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.status = "Quit cancelled"
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateExportMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Cancel, "esc":
		m.pendingExport = ""
		m.mode = modeList
		m.input.Blur()
		m.status = "Export cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			m.status = "Enter a destination path, or esc to cancel"
			return m, nil
		}
		id := m.pendingExport
		m.pendingExport = ""
		m.mode = modeList
		m.input.Blur()
		t, ok := m.store.Find(id)
		if !ok {
			m.status = "Task no longer exists"
			return m, nil
		}
		if err := export.ToFile(path, *t); err != nil {
			m.status = "Export failed: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Exported task %s to %s", id, path)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("To-Do List Manager"))
	b.WriteString("\n")
	b.WriteString(statsStyle.Render(fmt.Sprintf("Filter: %s%s", m.filter, searchSuffix(m.search))))
	b.WriteString("\n\n")

	if len(m.proj.Rows) == 0 {
		b.WriteString(fmt.Sprintf("No tasks to show. Press '%s' to add one.", m.cfg.Keys.Add))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTable())
	}

	b.WriteString("\n")
	b.WriteString(statsStyle.Render(fmt.Sprintf("Total: %d | Pending: %d | Completed: %d",
		m.proj.Total, m.proj.Pending, m.proj.Completed)))
	b.WriteString("\n---\n")

	switch m.mode {
	case modeAdd, modeEdit:
		b.WriteString(m.renderForm())
	case modeSearch, modeExport:
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.renderHelp()))
	return b.String()
}

func searchSuffix(search string) string {
	if strings.TrimSpace(search) == "" {
		return ""
	}
	return fmt.Sprintf(" | Search: %q", search)
}

var tableWidths = []int{4, 8, 36, 12, 18, 8, 10}

func tableCell(s string, col int) string {
	w := tableWidths[col]
	return runewidth.FillRight(runewidth.Truncate(s, w, "..."), w)
}

func (m Model) renderTable() string {
	var b strings.Builder

	headers := []string{"ID", "Prio", "Task", "Due", "Days Left", "Status", "Created"}
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = tableCell(h, i)
	}
	b.WriteString("  ")
	b.WriteString(colHeaderStyle.Render(strings.Join(cells, " ")))
	b.WriteString("\n")

	for i, row := range m.proj.Rows {
		cursor := "  "
		if m.cursor == i && m.mode == modeList {
			cursor = "> "
		}

		cols := []string{
			row.Task.ID,
			string(row.Task.Priority),
			row.Task.Text,
			row.Task.Due(),
			row.DaysLeft,
			row.Status,
			row.CreatedDay,
		}
		for c := range cols {
			cols[c] = tableCell(cols[c], c)
		}
		b.WriteString(cursor)
		b.WriteString(rowStyle(row).Render(strings.Join(cols, " ")))
		b.WriteString("\n")
	}
	return b.String()
}

func rowStyle(r view.Row) lipgloss.Style {
	switch {
	case r.HasTag(view.TagCompleted):
		return completedStyle
	case r.HasTag(view.TagOverdue):
		return overdueStyle
	case r.HasTag(view.TagHighPriority):
		return highStyle
	case r.HasTag(view.TagMediumPriority):
		return mediumStyle
	default:
		return lowStyle
	}
}

func (m Model) renderForm() string {
	var b strings.Builder
	title := "Add task"
	if m.form.editID != "" {
		title = "Edit task " + m.form.editID
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	fields := []struct {
		field formField
		value string
		hint  string
	}{
		{fieldText, m.form.text.View(), ""},
		{fieldPriority, string(m.form.priority), "space or arrows to change"},
		{fieldDue, m.form.due.View(), m.form.due.Hint()},
	}
	for _, f := range fields {
		prefix := "  "
		if m.form.field == f.field {
			prefix = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-9s: %s", prefix, f.field.label(), f.value))
		if f.hint != "" && m.form.field == f.field {
			b.WriteString(helpStyle.Render("  (" + f.hint + ")"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelp() string {
	k := m.cfg.Keys
	switch m.mode {
	case modeAdd, modeEdit:
		return "tab next field • enter save • esc cancel"
	case modeSearch:
		return "enter keep search • esc clear"
	case modeExport:
		return "enter export • esc cancel"
	case modeConfirmDelete, modeConfirmClear, modeConfirmQuit:
		return "y confirm • n decline • esc stay"
	default:
		return fmt.Sprintf("%s/%s move • %s add • %s edit • %s toggle • %s delete • %s clear done • %s filter • %s search • %s export • %s quit",
			k.Up, k.Down, k.Add, k.Edit, k.Toggle, k.Delete, k.ClearCompleted, k.Filter, k.Search, k.Export, k.Quit)
	}
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
