package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/byxorna/roster/pkg/debounce"
	"github.com/byxorna/roster/pkg/query"
	"github.com/byxorna/roster/pkg/store"
	"github.com/byxorna/roster/pkg/text"
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/byxorna/roster/pkg/ui"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	runewidth "github.com/mattn/go-runewidth"
)

const (
	tableViewTopPadding = 2 // logo/search line and gap
	minColumnWidth      = 4
	cellPadding         = 2 // left and right padding of each cell
	searchCharLimit     = 64
)

// tableColumn describes one column of the user table.
type tableColumn struct {
	title string
	// sortColumn is the rule column this table column sorts by, if any
	sortColumn string
	value      func(v1.User) string
}

var tableColumns = []tableColumn{
	{title: "ID", value: func(u v1.User) string { return strconv.Itoa(int(u.ID)) }},
	{title: "Name", sortColumn: v1.ColumnName, value: func(u v1.User) string { return u.Name }},
	{title: "Email", sortColumn: v1.ColumnEmail, value: func(u v1.User) string { return u.Email }},
	{title: "Address", sortColumn: v1.ColumnCity, value: func(u v1.User) string { return u.Address.String() }},
	{title: "Company", sortColumn: v1.ColumnCompany, value: func(u v1.User) string { return u.Company }},
}

type tableModel struct {
	common *commonModel
	keys   keyMap
	store  *store.Store

	table  table.Model
	search textinput.Model
	help   help.Model

	debouncer debounce.Debouncer
	// most recently scheduled search; the only one that will be honored
	pendingSearch debounce.Token

	// Users currently shown, in row order. Rebuilt from the store whenever it
	// changes.
	visible []v1.User
}

func newTableModel(common *commonModel, keys keyMap, st *store.Store, interval time.Duration) tableModel {
	ti := textinput.New()
	ti.Prompt = text.EmojiSearch + " "
	ti.Placeholder = "Search user name"
	ti.CharLimit = searchCharLimit

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(ui.InstaMagenta).Bold(true)
	styles.Selected = ui.SelectedRowStyle

	t := table.New(
		table.WithFocused(true),
		table.WithStyles(styles),
	)

	m := tableModel{
		common:    common,
		keys:      keys,
		store:     st,
		table:     t,
		search:    ti,
		help:      help.New(),
		debouncer: debounce.New(interval),
	}
	m.syncRows()
	return m
}

func (m *tableModel) setSize(width, height int) {
	m.search.Width = width - runewidth.StringWidth(m.search.Prompt) - 12
	m.help.Width = width
	m.table.SetHeight(max(3, height-tableViewTopPadding-statusBarHeight-m.helpHeight()))
	m.syncRows()
}

func (m tableModel) helpHeight() int {
	return strings.Count(m.help.View(m.keys), "\n") + 1
}

func (m tableModel) isSearching() bool {
	return m.search.Focused()
}

// syncRows rebuilds the rows and column headers from the store.
func (m *tableModel) syncRows() {
	m.visible = m.store.Filtered()

	rows := make([]table.Row, len(m.visible))
	for i, u := range m.visible {
		row := make(table.Row, len(tableColumns))
		for j, c := range tableColumns {
			row[j] = c.value(u)
		}
		rows[i] = row
	}

	m.table.SetColumns(m.columns(rows))
	m.table.SetRows(rows)
}

func (m tableModel) columns(rows []table.Row) []table.Column {
	rules := m.store.Rules()

	titles := make([]string, len(tableColumns))
	natural := make([]int, len(tableColumns))
	for i, c := range tableColumns {
		titles[i] = c.title
		if r, ok := query.RuleFor(rules, c.sortColumn); ok {
			titles[i] = fmt.Sprintf("%s %s%d", c.title, r.Direction.Arrow(), r.Priority)
		}
		natural[i] = runewidth.StringWidth(titles[i])
		for _, row := range rows {
			natural[i] = max(natural[i], runewidth.StringWidth(row[i]))
		}
	}

	widths := natural
	if m.common.width > 0 {
		widths = fitWidths(natural, m.common.width-cellPadding*len(natural))
	}

	cols := make([]table.Column, len(tableColumns))
	for i := range tableColumns {
		cols[i] = table.Column{Title: titles[i], Width: widths[i]}
	}
	return cols
}

// fitWidths shrinks the widest columns one cell at a time until the total fits
// in available, never going below minColumnWidth.
func fitWidths(natural []int, available int) []int {
	out := append([]int(nil), natural...)
	total := 0
	for _, w := range out {
		total += w
	}
	for total > available {
		widest := 0
		for i, w := range out {
			if w > out[widest] {
				widest = i
			}
		}
		if out[widest] <= minColumnWidth {
			break
		}
		out[widest]--
		total--
	}
	return out
}

// selected returns the user under the cursor.
func (m tableModel) selected() (v1.User, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return v1.User{}, false
	}
	return m.visible[i], true
}

// scheduleSearch records a keystroke and returns the timer command for it.
func (m *tableModel) scheduleSearch(now time.Time) tea.Cmd {
	m.pendingSearch = m.debouncer.Touch(now)
	return searchDebounceCmd(m.debouncer.Interval(), m.pendingSearch)
}

func (m tableModel) update(msg tea.Msg) (tableModel, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case searchDebounceMsg:
		if m.debouncer.Fire(msg.token) {
			m.store.Search(m.search.Value())
			m.syncRows()
		}
		return m, nil

	case tea.KeyMsg:
		if m.isSearching() {
			switch msg.Type {
			case tea.KeyEsc, tea.KeyEnter:
				m.search.Blur()
				m.table.Focus()
				return m, nil
			}

			before := m.search.Value()
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
			if m.search.Value() != before {
				cmds = append(cmds, m.scheduleSearch(m.common.now()))
			}
			return m, tea.Batch(cmds...)
		}

		switch {
		case key.Matches(msg, m.keys.Search):
			m.table.Blur()
			cmd = m.search.Focus()
			return m, cmd

		case key.Matches(msg, m.keys.Back):
			// clear an applied search
			if m.search.Value() != "" || m.store.Query() != "" {
				m.search.Reset()
				m.debouncer.Cancel()
				m.store.Search("")
				m.syncRows()
			}
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.setSize(m.common.width, m.common.height)
			return m, nil
		}

		if column, ok := m.keys.sortColumn(msg); ok {
			// sort columns are fixed, so this can only fail on a programming error
			if err := m.store.ToggleSort(column); err != nil {
				return m, func() tea.Msg { return errMsg{err} }
			}
			m.syncRows()
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m tableModel) headerView(busy string) string {
	logo := ui.LogoStyle.Render("roster")
	return logo + " " + m.search.View() + " " + busy
}

func (m tableModel) view(busy string) string {
	var b strings.Builder
	fmt.Fprintln(&b, m.headerView(busy))
	fmt.Fprintln(&b)
	fmt.Fprint(&b, m.table.View())
	return b.String()
}

func (m tableModel) helpView() string {
	return m.help.View(m.keys)
}

// sortSummary describes the active sort rules, dominant key first.
func sortSummary(rules []v1.SortRule) string {
	if len(rules) == 0 {
		return "unsorted"
	}
	ordered := query.ByPriority(rules)
	slices.Reverse(ordered)
	parts := make([]string, len(ordered))
	for i, r := range ordered {
		parts[i] = fmt.Sprintf("%s%s", r.Column, r.Direction.Arrow())
	}
	return "sort " + strings.Join(parts, " ")
}
