// Source: https://raw.githubusercontent.com/charmbracelet/glow/d0737b41af48960a341e24327d9d5acb5b7d92aa/ui/ui.go
package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/byxorna/roster/pkg/db"
	"github.com/byxorna/roster/pkg/logger"
	"github.com/byxorna/roster/pkg/store"
	"github.com/byxorna/roster/pkg/text"
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/byxorna/roster/pkg/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	statusMessageTimeout = time.Second * 3 // how long to show status messages like "fetch failed"
)

// state is the top-level application state.
type state int

const (
	stateShowTable state = iota
	stateShowUser
	stateNotFound
)

func (s state) String() string {
	return map[state]string{
		stateShowTable: "showing user table",
		stateShowUser:  "showing user posts",
		stateNotFound:  "showing not found",
	}[s]
}

// Common stuff we'll need to access in all models.
type commonModel struct {
	width  int
	height int
	now    func() time.Time
}

// statusMessageType adds some context to the status message being sent.
type statusMessageType int

// Types of status messages.
const (
	normalStatusMessage statusMessageType = iota
	errorStatusMessage
)

// statusMessage is an ephemeral note displayed in the UI.
type statusMessage struct {
	status  statusMessageType
	message string
}

func (s statusMessage) render(width int) string {
	style := ui.StatusBarMessageStyle
	if s.status == errorStatusMessage {
		style = ui.StatusBarErrorStyle
	}
	return style.Width(width).Render(" " + s.message)
}

type Model struct {
	ctx     context.Context
	backend db.Backend
	log     logger.Logger
	store   *store.Store

	common *commonModel
	state  state
	keys   keyMap

	// busy counts fetches in flight; the spinner shows while it is non-zero
	busy    int
	spinner spinner.Model

	table tableModel
	pager pagerModel

	// what the not found view is about
	missing string

	postsSeq    uint64
	lastFetched time.Time

	statusMessage statusMessage
	statusSeq     int
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(refreshCmd(), waitForChangesCmd(m.ctx, m.backend))
}

// showBusy marks the start of a fetch. The returned command starts the
// spinner if it was not already running.
func (m *Model) showBusy() tea.Cmd {
	m.busy++
	if m.busy == 1 {
		return m.spinner.Tick
	}
	return nil
}

// hideBusy marks the end of a fetch.
func (m *Model) hideBusy() {
	if m.busy > 0 {
		m.busy--
	}
}

func (m Model) Busy() bool { return m.busy > 0 }

func (m *Model) fetchUsers() tea.Cmd {
	ticket := m.store.BeginFetch()
	m.log.Debug("fetching users", "ticket", ticket)
	return tea.Batch(m.showBusy(), fetchUsersCmd(m.ctx, m.backend, ticket))
}

func (m *Model) fetchPosts() tea.Cmd {
	u, ok := m.table.selected()
	if !ok {
		return nil
	}
	m.postsSeq++
	m.log.Debug("fetching posts", "user", u.ID)
	return tea.Batch(m.showBusy(), fetchPostsCmd(m.ctx, m.backend, m.postsSeq, u))
}

func (m *Model) showStatusMessage(t statusMessageType, s string) tea.Cmd {
	m.statusSeq++
	m.statusMessage = statusMessage{status: t, message: s}
	return waitForStatusMessageTimeout(m.statusSeq)
}

// navigateTable returns to the user table, dropping any posts fetch in flight.
func (m *Model) navigateTable() {
	m.state = stateShowTable
	m.postsSeq++
	m.missing = ""
	m.pager.unload()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	// Window size is received when starting up and on every resize
	case tea.WindowSizeMsg:
		m.common.width = msg.Width
		m.common.height = msg.Height
		m.table.setSize(msg.Width, msg.Height)
		m.pager.setSize(msg.Width, msg.Height)
		if m.state == stateShowUser {
			return m, m.pager.render()
		}
		return m, nil

	case tea.KeyMsg:
		// Ctrl+C always quits no matter where in the application you are.
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		switch m.state {
		case stateShowTable:
			// pass through all keys if we're editing the search
			if m.table.isSearching() {
				break
			}
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Reload):
				cmd = m.fetchUsers()
				return m, cmd
			case key.Matches(msg, m.keys.Open):
				cmd = m.fetchPosts()
				return m, cmd
			}

		case stateShowUser, stateNotFound:
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Back), msg.String() == "left", msg.String() == "h", msg.Type == tea.KeyBackspace:
				m.navigateTable()
				return m, nil
			}
			if m.state == stateNotFound {
				return m, nil
			}
		}

	case refreshMsg:
		cmd = m.fetchUsers()
		return m, cmd

	case backendChangedMsg:
		m.log.Info("backend data changed, reloading", "source", m.backend.StoragePath())
		cmd = tea.Batch(
			m.showStatusMessage(normalStatusMessage, "data changed, reloading"),
			m.fetchUsers(),
			waitForChangesCmd(m.ctx, m.backend),
		)
		return m, cmd

	case usersFetchedMsg:
		m.hideBusy()
		if msg.err != nil {
			// fetch failures stay out of the UI; the store keeps what it had
			m.log.Error("unable to fetch users", "err", msg.err, "status", m.backend.Status())
			return m, nil
		}
		if len(msg.users) == 0 {
			m.log.Info("no users returned")
			return m, nil
		}
		if !m.store.Replace(msg.ticket, msg.users) {
			m.log.Debug("dropping stale users", "ticket", msg.ticket)
			return m, nil
		}
		m.lastFetched = m.common.now()
		m.table.syncRows()
		m.log.Info("loaded users", "count", len(msg.users))
		return m, nil

	case postsFetchedMsg:
		m.hideBusy()
		if msg.seq != m.postsSeq {
			m.log.Debug("dropping stale posts", "user", msg.user.ID)
			return m, nil
		}
		if msg.err != nil {
			m.log.Error("unable to fetch posts", "user", msg.user.ID, "err", msg.err, "status", m.backend.Status())
			return m, nil
		}
		if len(msg.posts) == 0 {
			m.log.Info("no posts found", "user", msg.user.ID)
			m.state = stateNotFound
			m.missing = msg.user.Name
			return m, nil
		}
		m.state = stateShowUser
		m.pager.load(msg.user, msg.posts)
		return m, m.pager.render()

	case searchDebounceMsg:
		// the search may settle after we have navigated away from the table
		m.table, cmd = m.table.update(msg)
		return m, cmd

	case contentRenderedMsg:
		m.pager, cmd = m.pager.update(msg)
		return m, cmd

	case spinner.TickMsg:
		if m.busy > 0 {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case statusMessageTimeoutMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = statusMessage{}
		}
		return m, nil

	case errMsg:
		m.log.Error("error", "err", msg.err)
		cmd = m.showStatusMessage(errorStatusMessage, msg.Error())
		return m, cmd
	}

	// Process children
	switch m.state {
	case stateShowTable:
		m.table, cmd = m.table.update(msg)
		cmds = append(cmds, cmd)

	case stateShowUser:
		m.pager, cmd = m.pager.update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	switch m.state {
	case stateShowUser:
		return m.pager.View()
	case stateNotFound:
		return m.notFoundView()
	default:
		var busy string
		if m.Busy() {
			busy = m.spinner.View()
		}
		var b strings.Builder
		fmt.Fprintln(&b, m.table.view(busy))
		fmt.Fprintln(&b, m.statusBarView())
		fmt.Fprint(&b, m.table.helpView())
		return b.String()
	}
}

func (m Model) statusBarView() string {
	if m.statusMessage.message != "" {
		return m.statusMessage.render(m.common.width)
	}

	parts := []string{
		fmt.Sprintf("%d of %d users", m.store.FilteredLen(), m.store.Len()),
		sortSummary(m.store.Rules()),
	}
	if q := m.store.Query(); q != "" {
		parts = append(parts, fmt.Sprintf("%q", q))
	}
	if m.Busy() {
		parts = append(parts, text.EmojiBusy+" fetching")
	} else {
		updated := "updated " + text.RelativeTime(m.lastFetched, m.common.now())
		if m.backend.Status() == v1.StatusError {
			// the last fetch failed, so what is shown may be out of date
			updated += " (stale)"
		}
		parts = append(parts, updated)
	}

	s := " " + strings.Join(parts, " · ")
	if m.common.width > 0 {
		s = text.TruncateWithTail(s, uint(m.common.width), text.Ellipsis)
		return ui.StatusBarStyle.Width(m.common.width).Render(s)
	}
	return ui.StatusBarStyle.Render(s)
}

func (m Model) notFoundView() string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		ui.RedFg.Render(text.EmojiNotFound+" Not found"),
		"",
		ui.GrayFg.Render(fmt.Sprintf("%s has no posts", m.missing)),
		"",
		ui.DimNormalFg.Render("esc to go back"),
	)
	if m.common.width == 0 || m.common.height == 0 {
		return msg
	}
	return lipgloss.Place(m.common.width, m.common.height, lipgloss.Center, lipgloss.Center, msg)
}
