// Pager is lifted from https://raw.githubusercontent.com/charmbracelet/glow/d0737b41af48960a341e24327d9d5acb5b7d92aa/ui/pager.go
// Thank you for such an awesome design!
package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/byxorna/roster/pkg/text"
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/byxorna/roster/pkg/ui"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const statusBarHeight = 1

type pagerModel struct {
	common       *commonModel
	viewport     viewport.Model
	glamourStyle string

	// Current user and posts, sans-glamour rendering. We cache them here so we
	// can re-render on resize.
	user  v1.User
	posts []v1.Post
}

func newPagerModel(common *commonModel, glamourStyle string) pagerModel {
	vp := viewport.New(0, 0)
	vp.YPosition = 0

	return pagerModel{
		common:       common,
		viewport:     vp,
		glamourStyle: glamourStyle,
	}
}

func (m *pagerModel) setSize(w, h int) {
	m.viewport.Width = w
	m.viewport.Height = h - statusBarHeight
}

func (m *pagerModel) load(u v1.User, posts []v1.Post) {
	m.user = u
	m.posts = posts
	m.viewport.SetContent("")
	m.viewport.GotoTop()
}

func (m *pagerModel) unload() {
	m.user = v1.User{}
	m.posts = nil
	m.viewport.SetContent("")
	m.viewport.YOffset = 0
}

func (m *pagerModel) setContent(s string) {
	m.viewport.SetContent(s)
}

func (m pagerModel) markdown() string {
	return v1.AsMarkdown(m.user, m.posts)
}

// render returns a command that renders the current document with glamour.
func (m pagerModel) render() tea.Cmd {
	id, md, style, width := m.user.ID, m.markdown(), m.glamourStyle, m.viewport.Width
	return func() tea.Msg {
		s, err := glamourRender(md, style, width)
		if err != nil {
			return errMsg{fmt.Errorf("unable to render posts: %w", err)}
		}
		return contentRenderedMsg{userID: id, content: s}
	}
}

func (m pagerModel) update(msg tea.Msg) (pagerModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "home", "g":
			m.viewport.GotoTop()
			return m, nil
		case "end", "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case contentRenderedMsg:
		if msg.userID == m.user.ID {
			m.setContent(msg.content)
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	var b strings.Builder
	fmt.Fprint(&b, m.viewport.View()+"\n")
	m.statusBarView(&b)
	return b.String()
}

func (m pagerModel) statusBarView(b *strings.Builder) {
	const (
		minPercent               float64 = 0.0
		maxPercent               float64 = 1.0
		percentToStringMagnitude float64 = 100.0
	)

	logo := ui.LogoStyle.Render(text.EmojiPosts + " posts")

	// Scroll percent
	percent := math.Max(minPercent, math.Min(maxPercent, m.viewport.ScrollPercent()))
	scrollPercent := ui.StatusBarStyle.Render(fmt.Sprintf(" %3.f%% ", percent*percentToStringMagnitude))

	helpNote := ui.StatusBarStyle.Render(" esc back ")

	note := fmt.Sprintf(" %s %s · %d posts ", text.EmojiUser, m.user.Name, len(m.posts))
	note = text.TruncateWithTail(note, uint(max(0,
		m.common.width-
			lipgloss.Width(logo)-
			lipgloss.Width(scrollPercent)-
			lipgloss.Width(helpNote),
	)), text.Ellipsis)
	note = ui.StatusBarStyle.Render(note)

	// Empty space
	padding := max(0,
		m.common.width-
			lipgloss.Width(logo)-
			lipgloss.Width(note)-
			lipgloss.Width(scrollPercent)-
			lipgloss.Width(helpNote),
	)
	emptySpace := ui.StatusBarStyle.Render(strings.Repeat(" ", padding))

	fmt.Fprintf(b, "%s%s%s%s%s",
		logo,
		note,
		emptySpace,
		scrollPercent,
		helpNote,
	)
}

// This is where the magic happens.
func glamourRender(markdown, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(0, width)),
	)
	if err != nil {
		return "", err
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", err
	}

	// trim lines
	lines := strings.Split(out, "\n")

	var content strings.Builder
	for i, s := range lines {
		content.WriteString(strings.TrimSpace(s))

		// don't add an artificial newline after the last split
		if i+1 < len(lines) {
			content.WriteString("\n")
		}
	}

	return content.String(), nil
}

// RenderPosts renders a user's posts the way the detail view shows them.
func RenderPosts(u v1.User, posts []v1.Post, style string, width int) (string, error) {
	return glamourRender(v1.AsMarkdown(u, posts), style, width)
}
