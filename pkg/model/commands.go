package model

import (
	"context"
	"time"

	"github.com/byxorna/roster/pkg/db"
	"github.com/byxorna/roster/pkg/debounce"
	"github.com/byxorna/roster/pkg/store"
	"github.com/byxorna/roster/pkg/types/v1"
	tea "github.com/charmbracelet/bubbletea"
)

type refreshMsg struct{}

// backendChangedMsg is sent when a watching backend reports new data.
type backendChangedMsg struct{}

type usersFetchedMsg struct {
	ticket store.Ticket
	users  []v1.User
	err    error
}

type postsFetchedMsg struct {
	seq   uint64
	user  v1.User
	posts []v1.Post
	err   error
}

type searchDebounceMsg struct {
	token debounce.Token
}

type contentRenderedMsg struct {
	userID  v1.ID
	content string
}

type statusMessageTimeoutMsg struct {
	seq int
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func refreshCmd() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

// waitForChangesCmd blocks until the backend reports a change. It returns nil
// for backends that do not watch their data.
func waitForChangesCmd(ctx context.Context, backend db.Backend) tea.Cmd {
	w, ok := backend.(db.Watcher)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return backendChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func fetchUsersCmd(ctx context.Context, backend db.Backend, ticket store.Ticket) tea.Cmd {
	return func() tea.Msg {
		users, err := backend.ListUsers(ctx)
		return usersFetchedMsg{ticket: ticket, users: users, err: err}
	}
}

func fetchPostsCmd(ctx context.Context, backend db.Backend, seq uint64, u v1.User) tea.Cmd {
	return func() tea.Msg {
		posts, err := backend.ListPosts(ctx, u.ID)
		return postsFetchedMsg{seq: seq, user: u, posts: posts, err: err}
	}
}

func searchDebounceCmd(interval time.Duration, token debounce.Token) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return searchDebounceMsg{token: token}
	})
}

func waitForStatusMessageTimeout(seq int) tea.Cmd {
	return tea.Tick(statusMessageTimeout, func(time.Time) tea.Msg {
		return statusMessageTimeoutMsg{seq: seq}
	})
}
