package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/byxorna/roster/pkg/db"
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	usersJSON = `[
  {"id": 1, "name": "Leanne Graham", "email": "Sincere@april.biz",
   "address": {"street": "Kulas Light", "suite": "Apt. 556", "city": "Gwenborough", "zipcode": "92998-3874"},
   "company": {"name": "Romaguera-Crona"}},
  {"id": 2, "name": "Ervin Howell", "email": "Shanna@melissa.tv",
   "address": {"street": "Victor Plains", "suite": "Suite 879", "city": "Wisokyburgh", "zipcode": "90566-7771"},
   "company": {"name": "Deckow-Crist"}}
]`
	postsJSON = `[
  {"userId": 1, "id": 1, "title": "sunt aut facere", "body": "quia et suscipit"},
  {"userId": 1, "id": 2, "title": "qui est esse", "body": "est rerum tempore"}
]`
)

func snapshot(t *testing.T, users, posts string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile), []byte(users), 0o600))
	if posts != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, PostsFile), []byte(posts), 0o600))
	}
	return dir
}

func newLoader(t *testing.T, dir string) *Loader {
	t.Helper()
	l, err := New(dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestLoadSnapshot(t *testing.T) {
	l := newLoader(t, snapshot(t, usersJSON, postsJSON))
	assert.Equal(t, v1.StatusOK, l.Status())

	users, err := l.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Romaguera-Crona", users[0].Company)
	assert.Equal(t, "Wisokyburgh", users[1].Address.City)

	posts, err := l.ListPosts(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	posts, err = l.ListPosts(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestMissingPostsFile(t *testing.T) {
	l := newLoader(t, snapshot(t, usersJSON, ""))
	posts, err := l.ListPosts(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestInvalidSnapshot(t *testing.T) {
	_, err := New(snapshot(t, "<html>", ""), nil)
	assert.ErrorIs(t, err, db.ErrNotJSON)

	_, err = New(snapshot(t, `{"users": []}`, ""), nil)
	assert.ErrorIs(t, err, db.ErrNotArray)

	_, err = New(snapshot(t, usersJSON, `{"error": "rate limited"}`), nil)
	assert.ErrorIs(t, err, db.ErrNotArray)

	_, err = New(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestCancelledContext(t *testing.T) {
	l := newLoader(t, snapshot(t, usersJSON, ""))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.ListUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatchReloads(t *testing.T) {
	dir := snapshot(t, usersJSON, postsJSON)
	l := newLoader(t, dir)

	updated := `[{"id": 3, "name": "Clementine Bauch", "company": {"name": "Romaguera-Jacobson"}}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile), []byte(updated), 0o600))

	select {
	case <-l.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	users, err := l.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Clementine Bauch", users[0].Name)
}

func TestCloseEndsChanges(t *testing.T) {
	l := newLoader(t, snapshot(t, usersJSON, ""))
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	select {
	case _, ok := <-l.Changes():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("changes not closed")
	}
}
