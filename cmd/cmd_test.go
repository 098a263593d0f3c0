package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/byxorna/roster/pkg/config"
	"github.com/byxorna/roster/pkg/db"
	"github.com/byxorna/roster/pkg/query"
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	users []v1.User
	posts map[v1.ID][]v1.Post
	err   error
}

func (f *fakeBackend) ListUsers(context.Context) ([]v1.User, error) { return f.users, f.err }
func (f *fakeBackend) ListPosts(_ context.Context, id v1.ID) ([]v1.Post, error) {
	return f.posts[id], f.err
}
func (f *fakeBackend) Status() v1.SyncStatus { return v1.StatusOK }
func (f *fakeBackend) StoragePath() string   { return "fake" }

var users = []v1.User{
	{ID: 1, Name: "Leanne Graham", Email: "sincere@april.biz", Company: "Romaguera-Crona", Address: v1.Address{City: "Gwenborough"}},
	{ID: 2, Name: "Ervin Howell", Email: "shanna@melissa.tv", Company: "Deckow-Crist", Address: v1.Address{City: "Wisokyburgh"}},
	{ID: 3, Name: "Clementine Bauch", Email: "nathan@yesenia.net", Company: "Romaguera-Jacobson", Address: v1.Address{City: "McKenziehaven"}},
}

var engine = query.New(query.DefaultLocale)

func TestFetchStoreAppliesSorts(t *testing.T) {
	st, err := fetchStore(context.Background(), &fakeBackend{users: users}, engine, []string{"name", "name"})
	require.NoError(t, err)
	assert.Equal(t, 3, st.Len())

	ids := []v1.ID{}
	for _, u := range st.Filtered() {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []v1.ID{1, 2, 3}, ids)
}

func TestFetchStoreErrors(t *testing.T) {
	_, err := fetchStore(context.Background(), &fakeBackend{users: users}, engine, []string{"phone"})
	assert.ErrorIs(t, err, query.ErrUnknownColumn)

	_, err = fetchStore(context.Background(), &fakeBackend{err: db.ErrUnexpectedStatus}, engine, nil)
	assert.ErrorIs(t, err, db.ErrUnexpectedStatus)
}

func TestWriteTable(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, writeTable(&b, users[:2], "er"))
	out := b.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Ervin Howell")
	assert.Contains(t, out, "Romaguera-Crona")
	assert.Contains(t, out, "Gwenborough")
}

func TestWriteJSON(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, writeJSON(&b, users[1:2]))

	var got []v1.User
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, users[1:2], got)
}

func TestPrintPosts(t *testing.T) {
	backend := &fakeBackend{
		users: users,
		posts: map[v1.ID][]v1.Post{2: {{ID: 11, UserID: 2, Title: "et ea vero", Body: "delectus reiciendis"}}},
	}

	var b bytes.Buffer
	require.NoError(t, printPosts(context.Background(), &b, backend, engine, 2, "notty"))
	assert.Contains(t, b.String(), "delectus reiciendis")

	err := printPosts(context.Background(), &b, backend, engine, 1, "notty")
	assert.ErrorIs(t, err, db.ErrNotFound)

	err = printPosts(context.Background(), &b, backend, engine, 42, "notty")
	assert.ErrorIs(t, err, db.ErrNotFound)

	backend.err = errors.New("boom")
	err = printPosts(context.Background(), &b, backend, engine, 2, "notty")
	assert.Error(t, err)
}

func TestLogFlagsIgnoreCase(t *testing.T) {
	t.Cleanup(func() { flags.LogLevel, flags.LogFormat = "", "" })
	flags.LogLevel, flags.LogFormat = "DEBUG", "Json"

	c := config.Default
	cfg, err := applyFlags(&c)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	var b bytes.Buffer
	log, err := newLogger(cfg, &b)
	require.NoError(t, err)
	log.Debug("fetched users", "count", 3)
	assert.Contains(t, b.String(), `"msg":"fetched users"`)

	flags.LogLevel = "loud"
	c = config.Default
	_, err = applyFlags(&c)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	var b bytes.Buffer
	root.SetOut(&b)
	root.SetArgs([]string{"version"})
	t.Cleanup(func() {
		root.SetOut(nil)
		root.SetArgs(nil)
	})

	require.NoError(t, root.Execute())
	assert.Equal(t, "roster dev\n", b.String())
}
