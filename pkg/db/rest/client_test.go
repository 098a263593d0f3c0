package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/byxorna/roster/pkg/db"
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return b
}

func newTestServer(t *testing.T) *httptest.Server {
	users := fixture(t, "users.json")
	posts := fixture(t, "posts.json")

	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(users)
	})
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("userId") != "1" {
			w.Write([]byte("[]"))
			return
		}
		w.Write(posts)
	})
	mux.HandleFunc("/broken/users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>oops</html>"))
	})
	mux.HandleFunc("/object/users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/object/posts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "rate limited"}`))
	})
	mux.HandleFunc("/down/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(Options{BaseURL: baseURL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return c
}

func TestListUsers(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv.URL)
	assert.Equal(t, v1.StatusUninitialized, c.Status())

	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, v1.User{
		ID:    1,
		Name:  "Leanne Graham",
		Email: "Sincere@april.biz",
		Phone: "1-770-736-8031 x56442",
		Address: v1.Address{
			Street:  "Kulas Light",
			Suite:   "Apt. 556",
			City:    "Gwenborough",
			Zipcode: "92998-3874",
		},
		Company: "Romaguera-Crona",
	}, users[0])
	assert.Equal(t, "Deckow-Crist", users[1].Company)
	assert.Equal(t, v1.StatusOK, c.Status())
	assert.Equal(t, srv.URL, c.StoragePath())
}

func TestListPosts(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv.URL)

	posts, err := c.ListPosts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, v1.Post{
		ID:     2,
		UserID: 1,
		Title:  "qui est esse",
		Body:   "est rerum tempore vitae\nsequi sint nihil reprehenderit dolor beatae ea dolores neque",
	}, posts[1])

	posts, err = c.ListPosts(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestListUsersNotJSON(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv.URL+"/broken")

	_, err := c.ListUsers(context.Background())
	assert.ErrorIs(t, err, db.ErrNotJSON)
	assert.Equal(t, v1.StatusError, c.Status())
}

func TestListNotArray(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv.URL+"/object")

	users, err := c.ListUsers(context.Background())
	assert.ErrorIs(t, err, db.ErrNotArray)
	assert.Nil(t, users)
	assert.Equal(t, v1.StatusError, c.Status())

	posts, err := c.ListPosts(context.Background(), 1)
	assert.ErrorIs(t, err, db.ErrNotArray)
	assert.Nil(t, posts)
}

func TestListUsersBadStatus(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv.URL+"/down")

	_, err := c.ListUsers(context.Background())
	assert.ErrorIs(t, err, db.ErrUnexpectedStatus)
}

func TestListUsersCancelled(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListUsers(ctx)
	assert.Error(t, err)
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(Options{BaseURL: "not a url"})
	assert.Error(t, err)

	_, err = New(Options{BaseURL: DefaultBaseURL, Retries: -1})
	assert.Error(t, err)
}
