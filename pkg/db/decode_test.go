package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUsersFlattensCompany(t *testing.T) {
	users, err := DecodeUsers([]byte(`[{"id": 7, "name": "Kurtis Weissnat", "website": "elvis.io",
		"address": {"city": "Howemouth", "geo": {"lat": "24.8918"}},
		"company": {"name": "Johns Group", "bs": "e-enable"}}]`))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Johns Group", users[0].Company)
	assert.Equal(t, "Howemouth", users[0].Address.City)
}

func TestDecodeNotJSON(t *testing.T) {
	_, err := DecodeUsers([]byte("<html>"))
	assert.ErrorIs(t, err, ErrNotJSON)
	_, err = DecodePosts([]byte("{"))
	assert.ErrorIs(t, err, ErrNotJSON)
}

func TestDecodeRejectsNonArrays(t *testing.T) {
	for _, body := range []string{`{"error": "rate limited"}`, `{}`, `42`, `"oops"`, `null`} {
		t.Run(body, func(t *testing.T) {
			users, err := DecodeUsers([]byte(body))
			assert.ErrorIs(t, err, ErrNotArray)
			assert.Nil(t, users)

			posts, err := DecodePosts([]byte(body))
			assert.ErrorIs(t, err, ErrNotArray)
			assert.Nil(t, posts)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	posts, err := DecodePosts([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, posts)
}
