package db

import (
	"context"
	"errors"

	"github.com/byxorna/roster/pkg/types/v1"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrNotJSON          = errors.New("response body is not JSON")
	ErrNotArray         = errors.New("response body is not a JSON array")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Backend is the interface any data source satisfies to provide users and
// their posts
type Backend interface {
	ListUsers(ctx context.Context) ([]v1.User, error)
	ListPosts(ctx context.Context, userID v1.ID) ([]v1.Post, error)

	Status() v1.SyncStatus
	StoragePath() string
}

// Watcher is implemented by backends that notice when their data changes.
// The channel receives a value after each change and is closed when the
// backend is closed.
type Watcher interface {
	Changes() <-chan struct{}
}
