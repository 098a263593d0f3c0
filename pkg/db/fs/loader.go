// Package fs is a Backend that reads a directory snapshot of the API:
// users.json and posts.json, in the same shape the REST API serves them.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/byxorna/roster/pkg/db"
	"github.com/byxorna/roster/pkg/logger"
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
)

const (
	UsersFile = "users.json"
	PostsFile = "posts.json"
)

type Loader struct {
	*sync.Mutex
	Directory string `validate:"required,dir"`
	status    v1.SyncStatus
	log       logger.Logger

	users []v1.User
	posts map[v1.ID][]v1.Post

	watcher *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
}

// New loads the snapshot in dir and starts watching it for changes. A missing
// posts file means no user has posts.
func New(dir string, log logger.Logger) (*Loader, error) {
	expandedPath, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}

	l := Loader{
		Mutex:     &sync.Mutex{},
		Directory: expandedPath,
		status:    v1.StatusUninitialized,
		log:       log,
		posts:     map[v1.ID][]v1.Post{},
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("error validating storage provider: %w", err)
	}

	if err := l.reload(); err != nil {
		return nil, err
	}

	if err := l.startWatcher(); err != nil {
		return nil, fmt.Errorf("unable to create watcher: %w", err)
	}

	return &l, nil
}

func (x *Loader) Validate() error {
	validate := validator.New()
	return validate.Struct(x)
}

// reload reads both files and swaps them in. On error the previous snapshot is
// kept.
func (x *Loader) reload() error {
	body, err := os.ReadFile(filepath.Join(x.Directory, UsersFile))
	if err != nil {
		x.setStatus(v1.StatusError)
		return fmt.Errorf("unable to read users: %w", err)
	}
	users, err := db.DecodeUsers(body)
	if err != nil {
		x.setStatus(v1.StatusError)
		return fmt.Errorf("%w: %s", err, UsersFile)
	}

	byUser := map[v1.ID][]v1.Post{}
	body, err = os.ReadFile(filepath.Join(x.Directory, PostsFile))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		x.setStatus(v1.StatusError)
		return fmt.Errorf("unable to read posts: %w", err)
	default:
		posts, err := db.DecodePosts(body)
		if err != nil {
			x.setStatus(v1.StatusError)
			return fmt.Errorf("%w: %s", err, PostsFile)
		}
		for _, p := range posts {
			byUser[p.UserID] = append(byUser[p.UserID], p)
		}
	}

	x.Lock()
	x.users = users
	x.posts = byUser
	x.status = v1.StatusOK
	x.Unlock()

	x.log.Debug("loaded snapshot", "dir", x.Directory, "users", len(users))
	return nil
}

func (x *Loader) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// watch the directory rather than the files, so editors that replace
	// files on save are still noticed
	err = watcher.Add(x.Directory)
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("unable to watch %s: %w", x.Directory, err)
	}

	x.watcher = watcher

	go func() {
		defer close(x.changes)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !x.isSnapshotFile(event.Name) || !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				if err := x.reload(); err != nil {
					x.log.Warn("unable to reload snapshot", "file", event.Name, "err", err)
					continue
				}
				// coalesce bursts of events into one pending notification
				select {
				case x.changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				x.log.Error("watcher error", "err", err)
			case <-x.done:
				return
			}
		}
	}()
	return nil
}

func (x *Loader) isSnapshotFile(name string) bool {
	base := filepath.Base(name)
	return base == UsersFile || base == PostsFile
}

func (x *Loader) ListUsers(ctx context.Context) ([]v1.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	x.Lock()
	defer x.Unlock()
	return append([]v1.User(nil), x.users...), nil
}

func (x *Loader) ListPosts(ctx context.Context, userID v1.ID) ([]v1.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	x.Lock()
	defer x.Unlock()
	return append([]v1.Post(nil), x.posts[userID]...), nil
}

// Changes notifies after the snapshot on disk has been reloaded.
func (x *Loader) Changes() <-chan struct{} {
	return x.changes
}

// Close stops watching the directory.
func (x *Loader) Close() error {
	x.Lock()
	defer x.Unlock()
	select {
	case <-x.done:
		return nil
	default:
	}
	close(x.done)
	return x.watcher.Close()
}

func (x *Loader) setStatus(s v1.SyncStatus) {
	x.Lock()
	defer x.Unlock()
	x.status = s
}

func (x *Loader) Status() v1.SyncStatus {
	x.Lock()
	defer x.Unlock()
	return x.status
}

func (x *Loader) StoragePath() string {
	return x.Directory
}
