// Package rest is a Backend for jsonplaceholder-style REST APIs.
package rest

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/byxorna/roster/pkg/db"
	"github.com/byxorna/roster/pkg/logger"
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"

	usersPath = "/users"
	postsPath = "/posts"
)

type Options struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gte=0"`
	Retries int           `validate:"gte=0"`
	Logger  logger.Logger
}

type Client struct {
	sync.RWMutex

	client  *resty.Client
	baseURL string
	log     logger.Logger
	status  v1.SyncStatus
}

func New(opts Options) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("rest client failed validation: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(opts.Retries)

	return &Client{
		client:  client,
		baseURL: opts.BaseURL,
		log:     opts.Logger,
		status:  v1.StatusUninitialized,
	}, nil
}

// ListUsers fetches every user.
func (c *Client) ListUsers(ctx context.Context) ([]v1.User, error) {
	body, err := c.get(ctx, usersPath, nil)
	if err != nil {
		return nil, err
	}

	users, err := db.DecodeUsers(body)
	if err != nil {
		c.setStatus(v1.StatusError)
		return nil, fmt.Errorf("%w: GET %s", err, usersPath)
	}
	c.log.Debug("fetched users", "count", len(users))
	return users, nil
}

// ListPosts fetches the posts written by userID.
func (c *Client) ListPosts(ctx context.Context, userID v1.ID) ([]v1.Post, error) {
	params := map[string]string{"userId": strconv.Itoa(int(userID))}
	body, err := c.get(ctx, postsPath, params)
	if err != nil {
		return nil, err
	}

	posts, err := db.DecodePosts(body)
	if err != nil {
		c.setStatus(v1.StatusError)
		return nil, fmt.Errorf("%w: GET %s", err, postsPath)
	}
	c.log.Debug("fetched posts", "user", userID, "count", len(posts))
	return posts, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	c.setStatus(v1.StatusSynchronizing)

	res, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		c.setStatus(v1.StatusError)
		return nil, fmt.Errorf("unable to GET %s: %w", path, err)
	}
	if res.IsError() {
		c.setStatus(v1.StatusError)
		return nil, fmt.Errorf("%w: GET %s returned %s", db.ErrUnexpectedStatus, path, res.Status())
	}

	body := res.Body()
	if !gjson.ValidBytes(body) {
		c.setStatus(v1.StatusError)
		return nil, fmt.Errorf("%w: GET %s", db.ErrNotJSON, path)
	}

	c.setStatus(v1.StatusOK)
	return body, nil
}

func (c *Client) setStatus(s v1.SyncStatus) {
	c.Lock()
	defer c.Unlock()
	c.status = s
}

func (c *Client) Status() v1.SyncStatus {
	c.RLock()
	defer c.RUnlock()
	return c.status
}

func (c *Client) StoragePath() string {
	return c.baseURL
}
