package db

import (
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/tidwall/gjson"
)

// DecodeUsers reads a JSON array of raw users. Raw users are flattened: the
// company becomes its name and unknown fields are dropped.
func DecodeUsers(body []byte) ([]v1.User, error) {
	raw, err := parseArray(body)
	if err != nil {
		return nil, err
	}
	users := make([]v1.User, 0, len(raw))
	for _, r := range raw {
		users = append(users, userFromJSON(r))
	}
	return users, nil
}

// DecodePosts reads a JSON array of posts.
func DecodePosts(body []byte) ([]v1.Post, error) {
	raw, err := parseArray(body)
	if err != nil {
		return nil, err
	}
	posts := make([]v1.Post, 0, len(raw))
	for _, r := range raw {
		posts = append(posts, postFromJSON(r))
	}
	return posts, nil
}

// parseArray returns the elements of a top level JSON array. gjson would wrap
// any other value into a one element array, so objects and scalars are
// rejected here.
func parseArray(body []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrNotJSON
	}
	r := gjson.ParseBytes(body)
	if !r.IsArray() {
		return nil, ErrNotArray
	}
	return r.Array(), nil
}

func userFromJSON(r gjson.Result) v1.User {
	return v1.User{
		ID:    v1.ID(r.Get("id").Int()),
		Name:  r.Get("name").String(),
		Email: r.Get("email").String(),
		Phone: r.Get("phone").String(),
		Address: v1.Address{
			Street:  r.Get("address.street").String(),
			Suite:   r.Get("address.suite").String(),
			City:    r.Get("address.city").String(),
			Zipcode: r.Get("address.zipcode").String(),
		},
		Company: r.Get("company.name").String(),
	}
}

func postFromJSON(r gjson.Result) v1.Post {
	return v1.Post{
		ID:     v1.ID(r.Get("id").Int()),
		UserID: v1.ID(r.Get("userId").Int()),
		Title:  r.Get("title").String(),
		Body:   r.Get("body").String(),
	}
}
