package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alexanderramin/tradieone/internal/domain"
)

// List fetches one page of kind. Both a bare JSON array and an
// {items, totalCount} envelope are accepted.
func (c *Client) List(ctx context.Context, kind domain.Kind, opts domain.ListOptions) (domain.Page, error) {
	res, err := ResourceFor(kind)
	if err != nil {
		return domain.Page{}, err
	}
	opts = opts.WithDefaults(domain.DefaultPageSize)
	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(opts.PageNumber))
	q.Set("pageSize", strconv.Itoa(opts.PageSize))
	q.Set("keyword", opts.Keyword)

	var raw json.RawMessage
	if err := c.call(ctx, http.MethodGet, res.ListPath(), q, nil, &raw); err != nil {
		return domain.Page{}, fmt.Errorf("list %s: %w", kind, err)
	}
	page, err := decodePage(raw)
	if err != nil {
		return domain.Page{}, fmt.Errorf("list %s: %w: %v", kind, ErrInvalidResponse, err)
	}
	return page, nil
}

func decodePage(raw json.RawMessage) (domain.Page, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.Page{}, nil
	}
	if raw[0] == '[' {
		var items []domain.Record
		if err := decodeJSON(raw, &items); err != nil {
			return domain.Page{}, err
		}
		return domain.Page{Items: items}, nil
	}
	var env struct {
		Items      []domain.Record `json:"items"`
		TotalCount int             `json:"totalCount"`
	}
	if err := decodeJSON(raw, &env); err != nil {
		return domain.Page{}, err
	}
	return domain.Page{Items: env.Items, TotalCount: env.TotalCount}, nil
}

// Get fetches a single record.
func (c *Client) Get(ctx context.Context, kind domain.Kind, id string) (domain.Record, error) {
	res, err := ResourceFor(kind)
	if err != nil {
		return nil, err
	}
	var rec domain.Record
	if err := c.call(ctx, http.MethodGet, res.ItemPath(id), nil, nil, &rec); err != nil {
		return nil, fmt.Errorf("get %s %s: %w", kind.Singular(), id, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("get %s %s: %w", kind.Singular(), id, ErrNotFound)
	}
	return rec, nil
}

// Create posts payload and returns the created record when the server
// echoes one back, or nil when it does not.
func (c *Client) Create(ctx context.Context, kind domain.Kind, payload any) (domain.Record, error) {
	res, err := ResourceFor(kind)
	if err != nil {
		return nil, err
	}
	var created any
	if err := c.call(ctx, http.MethodPost, res.CreatePath(), nil, payload, &created); err != nil {
		return nil, fmt.Errorf("create %s: %w", kind.Singular(), err)
	}
	if m, ok := created.(map[string]any); ok {
		return domain.Record(m), nil
	}
	return nil, nil
}

// Update replaces the record with the given id. For kinds that take the id
// in the body, payload must already carry it.
func (c *Client) Update(ctx context.Context, kind domain.Kind, id string, payload any) error {
	res, err := ResourceFor(kind)
	if err != nil {
		return err
	}
	if err := c.call(ctx, http.MethodPut, res.UpdatePath(id), nil, payload, nil); err != nil {
		return fmt.Errorf("update %s %s: %w", kind.Singular(), id, err)
	}
	return nil
}

// Delete removes the record with the given id.
func (c *Client) Delete(ctx context.Context, kind domain.Kind, id string) error {
	res, err := ResourceFor(kind)
	if err != nil {
		return err
	}
	if err := c.call(ctx, http.MethodDelete, res.DeletePath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete %s %s: %w", kind.Singular(), id, err)
	}
	return nil
}

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (domain.Record, error) {
	var rec domain.Record
	if err := c.call(ctx, http.MethodGet, profilePath, nil, nil, &rec); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if rec == nil {
		rec = domain.Record{}
	}
	return rec, nil
}

// UpdateProfile saves the signed-in user's profile.
func (c *Client) UpdateProfile(ctx context.Context, p domain.UserProfile) error {
	if err := c.call(ctx, http.MethodPut, profilePath, nil, p, nil); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
