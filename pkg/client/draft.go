package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/artem13815/cvbuilder/pkg/cv"
	"github.com/artem13815/cvbuilder/pkg/form"
)

const draftPath = "/users/cv/draft"

func (c *Client) draftCall(ctx context.Context, method, path string, in any) (form.State, error) {
	var out form.State
	err := c.do(ctx, method, draftPath+path, in, &out)
	return out, err
}

func (c *Client) OpenDraft(ctx context.Context) (form.State, error) {
	return c.draftCall(ctx, http.MethodPost, "", nil)
}

func (c *Client) Draft(ctx context.Context) (form.State, error) {
	return c.draftCall(ctx, http.MethodGet, "", nil)
}

func (c *Client) DiscardDraft(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, draftPath, nil, nil)
}

func (c *Client) SubmitDraft(ctx context.Context) (cv.CV, error) {
	var out cv.CV
	err := c.do(ctx, http.MethodPost, draftPath+"/submit", nil, &out)
	return out, err
}

func (c *Client) AppendEntry(ctx context.Context, sec form.Section) (form.State, error) {
	return c.draftCall(ctx, http.MethodPost, fmt.Sprintf("/sections/%s/entries", sec), nil)
}

func (c *Client) RemoveEntry(ctx context.Context, sec form.Section, index int) (form.State, error) {
	return c.draftCall(ctx, http.MethodDelete, fmt.Sprintf("/sections/%s/entries/%d", sec, index), nil)
}

func (c *Client) RemoveLastEntry(ctx context.Context, sec form.Section) (form.State, error) {
	return c.draftCall(ctx, http.MethodDelete, fmt.Sprintf("/sections/%s/entries/last", sec), nil)
}

func (c *Client) UpdateField(ctx context.Context, sec form.Section, column string, index int, value string) (form.State, error) {
	return c.draftCall(ctx, http.MethodPatch, fmt.Sprintf("/sections/%s/entries/%d", sec, index),
		map[string]string{"field": column, "value": value})
}

func (c *Client) SetFields(ctx context.Context, values map[string]string) (form.State, error) {
	return c.draftCall(ctx, http.MethodPatch, "/fields", values)
}

func (c *Client) AppendItem(ctx context.Context, l form.List, value string) (form.State, error) {
	return c.draftCall(ctx, http.MethodPost, fmt.Sprintf("/lists/%s/items", l), map[string]string{"value": value})
}

func (c *Client) RemoveItem(ctx context.Context, l form.List, index int) (form.State, error) {
	return c.draftCall(ctx, http.MethodDelete, fmt.Sprintf("/lists/%s/items/%d", l, index), nil)
}

func (c *Client) UpdateItem(ctx context.Context, l form.List, index int, value string) (form.State, error) {
	return c.draftCall(ctx, http.MethodPatch, fmt.Sprintf("/lists/%s/items/%d", l, index), map[string]string{"value": value})
}
