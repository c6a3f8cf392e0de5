package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trezcool/mahafali/core/group"
)

var _ group.Repository = (*Client)(nil) // interface compliance check

func (c *Client) ListGroups(ctx context.Context) ([]group.Group, error) {
	var groups []group.Group
	if err := c.do(ctx, http.MethodGet, "/groups/", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *Client) GetGroup(ctx context.Context, id int) (group.Group, error) {
	var grp group.Group
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/groups/%d/", id), nil, &grp); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return group.Group{}, group.ErrNotFound
		}
		return group.Group{}, err
	}
	return grp, nil
}

func (c *Client) CreateGroup(ctx context.Context, grp group.Group) (group.Group, error) {
	var created group.Group
	if err := c.do(ctx, http.MethodPost, "/groups/", grp, &created); err != nil {
		return group.Group{}, err
	}
	return created, nil
}

func (c *Client) UpdateGroup(ctx context.Context, grp group.Group) (group.Group, error) {
	var updated group.Group
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/groups/%d/", grp.ID), grp, &updated); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return group.Group{}, group.ErrNotFound
		}
		return group.Group{}, err
	}
	return updated, nil
}
