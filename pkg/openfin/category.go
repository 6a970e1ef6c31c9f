package openfin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Category is a hierarchical classification node. ParentID is empty for top
// level categories; the hierarchy is server-defined and not validated here.
type Category struct {
	ID                string `json:"id"`
	Description       string `json:"description"`
	ParentID          string `json:"parentId,omitempty"`
	ParentDescription string `json:"parentDescription,omitempty"`
}

// FetchCategories lists categories. A non-empty parentID restricts the list
// to children of that category; an empty one omits the filter.
func (c *Client) FetchCategories(ctx context.Context, parentID string) (*PageResults[Category], error) {
	v := url.Values{}
	setParam(v, "parentId", parentID)

	var page PageResults[Category]
	if err := c.do(ctx, http.MethodGet, "/categories", v, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return &page, nil
}

// FetchCategory retrieves a single category by id.
func (c *Client) FetchCategory(ctx context.Context, id string) (*Category, error) {
	var cat Category
	if err := c.do(ctx, http.MethodGet, buildPath("/categories/{id}", id), nil, nil, &cat); err != nil {
		return nil, fmt.Errorf("failed to fetch category %s: %w", id, err)
	}
	return &cat, nil
}
