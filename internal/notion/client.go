// Package notion is a minimal client for the pieces of the Notion REST API
// this tool needs: querying a database by checkbox filter, reading a page's
// typed properties, patching properties and covers, and appending a select
// option to the database schema.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2022-06-28"
)

// Client issues authenticated Notion API calls.
type Client struct {
	BaseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the given integration token.
func NewClient(token string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Page is a database row with its typed properties.
type Page struct {
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

// Database is the schema-introspection view of a database.
type Database struct {
	ID         string                    `json:"id"`
	Properties map[string]PropertySchema `json:"properties"`
}

// PropertySchema describes one database column.
type PropertySchema struct {
	Type   string        `json:"type"`
	Select *SelectSchema `json:"select,omitempty"`
}

// SelectSchema lists the configured options of a select column.
type SelectSchema struct {
	Options []SelectOption `json:"options"`
}

type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// QueryPending returns every page whose request checkbox is set, walking
// cursor pagination until the database is exhausted.
func (c *Client) QueryPending(ctx context.Context, databaseID, requestProp string) ([]Page, error) {
	var pages []Page
	cursor := ""
	for {
		body := map[string]any{
			"filter": map[string]any{
				"property": requestProp,
				"checkbox": map[string]any{"equals": true},
			},
		}
		if cursor != "" {
			body["start_cursor"] = cursor
		}

		var resp queryResponse
		if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/databases/%s/query", databaseID), body, &resp); err != nil {
			return nil, fmt.Errorf("failed to query database: %w", err)
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore {
			return pages, nil
		}
		cursor = resp.NextCursor
	}
}

// QueryAll returns every page of the database regardless of flags, for
// exports.
func (c *Client) QueryAll(ctx context.Context, databaseID string) ([]Page, error) {
	var pages []Page
	cursor := ""
	for {
		body := map[string]any{}
		if cursor != "" {
			body["start_cursor"] = cursor
		}

		var resp queryResponse
		if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/databases/%s/query", databaseID), body, &resp); err != nil {
			return nil, fmt.Errorf("failed to query database: %w", err)
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore {
			return pages, nil
		}
		cursor = resp.NextCursor
	}
}

// RetrievePage fetches one page with its current properties.
func (c *Client) RetrievePage(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/pages/"+pageID, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to retrieve page: %w", err)
	}
	return &page, nil
}

// UpdatePageProperties patches the given property values onto a page.
func (c *Client) UpdatePageProperties(ctx context.Context, pageID string, props map[string]any) error {
	if len(props) == 0 {
		return nil
	}
	body := map[string]any{"properties": props}
	if err := c.do(ctx, http.MethodPatch, "/pages/"+pageID, body, nil); err != nil {
		return fmt.Errorf("failed to update page properties: %w", err)
	}
	return nil
}

// UpdatePageCover sets the page cover to an external image URL.
func (c *Client) UpdatePageCover(ctx context.Context, pageID, coverURL string) error {
	body := map[string]any{
		"cover": map[string]any{
			"external": map[string]any{"url": coverURL},
		},
	}
	if err := c.do(ctx, http.MethodPatch, "/pages/"+pageID, body, nil); err != nil {
		return fmt.Errorf("failed to update page cover: %w", err)
	}
	return nil
}

// RetrieveDatabase fetches the database schema.
func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error) {
	var db Database
	if err := c.do(ctx, http.MethodGet, "/databases/"+databaseID, nil, &db); err != nil {
		return nil, fmt.Errorf("failed to retrieve database: %w", err)
	}
	return &db, nil
}

// EnsureSelectOption appends option to a select property's options when the
// property exists, is a select, and lacks it. Anything else is a no-op.
func (c *Client) EnsureSelectOption(ctx context.Context, databaseID, propName, option string) error {
	db, err := c.RetrieveDatabase(ctx, databaseID)
	if err != nil {
		return err
	}

	schema, ok := db.Properties[propName]
	if !ok || schema.Type != "select" || schema.Select == nil {
		return nil
	}
	for _, o := range schema.Select.Options {
		if o.Name == option {
			return nil
		}
	}

	options := append(schema.Select.Options, SelectOption{Name: option, Color: "default"})
	body := map[string]any{
		"properties": map[string]any{
			propName: map[string]any{
				"select": map[string]any{"options": options},
			},
		},
	}
	if err := c.do(ctx, http.MethodPatch, "/databases/"+databaseID, body, nil); err != nil {
		return fmt.Errorf("failed to add select option %q: %w", option, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("notion API returned status %d: %s", resp.StatusCode, string(msg))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
