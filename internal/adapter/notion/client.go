package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"boj-notion/internal/apperr"
	"boj-notion/internal/domain/model"
	"boj-notion/internal/domain/ports"
)

const (
	// DefaultBaseURL is the public Notion API.
	DefaultBaseURL = "https://api.notion.com"
	// APIVersion is sent as the Notion-Version header.
	APIVersion = "2022-06-28"

	op = "Notion"
)

// Properties names the database columns a page fills in.
type Properties struct {
	Title string
	Date  string
	Tags  string
}

// DefaultProperties are the column names of the solution database.
var DefaultProperties = Properties{Title: "이름", Date: "날짜", Tags: "알고리즘"}

// Client uploads pages to a Notion database.
type Client struct {
	httpClient *http.Client
	baseURL    string
	props      Properties
	logger     ports.Logger
}

var _ ports.DocumentStore = (*Client)(nil)

// New creates a Notion client. A zero timeout means no timeout.
func New(baseURL string, props Properties, timeout time.Duration, logger ports.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if props.Title == "" {
		props.Title = DefaultProperties.Title
	}
	if props.Date == "" {
		props.Date = DefaultProperties.Date
	}
	if props.Tags == "" {
		props.Tags = DefaultProperties.Tags
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		props:      props,
		logger:     logger,
	}
}

// CreatePage creates page in the configured database. The first MaxChildren
// blocks travel with the create call; the rest are appended in batches.
func (c *Client) CreatePage(ctx context.Context, creds model.Credentials, page model.Page) error {
	token := strings.TrimSpace(creds.NotionToken)
	databaseID := strings.TrimSpace(creds.DatabaseID)
	if token == "" || databaseID == "" {
		return apperr.ConfigMissing(missing(token, databaseID)...)
	}

	children, dropped := encodeBlocks(page.Blocks)
	if dropped > 0 {
		c.logger.Error(ctx, "toggle children over limit dropped", "dropped", dropped)
	}
	first, rest := splitBatch(children)

	payload := map[string]any{
		"parent":     map[string]string{"database_id": databaseID},
		"properties": c.properties(page),
		"children":   first,
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, token, http.MethodPost, "/v1/pages", payload, &created); err != nil {
		return err
	}
	c.logger.Info(ctx, "notion page created", "page", created.ID, "blocks", len(first))

	for len(rest) > 0 {
		var batch []map[string]any
		batch, rest = splitBatch(rest)
		path := fmt.Sprintf("/v1/blocks/%s/children", created.ID)
		if err := c.do(ctx, token, http.MethodPatch, path, map[string]any{"children": batch}, nil); err != nil {
			return err
		}
		c.logger.Info(ctx, "notion blocks appended", "page", created.ID, "blocks", len(batch))
	}
	return nil
}

func (c *Client) properties(page model.Page) map[string]any {
	title := make([]map[string]any, 0, 1)
	for _, piece := range splitRunes(page.Title, MaxTextLength) {
		title = append(title, map[string]any{"text": map[string]string{"content": piece}})
	}

	tags := make([]map[string]string, 0, len(page.Tags))
	for _, tag := range page.Tags {
		tags = append(tags, map[string]string{"name": tag})
	}

	return map[string]any{
		c.props.Title: map[string]any{"title": title},
		c.props.Date:  map[string]any{"date": map[string]string{"start": page.Date.Format(time.DateOnly)}},
		c.props.Tags:  map[string]any{"multi_select": tags},
	}
}

func (c *Client) do(ctx context.Context, token, method, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperr.Network(op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Network(op, fmt.Errorf("perform request: %w", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apperr.Network(op, fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &apiErr)
		c.logger.Error(ctx, "notion returned error", "status", resp.StatusCode, "code", apiErr.Code, "path", path)
		message := apiErr.Message
		if message == "" {
			message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return apperr.API(op, resp.StatusCode, message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Network(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func splitBatch(blocks []map[string]any) (batch, rest []map[string]any) {
	if len(blocks) <= MaxChildren {
		return blocks, nil
	}
	return blocks[:MaxChildren], blocks[MaxChildren:]
}

func missing(token, databaseID string) []string {
	var fields []string
	if token == "" {
		fields = append(fields, "notion_token")
	}
	if databaseID == "" {
		fields = append(fields, "database_id")
	}
	return fields
}
