package boj

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"boj-notion/internal/apperr"
	"boj-notion/internal/domain/model"
	"boj-notion/internal/domain/ports"
)

// DefaultBaseURL is the public BOJ site.
const DefaultBaseURL = "https://www.acmicpc.net"

const userAgent = "Mozilla/5.0 (compatible; boj-notion/1.0)"

// DefaultTrustedImageHosts are the asset hosts whose images become image blocks.
var DefaultTrustedImageHosts = []string{
	"upload.acmicpc.net",
	"onlinejudgeimages.s3-ap-northeast-1.amazonaws.com",
	"www.acmicpc.net",
	"acmicpc.net",
}

const (
	noDescription = "내용 없음"
	noInput       = "입력 설명 없음"
	noOutput      = "출력 설명 없음"
	noSample      = "없음"
)


// Client implements ports.Judge by scraping BOJ pages.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	trusted    map[string]struct{}
	settings   ports.SettingsSource
	logger     ports.Logger
}

var _ ports.Judge = (*Client)(nil)

// New creates a BOJ client. A zero timeout means requests never time out.
func New(baseURL string, timeout time.Duration, trustedHosts []string, settings ports.SettingsSource, logger ports.Logger) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse judge base url: %w", err)
	}
	if len(trustedHosts) == 0 {
		trustedHosts = DefaultTrustedImageHosts
	}
	trusted := make(map[string]struct{}, len(trustedHosts))
	for _, h := range trustedHosts {
		trusted[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
		trusted:    trusted,
		settings:   settings,
		logger:     logger,
	}, nil
}

// FetchSource returns the submitted source code of submissionID.
func (c *Client) FetchSource(ctx context.Context, submissionID string) (string, error) {
	const op = "fetch source"

	doc, err := c.fetchDocument(ctx, op, "source", submissionID)
	if err != nil {
		return "", err
	}

	area := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "textarea" && attr(n, "name") == "source"
	})
	if area == nil {
		return "", apperr.API(op, http.StatusOK, "소스 코드를 찾을 수 없습니다")
	}
	return textContent(area), nil
}

// FetchProblem scrapes the statement page of problemID.
func (c *Client) FetchProblem(ctx context.Context, problemID string) (*model.ProblemSnapshot, error) {
	doc, err := c.fetchDocument(ctx, "fetch problem", "problem", problemID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(textContent(findByID(doc, "problem_title")))
	if title == "" {
		title = fmt.Sprintf("%s번 문제", problemID)
	}

	snapshot := &model.ProblemSnapshot{
		ID:           problemID,
		Title:        title,
		Description:  orDefault(c.section(doc, "problem_description"), noDescription),
		Input:        orDefault(c.section(doc, "problem_input"), noInput),
		Output:       orDefault(c.section(doc, "problem_output"), noOutput),
		Hint:         c.section(doc, "problem_hint"),
		SampleInput:  orDefault(strings.TrimSpace(textContent(findByID(doc, "sample-input-1"))), noSample),
		SampleOutput: orDefault(strings.TrimSpace(textContent(findByID(doc, "sample-output-1"))), noSample),
		Tags:         tags(findByID(doc, "problem_tags")),
	}

	c.logger.Info(ctx, "problem scraped", "problem", problemID, "title", title, "tags", len(snapshot.Tags))
	return snapshot, nil
}

func (c *Client) section(doc *html.Node, id string) string {
	node := findByID(doc, id)
	if node == nil {
		return ""
	}
	return newRenderer(c.baseURL, c.trusted).Render(node)
}

func (c *Client) fetchDocument(ctx context.Context, op string, path ...string) (*html.Node, error) {
	endpoint := c.baseURL.JoinPath(path...).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, apperr.Network(op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")
	if c.settings != nil {
		if cookie := strings.TrimSpace(c.settings.Credentials().JudgeCookie); cookie != "" {
			req.Header.Set("Cookie", cookie)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Network(op, fmt.Errorf("perform request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error(ctx, "judge returned non-200", "url", endpoint, "status", resp.StatusCode, "body", string(data))
		return nil, apperr.API(op, resp.StatusCode, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, apperr.Network(op, fmt.Errorf("parse html: %w", err))
	}
	return doc, nil
}

func tags(section *html.Node) []string {
	if section == nil {
		return nil
	}
	var out []string
	walk(section, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		if tag := strings.Join(strings.Fields(textContent(n)), " "); tag != "" {
			out = append(out, tag)
		}
	})
	return out
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
