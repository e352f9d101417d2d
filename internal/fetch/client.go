// Package fetch downloads job descriptions over HTTP and turns HTML into
// plain text suitable for skill extraction.
package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/logger"
)

const (
	userAgent       = "spigell/hr-screener"
	contentEncoding = "gzip"
	// Job pages larger than this are cut off.
	maxBodyBytes = 4 << 20
)

type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
}

func New(logger *zap.Logger) *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// Page is a fetched document.
type Page struct {
	URL         string
	ContentType string
	Body        string
}

// IsHTML reports whether the page was served as HTML.
func (p *Page) IsHTML() bool {
	return strings.Contains(strings.ToLower(p.ContentType), "html")
}

// Text returns the readable text of the page.
func (p *Page) Text() (string, error) {
	if !p.IsHTML() {
		return strings.TrimSpace(p.Body), nil
	}
	return ExtractText(p.Body, JobPostingSelectors())
}

// Get downloads url and returns its decoded body.
func (c *Client) Get(ctx context.Context, url string) (*Page, error) {
	log := logger.OrNop(c.logger)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")
	// Setting the header by hand disables transparent decompression,
	// so the body is gunzipped below.
	req.Header.Set("Accept-Encoding", contentEncoding)

	log.Debug("make request", zap.String("url", url))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: bad status: %s", url, resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	log.Debug("got response",
		zap.String("url", url),
		zap.String("content_type", resp.Header.Get("Content-Type")),
		zap.Int("bytes", len(data)),
	)

	return &Page{
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(data),
	}, nil
}

// JobDescription downloads url and returns its readable text.
func (c *Client) JobDescription(ctx context.Context, url string) (string, error) {
	page, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}

	text, err := page.Text()
	if err != nil {
		return "", fmt.Errorf("extract text from %s: %w", url, err)
	}
	if text == "" {
		return "", fmt.Errorf("no text found at %s", url)
	}

	return text, nil
}
