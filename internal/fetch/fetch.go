// Package fetch retrieves the company ESG metrics table from a local file
// or an HTTP source, with optional database-backed snapshot caching.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ESGCompass/1.0)"

// Result holds the retrieved table text and where it came from.
type Result struct {
	Source     string
	Text       string
	StatusCode int
}

// Error represents a failure retrieving the table. Loader retrieval
// failures are fatal to a ranking request, so callers surface this rather
// than scoring against nothing.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Source retrieves the table text. An http(s) source is fetched over the
// network; anything else is read as a local file path.
func Source(ctx context.Context, src string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if IsURL(src) {
		return fromURL(ctx, src, opts)
	}
	return fromFile(src)
}

// IsURL reports whether src looks like an http(s) source.
func IsURL(src string) bool {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return false
	}
	parsed, err := url.Parse(src)
	return err == nil && parsed.Host != ""
}

func fromFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Source: path, Message: "failed to read dataset file", Cause: err}
	}
	return &Result{Source: path, Text: string(data)}, nil
}

func fromURL(ctx context.Context, src string, opts *Options) (*Result, error) {
	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, &Error{Source: src, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Source: src, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Source: src, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Source: src, Message: "failed to read body", Cause: err}
	}

	return &Result{
		Source:     src,
		Text:       string(body),
		StatusCode: resp.StatusCode,
	}, nil
}
