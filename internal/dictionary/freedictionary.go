package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mrlokans/wordly/internal/entities"
)

const (
	DefaultBaseURL   = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Wordly/1.0"

	invalidURLMessage = "Invalid URL"
	noDataMessage     = "No data received"
	tooLargeMessage   = "Response too large"

	// Upper bound on the body we are willing to decode.
	maxBodySize = 4 << 20
)

// FreeDictionaryClient implements Client using the Free Dictionary API.
// API docs: https://dictionaryapi.dev/
type FreeDictionaryClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures a FreeDictionaryClient.
type Option func(*FreeDictionaryClient)

// WithBaseURL points the client at another host (tests, mirrors).
func WithBaseURL(baseURL string) Option {
	return func(c *FreeDictionaryClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *FreeDictionaryClient) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. The client passed to
// WithHTTPClient is copied, never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *FreeDictionaryClient) {
		if timeout > 0 {
			hc := *c.httpClient
			hc.Timeout = timeout
			c.httpClient = &hc
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *FreeDictionaryClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewFreeDictionaryClient creates a new Free Dictionary API client.
func NewFreeDictionaryClient(opts ...Option) *FreeDictionaryClient {
	c := &FreeDictionaryClient{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *FreeDictionaryClient) Name() string {
	return "freedictionary"
}

// Fetch looks up a term and returns exactly one outcome. It never retries.
func (c *FreeDictionaryClient) Fetch(ctx context.Context, term string) Outcome {
	out := Outcome{Term: term, RequestID: uuid.NewString()}

	escaped, ok := encodeTerm(term)
	if !ok {
		return invalidInput(out)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+escaped, nil)
	if err != nil {
		return invalidInput(out)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[LOOKUP] %s: request for %q failed: %v", out.RequestID, term, err)
		return transportError(out, err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return transportError(out, err.Error(), err)
	}
	if len(body) > maxBodySize {
		return transportError(out, tooLargeMessage, nil)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return transportError(out, noDataMessage, nil)
	}

	return decodeResponse(out, body)
}

// decodeResponse tries the list shape first, then the error-object shape.
// The HTTP status is ignored: upstream uses the error shape with varying codes.
func decodeResponse(out Outcome, body []byte) Outcome {
	entries, listErr := decodeEntries(body)
	if listErr == nil {
		out.Kind = OutcomeFound
		out.Entries = entries
		return out
	}

	apiErr, objErr := decodeAPIError(body)
	if objErr == nil {
		out.Kind = OutcomeNotFound
		out.APIError = apiErr
		out.Err = fmt.Errorf("%w: %s", ErrNotFound, apiErr.Title)
		return out
	}

	// Report the failure of the shape the body claims to be.
	cause := objErr
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		cause = listErr
	}
	return transportError(out, "Failed to decode response: "+cause.Error(), errors.Join(listErr, objErr))
}

func decodeEntries(body []byte) ([]entities.WordEntry, error) {
	var entries []entities.WordEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, errors.New("response is not a list")
	}
	for i, e := range entries {
		if e.Word == "" {
			return nil, fmt.Errorf("entry %d has no word", i)
		}
	}
	return entries, nil
}

// apiErrorBody mirrors entities.APIError with pointers so missing keys are detected.
type apiErrorBody struct {
	Title   *string `json:"title"`
	Message *string `json:"message"`
}

func decodeAPIError(body []byte) (*entities.APIError, error) {
	var raw apiErrorBody
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if raw.Title == nil || raw.Message == nil {
		return nil, errors.New("response has neither entries nor title/message")
	}
	return &entities.APIError{Title: *raw.Title, Message: *raw.Message}, nil
}

// encodeTerm percent-encodes a term for use as a single path segment.
// Blank terms, invalid UTF-8 and NUL bytes cannot be encoded.
func encodeTerm(term string) (string, bool) {
	if strings.TrimSpace(term) == "" || !utf8.ValidString(term) {
		return "", false
	}
	if strings.IndexByte(term, 0) >= 0 {
		return "", false
	}
	return url.PathEscape(term), true
}

func invalidInput(out Outcome) Outcome {
	out.Kind = OutcomeInvalidInput
	out.Message = invalidURLMessage
	out.Err = fmt.Errorf("%w: %q", ErrInvalidInput, out.Term)
	return out
}

func transportError(out Outcome, message string, cause error) Outcome {
	out.Kind = OutcomeTransport
	out.Message = message
	if cause != nil {
		out.Err = fmt.Errorf("%w: %w", ErrTransport, cause)
	} else {
		out.Err = fmt.Errorf("%w: %s", ErrTransport, message)
	}
	return out
}
