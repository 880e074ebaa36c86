// Package api is the HTTP client for the movie catalog JSON API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/sebastiantruijens/vincent/movie"
)

// Categories maps the category names accepted by Category to their paths.
var Categories = map[string]string{
	"popular":     "/movies/popular",
	"top_rated":   "/movies/top_rated",
	"now_playing": "/movies/now_playing",
	"upcoming":    "/movies/upcoming",
}

// Client handles interactions with the movie catalog API
type Client struct {
	baseURL         string
	httpClient      *http.Client
	logger          zerolog.Logger
	recommendations int
	userAgent       string

	// Identical GETs in flight at the same time share one round trip.
	group singleflight.Group
}

// NewClient creates a new API client rooted at baseURL (e.g. http://localhost:8000/api).
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q must be absolute", ErrInvalidConfig, baseURL)
	}

	o := options{
		timeout:         defaultTimeout,
		retries:         defaultRetries,
		recommendations: defaultRecommendations,
		userAgent:       "vincent",
	}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = newRetryingClient(o.retries, o.timeout, logger)
	}

	return &Client{
		baseURL:         baseURL,
		httpClient:      httpClient,
		logger:          logger,
		recommendations: o.recommendations,
		userAgent:       o.userAgent,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Genres fetches the genre list.
func (c *Client) Genres(ctx context.Context) ([]movie.Genre, error) {
	var resp struct {
		Genres []movie.Genre `json:"genres"`
	}
	if err := c.get(ctx, "/genres", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// Category fetches one page of a fixed category list.
func (c *Client) Category(ctx context.Context, category string, page int) (*movie.Page, error) {
	path, ok := Categories[category]
	if !ok {
		return nil, &movie.ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", category)}
	}
	return c.page(ctx, path, pageParams(page))
}

// Discover fetches one page of the discover list. Only set filter fields are sent.
func (c *Client) Discover(ctx context.Context, page int, f movie.Filter) (*movie.Page, error) {
	if f.SortBy != "" && !movie.ValidSort(f.SortBy) {
		return nil, &movie.ValidationError{Field: "sort_by", Reason: fmt.Sprintf("unsupported value %q", f.SortBy)}
	}
	params := pageParams(page)
	f.Encode(params)
	return c.page(ctx, "/movies/discover", params)
}

// Search fetches one page of movies whose title matches query.
func (c *Client) Search(ctx context.Context, query string, page int) (*movie.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &movie.ValidationError{Field: "query", Reason: "must not be empty"}
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(clampPage(page)))
	return c.page(ctx, "/movies/search", params)
}

// Movie fetches the full details of one movie. Non-2xx responses come back
// as *APIError carrying the status code and text.
func (c *Client) Movie(ctx context.Context, id int) (*movie.Detail, error) {
	if id <= 0 {
		return nil, &movie.ValidationError{Field: "id", Reason: "must be positive"}
	}
	var detail movie.Detail
	if err := c.get(ctx, "/movies/"+strconv.Itoa(id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Recommendations fetches movies recommended from id.
func (c *Client) Recommendations(ctx context.Context, id int) ([]movie.Summary, error) {
	if id <= 0 {
		return nil, &movie.ValidationError{Field: "id", Reason: "must be positive"}
	}
	params := url.Values{}
	params.Set("num_recommendations", strconv.Itoa(c.recommendations))

	var resp struct {
		Recommendations []movie.Summary `json:"recommendations"`
	}
	if err := c.get(ctx, "/movies/"+strconv.Itoa(id)+"/recommendations", params, &resp); err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

func (c *Client) page(ctx context.Context, endpoint string, params url.Values) (*movie.Page, error) {
	var p movie.Page
	if err := c.get(ctx, endpoint, params, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// get performs a GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	v, err, shared := c.group.Do(requestURL, func() (any, error) {
		return c.do(ctx, requestURL)
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("url", requestURL).Msg("API request failed")
		return err
	}
	if shared {
		c.logger.Debug().Str("url", requestURL).Msg("Shared in-flight response")
	}

	if err := json.Unmarshal(v.([]byte), out); err != nil {
		return &NetworkError{Op: "decode", URL: requestURL, Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &NetworkError{Op: "GET", URL: requestURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().Str("url", requestURL).Msg("Making API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "GET", URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "read", URL: requestURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       string(body),
		}
	}
	return body, nil
}

// statusText strips the numeric prefix from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func pageParams(page int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(clampPage(page)))
	return params
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
