package api

import (
	"net/http"
	"time"
)

const (
	defaultTimeout         = 15 * time.Second
	defaultRetries         = 2
	defaultRecommendations = 10
)

type options struct {
	httpClient      *http.Client
	timeout         time.Duration
	retries         int
	recommendations int
	userAgent       string
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient replaces the retrying client entirely.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithTimeout sets the total time allowed for one call, retries included.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRetries sets how many times a failed GET is retried.
func WithRetries(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.retries = n
		}
	}
}

// WithRecommendations sets num_recommendations, clamped to 5..50.
func WithRecommendations(n int) Option {
	return func(o *options) {
		switch {
		case n < 5:
			n = 5
		case n > 50:
			n = 50
		}
		o.recommendations = n
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}
