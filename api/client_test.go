package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/vincent/movie"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	opts = append([]Option{WithRetries(0)}, opts...)
	client, err := NewClient(server.URL+"/api", zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client, &hits
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "valid", baseURL: "http://localhost:8000/api"},
		{name: "trailing slash", baseURL: "http://localhost:8000/api/"},
		{name: "empty", baseURL: "", wantErr: true},
		{name: "relative", baseURL: "/api", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, zerolog.Nop())
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:8000/api", client.BaseURL())
		})
	}
}

func TestClientOptions(t *testing.T) {
	custom := &http.Client{Timeout: 3 * time.Second}
	client, err := NewClient("http://localhost:8000/api", zerolog.Nop(),
		WithHTTPClient(custom),
		WithRecommendations(200),
		WithUserAgent("test-agent"),
	)
	require.NoError(t, err)
	assert.Same(t, custom, client.httpClient)
	assert.Equal(t, 50, client.recommendations)
	assert.Equal(t, "test-agent", client.userAgent)

	client, err = NewClient("http://localhost:8000/api", zerolog.Nop(), WithTimeout(7*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, client.httpClient.Timeout)
}

func TestGenres(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/genres", r.URL.Path)
		writeJSON(w, map[string]any{
			"genres": []map[string]any{{"id": 28, "name": "Action"}, {"id": 18, "name": "Drama"}},
		})
	})

	genres, err := client.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []movie.Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}}, genres)
}

func TestCategory(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/movies/top_rated", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		writeJSON(w, map[string]any{
			"movies":      []map[string]any{{"id": 1, "title": "One", "vote_average": 8.25, "genres": []string{"Drama"}}},
			"page":        3,
			"total_pages": 9,
		})
	})

	page, err := client.Category(context.Background(), "top_rated", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 9, page.TotalPages)
	require.Len(t, page.Movies, 1)
	assert.Equal(t, "One", page.Movies[0].Title)

	_, err = client.Category(context.Background(), "trending", 1)
	var vErr *movie.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestDiscoverSendsOnlySetFilters(t *testing.T) {
	var got []map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/movies/discover", r.URL.Path)
		q := map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		got = append(got, q)
		writeJSON(w, map[string]any{"movies": []any{}, "page": 1, "total_pages": 1})
	})

	_, err := client.Discover(context.Background(), 1, movie.Filter{Year: 2020, GenreID: 28, SortBy: "popularity.desc"})
	require.NoError(t, err)
	_, err = client.Discover(context.Background(), 2, movie.Filter{})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, map[string]string{"page": "1", "year": "2020", "genre": "28", "sort_by": "popularity.desc"}, got[0])
	assert.Equal(t, map[string]string{"page": "2"}, got[1])
}

func TestDiscoverRejectsUnknownSort(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Discover(context.Background(), 1, movie.Filter{SortBy: "title.desc"})
	var vErr *movie.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "sort_by", vErr.Field)
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestSearchEncodesQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/movies/search", r.URL.Path)
		assert.Equal(t, "star wars & co", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Contains(t, r.URL.RawQuery, "query=star+wars+%26+co")
		writeJSON(w, map[string]any{"movies": []any{}, "page": 1, "total_pages": 1})
	})

	_, err := client.Search(context.Background(), "  star wars & co ", 0)
	require.NoError(t, err)
}

func TestMovieNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	})

	_, err := client.Movie(context.Background(), 42)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.True(t, apiErr.IsNotFound())
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Error 404: Not Found", err.Error())
}

func TestMovieDecodesDetail(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/movies/550", r.URL.Path)
		writeJSON(w, map[string]any{
			"id":           550,
			"title":        "Fight Club",
			"year":         1999,
			"vote_average": 8.4,
			"vote_count":   30000,
			"genres":       []string{"Drama"},
			"cast":         []map[string]any{{"name": "Edward Norton", "character": "Narrator", "profile_path": "/a.jpg"}},
			"crew":         []map[string]any{{"name": "David Fincher", "job": "Director"}},
			"videos":       []map[string]any{{"key": "abc", "name": "Trailer"}},
		})
	})

	detail, err := client.Movie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", detail.Title)
	assert.Equal(t, "1999", detail.ReleaseYear())
	assert.Equal(t, 30000, detail.VoteCount)
	assert.Equal(t, "Narrator", detail.Cast[0].Character)
	assert.Equal(t, "David Fincher", detail.Crew[0].Name)
	assert.Equal(t, "abc", detail.Videos[0].Key)
}

func TestRecommendations(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/movies/7/recommendations", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("num_recommendations"))
		writeJSON(w, map[string]any{
			"recommendations": []map[string]any{{"id": 8, "title": "Eight", "vote_average": 6.0, "hybrid_score": 0.8}},
		})
	}, WithRecommendations(12))

	recs, err := client.Recommendations(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 8, recs[0].ID)
	assert.InDelta(t, 0.8, recs[0].HybridScore, 1e-9)
}

func TestServerErrorIsRetriedThenReported(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, WithRetries(1))

	_, err := client.Category(context.Background(), "popular", 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewClient(baseURL, zerolog.Nop(), WithRetries(0))
	require.NoError(t, err)

	_, err = client.Genres(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "GET", netErr.Op)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestMalformedBodyIsNetworkError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	})

	_, err := client.Category(context.Background(), "upcoming", 1)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "decode", netErr.Op)
}
