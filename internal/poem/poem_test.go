package poem

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFetcher(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		f := NewFetcher(Config{})
		assert.Equal(t, defaultBaseURL, f.baseURL)
		assert.Equal(t, defaultMaxWords, f.maxWords)
	})

	t.Run("uses custom values", func(t *testing.T) {
		f := NewFetcher(Config{BaseURL: "http://localhost:1234/", MaxWords: 50})
		assert.Equal(t, "http://localhost:1234", f.baseURL)
		assert.Equal(t, 50, f.maxWords)
	})
}

func TestFetcher_FetchRandom(t *testing.T) {
	t.Run("fetches and formats a poem", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/random/1", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]rawPoem{
				{Title: " Ozymandias ", Author: "Percy Bysshe Shelley", Lines: []string{"I met a traveller from an antique land,", "Who said..."}},
			})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		f := NewFetcher(Config{BaseURL: server.URL})
		p, err := f.FetchRandom(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "Ozymandias", p.Title)
		assert.Equal(t, "Percy Bysshe Shelley", p.Author)
		assert.Equal(t, 2, p.LineCount)
		assert.Equal(t, 10, p.WordCount)
		assert.Equal(t, "PoetryDB", p.Source)
		assert.True(t, strings.HasPrefix(p.Text, "I met a traveller"))
	})

	t.Run("fills missing fields", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/random/1", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]rawPoem{{Lines: []string{"one line"}}})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		f := NewFetcher(Config{BaseURL: server.URL})
		p, err := f.FetchRandom(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "Untitled", p.Title)
		assert.Equal(t, "Unknown Author", p.Author)
	})

	t.Run("server error surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		f := NewFetcher(Config{BaseURL: server.URL})
		_, err := f.FetchRandom(context.Background())
		require.Error(t, err)
	})
}

func TestFetcher_FetchRandomBatch_WordLimit(t *testing.T) {
	long := rawPoem{Title: "Epic", Author: "Anon", Lines: []string{strings.Repeat("word ", 300)}}
	short := rawPoem{Title: "Haiku", Author: "Anon", Lines: []string{"an old silent pond", "a frog jumps into the pond", "splash, silence again"}}

	var calls int
	mux := http.NewServeMux()
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			json.NewEncoder(w).Encode([]rawPoem{long})
			return
		}
		json.NewEncoder(w).Encode([]rawPoem{short, long})
	}
	mux.HandleFunc("/random/1", handler)
	mux.HandleFunc("/random/2", handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	f := NewFetcher(Config{BaseURL: server.URL, MaxWords: 50})
	poems, err := f.FetchRandomBatch(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, poems, 1)
	assert.Equal(t, "Haiku", poems[0].Title)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestFetcher_FetchRandomBatch_ZeroCount(t *testing.T) {
	f := NewFetcher(Config{})
	poems, err := f.FetchRandomBatch(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, poems)
}

func TestSamplePoems(t *testing.T) {
	all := SamplePoems(0)
	require.Len(t, all, 3)
	for _, p := range all {
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Text)
		assert.Positive(t, p.WordCount)
		assert.Equal(t, "Sample Data", p.Source)
	}

	one := SamplePoems(1)
	require.Len(t, one, 1)
	assert.Equal(t, "The Road Not Taken", one[0].Title)
}
