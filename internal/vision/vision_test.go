package vision

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	mu    sync.Mutex
	data  map[string]*Attributes
	gets  int
	puts  int
	fails bool
}

func (s *stubStore) GetVision(_ context.Context, imageURL string) (*Attributes, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.fails {
		return nil, false, fmt.Errorf("store unavailable")
	}
	attrs, ok := s.data[imageURL]
	return attrs, ok, nil
}

func (s *stubStore) PutVision(_ context.Context, imageURL string, attrs *Attributes) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.data == nil {
		s.data = make(map[string]*Attributes)
	}
	s.data[imageURL] = attrs
	return nil
}

type stubGuard struct {
	allow bool
}

func (g *stubGuard) Allow(context.Context) (bool, error)   { return g.allow, nil }
func (g *stubGuard) Record(context.Context, float64) error { return nil }

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)

	a, err := New(Config{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, defaultModel, a.model)
}

func TestEnrich_EmptyURL(t *testing.T) {
	a, err := New(Config{APIKey: "test-key"})
	require.NoError(t, err)

	_, err = a.Enrich(context.Background(), "", "Untitled")
	require.Error(t, err)
}

func TestEnrich_PersistentCacheHit(t *testing.T) {
	cached := &Attributes{Setting: "seascape", Mood: "serene", DetectedObjects: []string{"wave", "boat"}}
	store := &stubStore{data: map[string]*Attributes{"https://example.com/wave.jpg": cached}}

	a, err := New(Config{APIKey: "test-key", Store: store})
	require.NoError(t, err)

	attrs, err := a.Enrich(context.Background(), "https://example.com/wave.jpg", "The Wave")
	require.NoError(t, err)
	assert.Equal(t, cached, attrs)
	assert.Equal(t, 1, store.gets)

	// Second call is served by the in-run cache.
	again, err := a.Enrich(context.Background(), "https://example.com/wave.jpg", "The Wave")
	require.NoError(t, err)
	assert.Equal(t, cached, again)
	assert.Equal(t, 1, store.gets)
}

func TestEnrich_BudgetExhausted(t *testing.T) {
	a, err := New(Config{APIKey: "test-key", Guard: &stubGuard{allow: false}})
	require.NoError(t, err)

	_, err = a.Enrich(context.Background(), "https://example.com/img.jpg", "")
	require.ErrorIs(t, err, ErrBudgetExhausted)
}

func TestStoreInRun_EvictsOldestFirst(t *testing.T) {
	a, err := New(Config{APIKey: "test-key"})
	require.NoError(t, err)

	a.mu.Lock()
	for i := 0; i <= inRunCacheMax; i++ {
		a.storeInRun(fmt.Sprintf("https://example.com/%d.jpg", i), &Attributes{})
	}
	a.mu.Unlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	assert.Len(t, a.cache, inRunCacheMax)
	_, oldestPresent := a.cache["https://example.com/0.jpg"]
	assert.False(t, oldestPresent)
	_, newestPresent := a.cache[fmt.Sprintf("https://example.com/%d.jpg", inRunCacheMax)]
	assert.True(t, newestPresent)
}
