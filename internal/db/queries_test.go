package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgraf/culturebot/internal/vision"
)

func TestVisionCache(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("miss returns not found", func(t *testing.T) {
		attrs, found, err := store.GetVision(ctx, "https://example.org/missing.jpg")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, attrs)
	})

	t.Run("round trip", func(t *testing.T) {
		in := &vision.Attributes{
			DetectedObjects: []string{"tree", "river"},
			Setting:         "natural",
			TimeOfDay:       "dusk",
			HumanPresence:   "absent",
			Mood:            "serene",
		}
		require.NoError(t, store.PutVision(ctx, "https://example.org/a.jpg", in))

		out, found, err := store.GetVision(ctx, "https://example.org/a.jpg")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, in, out)
	})

	t.Run("replace on conflict", func(t *testing.T) {
		url := "https://example.org/b.jpg"
		require.NoError(t, store.PutVision(ctx, url, &vision.Attributes{Setting: "urban"}))
		require.NoError(t, store.PutVision(ctx, url, &vision.Attributes{Setting: "natural"}))

		out, found, err := store.GetVision(ctx, url)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "natural", out.Setting)
	})
}

func TestCostLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("unknown day is zero", func(t *testing.T) {
		spend, err := store.SpendOn(ctx, "2026-01-01")
		require.NoError(t, err)
		assert.Equal(t, 0.0, spend)
	})

	t.Run("accumulates within a day", func(t *testing.T) {
		require.NoError(t, store.AddSpend(ctx, "2026-03-01", 0.5))
		require.NoError(t, store.AddSpend(ctx, "2026-03-01", 0.25))

		spend, err := store.SpendOn(ctx, "2026-03-01")
		require.NoError(t, err)
		assert.InDelta(t, 0.75, spend, 1e-9)
	})

	t.Run("days are independent", func(t *testing.T) {
		require.NoError(t, store.AddSpend(ctx, "2026-03-02", 1.0))

		spend, err := store.SpendOn(ctx, "2026-03-03")
		require.NoError(t, err)
		assert.Equal(t, 0.0, spend)
	})
}

func TestMatchLog(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	records := []MatchRecord{
		{RunID: "run-1", PoemTitle: "The Road Not Taken", PoemAuthor: "Robert Frost",
			ArtworkID: "Q1", ArtworkTitle: "Wanderer above the Sea of Fog", Status: "matched", Score: 0.72},
		{RunID: "run-2", PoemTitle: "Sonnet 18", PoemAuthor: "William Shakespeare",
			ArtworkID: "Q2", ArtworkTitle: "The Kiss", Status: "fallback-random", Score: 0.31},
	}
	for _, rec := range records {
		require.NoError(t, store.LogMatch(ctx, rec))
	}

	t.Run("recent matches newest first", func(t *testing.T) {
		got, err := store.RecentMatches(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "run-2", got[0].RunID)
		assert.Equal(t, "run-1", got[1].RunID)
		assert.False(t, got[0].CreatedAt.IsZero())
	})

	t.Run("limit applies", func(t *testing.T) {
		got, err := store.RecentMatches(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("recent artwork ids", func(t *testing.T) {
		ids, err := store.RecentArtworkIDs(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.True(t, ids["Q1"])
		assert.True(t, ids["Q2"])

		ids, err = store.RecentArtworkIDs(ctx, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
