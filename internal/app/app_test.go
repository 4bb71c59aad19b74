package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgraf/culturebot/internal/config"
	"github.com/evgraf/culturebot/internal/delivery"
	"github.com/evgraf/culturebot/internal/matcher"
	"github.com/evgraf/culturebot/internal/poem"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	tmpDir := t.TempDir()

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.DatabasePath = filepath.Join(tmpDir, "test.db")
	cfg.OutputDir = filepath.Join(tmpDir, "out")
	cfg.OpenAIAPIKey = ""
	cfg.SMTPHost = ""

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNewWithoutAPIKey(t *testing.T) {
	a := newTestApp(t)

	assert.Nil(t, a.Vision)
	assert.NotNil(t, a.Analyzer)
	assert.NotNil(t, a.Wikidata)
	require.Len(t, a.Deliverers, 1)
	assert.Equal(t, "file", a.Deliverers[0].Name())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.MinMatchScore = 1.5

	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestMatchOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    MatchOptions
		wantErr bool
	}{
		{"defaults", MatchOptions{}, false},
		{"full", MatchOptions{MinMatchScore: 0.5, CandidatePoolSize: 40, VisionCandidateCount: 6}, false},
		{"score too high", MatchOptions{MinMatchScore: 1.1}, true},
		{"score negative", MatchOptions{MinMatchScore: -0.1}, true},
		{"negative pool", MatchOptions{CandidatePoolSize: -1}, true},
		{"negative vision count", MatchOptions{VisionCandidateCount: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMatchFastAlwaysProducesPairing(t *testing.T) {
	a := newTestApp(t)
	samples := poem.SamplePoems(3)

	for _, p := range samples {
		pairing, err := a.Match(context.Background(), p, MatchOptions{
			Fast:               true,
			CandidatePoolSize:  5,
			EnableExplanations: true,
		})
		require.NoError(t, err, "poem %q", p.Title)

		assert.NotEmpty(t, pairing.RunID)
		assert.NotEmpty(t, pairing.Result.Candidate.Title)
		assert.Contains(t, []matcher.Status{
			matcher.StatusMatched, matcher.StatusFallbackRandom, matcher.StatusSample,
		}, pairing.Result.Status)
		require.NotNil(t, pairing.Explanation)
		assert.NotEmpty(t, pairing.Explanation.Summary)
	}
}

func TestMatchRejectsInvalidOptions(t *testing.T) {
	a := newTestApp(t)

	_, err := a.Match(context.Background(), poem.SamplePoems(1)[0], MatchOptions{MinMatchScore: 2})
	assert.Error(t, err)
}

func TestMatchLogsToStore(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	pairing, err := a.Match(ctx, poem.SamplePoems(1)[0], MatchOptions{Fast: true, CandidatePoolSize: 5})
	require.NoError(t, err)

	records, err := a.Store.RecentMatches(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, pairing.RunID, records[0].RunID)
	assert.Equal(t, pairing.Result.Candidate.ID, records[0].ArtworkID)
}

func TestDefaultMatchOptionsFollowConfig(t *testing.T) {
	a := newTestApp(t)
	a.Config.MinMatchScore = 0.55
	a.Config.VisionCandidateCount = 3

	opts := a.DefaultMatchOptions()

	assert.Equal(t, 0.55, opts.MinMatchScore)
	assert.Equal(t, 3, opts.VisionCandidateCount)
	assert.False(t, opts.Fast)
}

type recordingDeliverer struct {
	payloads []delivery.Payload
	err      error
}

func (r *recordingDeliverer) Name() string { return "recording" }

func (r *recordingDeliverer) Deliver(_ context.Context, p delivery.Payload) error {
	r.payloads = append(r.payloads, p)
	return r.err
}

func TestDeliverFansOut(t *testing.T) {
	a := newTestApp(t)
	first := &recordingDeliverer{}
	second := &recordingDeliverer{}
	a.Deliverers = []delivery.Deliverer{first, second}

	pairing, err := a.Match(context.Background(), poem.SamplePoems(1)[0],
		MatchOptions{Fast: true, CandidatePoolSize: 5, EnableExplanations: true})
	require.NoError(t, err)

	date := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, a.Deliver(context.Background(), pairing, date))

	require.Len(t, first.payloads, 1)
	require.Len(t, second.payloads, 1)
	assert.Equal(t, pairing.RunID, first.payloads[0].RunID)
	assert.NotEmpty(t, first.payloads[0].Explanation)
}

func TestDeliverIsolatesChannelFailures(t *testing.T) {
	a := newTestApp(t)
	failing := &recordingDeliverer{err: assert.AnError}
	working := &recordingDeliverer{}
	a.Deliverers = []delivery.Deliverer{failing, working}

	pairing, err := a.Match(context.Background(), poem.SamplePoems(1)[0],
		MatchOptions{Fast: true, CandidatePoolSize: 5})
	require.NoError(t, err)

	err = a.Deliver(context.Background(), pairing, time.Now())
	assert.Error(t, err)
	assert.Len(t, working.payloads, 1)
}
