package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fabricio-odn/portfolio/metrics"
	"github.com/fabricio-odn/portfolio/model"
	"github.com/google/go-github/v66/github"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource answers FetchListings, optionally blocking until release is closed
type fakeSource struct {
	listings  []model.RepositoryListing
	err       error
	release   chan struct{}
	ignoreCtx bool
	calls     atomic.Int32
	returned  chan struct{}
}

func (f *fakeSource) FetchListings(ctx context.Context) ([]model.RepositoryListing, error) {
	f.calls.Add(1)

	if f.returned != nil {
		defer close(f.returned)
	}

	if f.release != nil {
		if f.ignoreCtx {
			<-f.release
		} else {
			select {
			case <-f.release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return f.listings, f.err
}

func describedListings(n int) []model.RepositoryListing {
	listings := make([]model.RepositoryListing, 0, n)
	for i := 1; i <= n; i++ {
		listings = append(listings, model.RepositoryListing{
			ID:          int64(i),
			Name:        fmt.Sprintf("repo-%d", i),
			Description: github.String("description"),
			HTMLURL:     fmt.Sprintf("https://github.com/octocat/repo-%d", i),
		})
	}

	return listings
}

func waitTimeout(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	return ctx
}

func TestFeedAdapterInitialState(t *testing.T) {
	adapter := NewFeedAdapter(&fakeSource{}, 4)

	state := adapter.State()
	assert.Equal(t, model.FeedIdle, state.Status)
	assert.True(t, state.Loading)
	assert.Empty(t, state.Items)
	assert.NotEmpty(t, adapter.ViewID())
}

func TestFeedAdapterPopulated(t *testing.T) {
	source := &fakeSource{listings: describedListings(6)}
	adapter := NewFeedAdapter(source, 4)
	defer adapter.Close()

	require.True(t, adapter.Load(context.Background()))

	state, err := adapter.Wait(waitTimeout(t))
	require.NoError(t, err)

	assert.Equal(t, model.FeedPopulated, state.Status)
	assert.False(t, state.Loading)
	require.Len(t, state.Items, 4)

	for i, item := range state.Items {
		assert.Equal(t, int64(i+1), item.ID)
	}

	assert.Equal(t, int32(1), source.calls.Load())
}

func TestFeedAdapterCountsOutcome(t *testing.T) {
	populated := testutil.ToFloat64(metrics.FeedLoadsTotal.WithLabelValues(metrics.OutcomePopulated))
	empty := testutil.ToFloat64(metrics.FeedLoadsTotal.WithLabelValues(metrics.OutcomeEmpty))

	_, err := LoadView(waitTimeout(t), &fakeSource{listings: describedListings(2)}, 4)
	require.NoError(t, err)

	_, err = LoadView(waitTimeout(t), &fakeSource{}, 4)
	require.NoError(t, err)

	assert.Equal(t, populated+1, testutil.ToFloat64(metrics.FeedLoadsTotal.WithLabelValues(metrics.OutcomePopulated)))
	assert.Equal(t, empty+1, testutil.ToFloat64(metrics.FeedLoadsTotal.WithLabelValues(metrics.OutcomeEmpty)))
}

func TestFeedAdapterNothingMatches(t *testing.T) {
	forked := describedListings(2)
	forked[0].Fork = true
	forked[1].Description = nil

	adapter := NewFeedAdapter(&fakeSource{listings: forked}, 4)
	defer adapter.Close()

	adapter.Load(context.Background())

	state, err := adapter.Wait(waitTimeout(t))
	require.NoError(t, err)

	assert.Equal(t, model.FeedEmpty, state.Status)
	assert.False(t, state.Loading)
	assert.NotNil(t, state.Items)
	assert.Empty(t, state.Items)
}

func TestFeedAdapterFailureSettlesEmpty(t *testing.T) {
	hook := logtest.NewGlobal()
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })

	source := &fakeSource{err: fmt.Errorf("%w: %w", model.ErrFeedUnavailable, model.ErrFetch)}
	adapter := NewFeedAdapter(source, 4)
	defer adapter.Close()

	adapter.Load(context.Background())

	state, err := adapter.Wait(waitTimeout(t))

	// the failure never reaches the view
	require.NoError(t, err)
	assert.Equal(t, model.FeedEmpty, state.Status)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Items)

	// but it is reported on the diagnostic channel
	var warnings []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings = append(warnings, entry)
		}
	}

	require.Len(t, warnings, 1)
	assert.Equal(t, "FETCH_ERROR", warnings[0].Data["reason"])
	assert.Equal(t, adapter.ViewID(), warnings[0].Data["viewID"])
	assert.ErrorIs(t, warnings[0].Data[logrus.ErrorKey].(error), model.ErrFetch)
}

func TestFeedAdapterLoadsOnce(t *testing.T) {
	source := &fakeSource{listings: describedListings(1)}
	adapter := NewFeedAdapter(source, 4)
	defer adapter.Close()

	assert.True(t, adapter.Load(context.Background()))
	assert.False(t, adapter.Load(context.Background()))

	_, err := adapter.Wait(waitTimeout(t))
	require.NoError(t, err)

	assert.False(t, adapter.Load(context.Background()))
	assert.Equal(t, int32(1), source.calls.Load())
}

func TestFeedAdapterSubscribe(t *testing.T) {
	source := &fakeSource{listings: describedListings(2), release: make(chan struct{})}
	adapter := NewFeedAdapter(source, 4)
	defer adapter.Close()

	updates := adapter.Subscribe()
	adapter.Load(context.Background())
	close(source.release)

	var states []model.FeedState
	for state := range updates {
		states = append(states, state)
	}

	require.Len(t, states, 3)
	assert.Equal(t, model.FeedIdle, states[0].Status)
	assert.Equal(t, model.FeedLoading, states[1].Status)
	assert.Equal(t, model.FeedPopulated, states[2].Status)

	// loading flips to false exactly once and never back
	assert.Equal(t, []bool{true, true, false}, []bool{states[0].Loading, states[1].Loading, states[2].Loading})
}

func TestFeedAdapterSubscribeAfterSettled(t *testing.T) {
	adapter := NewFeedAdapter(&fakeSource{listings: describedListings(1)}, 4)
	defer adapter.Close()

	adapter.Load(context.Background())
	_, err := adapter.Wait(waitTimeout(t))
	require.NoError(t, err)

	updates := adapter.Subscribe()

	state, ok := <-updates
	require.True(t, ok)
	assert.Equal(t, model.FeedPopulated, state.Status)

	_, ok = <-updates
	assert.False(t, ok)
}

// a result arriving after teardown must not be applied
func TestFeedAdapterCloseSuppressesLateResult(t *testing.T) {
	source := &fakeSource{
		listings:  describedListings(3),
		release:   make(chan struct{}),
		ignoreCtx: true,
		returned:  make(chan struct{}),
	}
	adapter := NewFeedAdapter(source, 4)

	updates := adapter.Subscribe()
	adapter.Load(context.Background())
	adapter.Close()

	_, err := adapter.Wait(waitTimeout(t))
	assert.ErrorIs(t, err, ErrViewClosed)

	close(source.release)
	<-source.returned

	assert.Never(t, func() bool { return adapter.State().Terminal() }, 100*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, model.FeedLoading, adapter.State().Status)

	var statuses []model.FeedStatus
	for state := range updates {
		statuses = append(statuses, state.Status)
	}

	assert.Equal(t, []model.FeedStatus{model.FeedIdle, model.FeedLoading}, statuses)
}

func TestFeedAdapterViewContextCancelled(t *testing.T) {
	source := &fakeSource{listings: describedListings(3), release: make(chan struct{})}
	adapter := NewFeedAdapter(source, 4)

	ctx, cancel := context.WithCancel(context.Background())
	updates := adapter.Subscribe()
	adapter.Load(ctx)

	cancel()

	// the subscription is released without a terminal state
	var last model.FeedState
	for state := range updates {
		last = state
	}

	assert.Equal(t, model.FeedLoading, last.Status)

	_, err := adapter.Wait(waitTimeout(t))
	assert.ErrorIs(t, err, ErrViewClosed)
	assert.False(t, adapter.Load(context.Background()))
}

func TestFeedAdapterWaitContextDone(t *testing.T) {
	source := &fakeSource{release: make(chan struct{})}
	adapter := NewFeedAdapter(source, 4)
	defer adapter.Close()

	adapter.Load(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	state, err := adapter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, state.Loading)
}

func TestFeedAdapterLoadAfterClose(t *testing.T) {
	source := &fakeSource{}
	adapter := NewFeedAdapter(source, 4)

	adapter.Close()

	assert.False(t, adapter.Load(context.Background()))
	assert.Equal(t, int32(0), source.calls.Load())
}
