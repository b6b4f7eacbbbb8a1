package service

import (
	"context"
	"errors"
	"sync"

	"github.com/fabricio-odn/portfolio/metrics"
	"github.com/fabricio-odn/portfolio/model"
	"github.com/google/uuid"

	log "github.com/sirupsen/logrus"
)

var ErrViewClosed = errors.New("VIEW_CLOSED")

// subscribers can see at most idle, loading and one terminal state
const subscriberBuffer = 3

// FeedAdapter drives the projects feed of a single page view
// Idle -> Loading -> Populated | Empty, terminal states are never left
// once the view is torn down no state is applied anymore
type FeedAdapter struct {
	source   FeedSource
	maxItems int
	viewID   string

	mu          sync.Mutex
	state       model.FeedState
	closed      bool
	finished    bool
	cancel      context.CancelFunc
	stopWatch   func() bool
	subscribers []chan model.FeedState
	done        chan struct{}
}

func NewFeedAdapter(source FeedSource, maxItems int) *FeedAdapter {
	return &FeedAdapter{
		source:   source,
		maxItems: maxItems,
		viewID:   uuid.NewString(),
		state:    model.IdleState(),
		done:     make(chan struct{}),
	}
}

func (a *FeedAdapter) ViewID() string {
	return a.viewID
}

// State returns the current immutable state
func (a *FeedAdapter) State() model.FeedState {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

// Subscribe returns a channel receiving the current state then every later transition
// the channel is closed once a terminal state was delivered or the view is torn down
func (a *FeedAdapter) Subscribe() <-chan model.FeedState {
	a.mu.Lock()
	defer a.mu.Unlock()

	ch := make(chan model.FeedState, subscriberBuffer)
	ch <- a.state

	if a.finished {
		close(ch)
		return ch
	}

	a.subscribers = append(a.subscribers, ch)
	return ch
}

// Load starts the single fetch of the view, ctx being the view lifetime
// it returns false when the view was already loaded or torn down
func (a *FeedAdapter) Load(ctx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || a.state.Status != model.FeedIdle {
		return false
	}

	loadCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	// the view going away is a teardown, not a failure
	a.stopWatch = context.AfterFunc(ctx, a.Close)

	a.transitionLocked(model.LoadingState())

	log.WithField("viewID", a.viewID).Debug("feed loading")

	go a.run(loadCtx)

	return true
}

// Wait blocks until the feed settles, the view is torn down or ctx is done
func (a *FeedAdapter) Wait(ctx context.Context) (model.FeedState, error) {
	select {
	case <-a.done:
		a.mu.Lock()
		defer a.mu.Unlock()

		if !a.state.Terminal() {
			return a.state, ErrViewClosed
		}

		return a.state, nil

	case <-ctx.Done():
		return a.State(), ctx.Err()
	}
}

// Close tears the view down: the pending fetch is cancelled and its result dropped
func (a *FeedAdapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closeLocked()
}

func (a *FeedAdapter) closeLocked() {
	if a.closed {
		return
	}

	a.closed = true

	if a.cancel != nil {
		a.cancel()
	}

	if a.stopWatch != nil {
		a.stopWatch()
	}

	if !a.finished {
		if a.state.Status == model.FeedLoading {
			log.WithField("viewID", a.viewID).Debug("feed view torn down before completion")
			metrics.FeedLoadsTotal.WithLabelValues(metrics.OutcomeCancelled).Inc()
		}

		a.finishLocked()
	}
}

func (a *FeedAdapter) run(ctx context.Context) {
	listings, err := a.source.FetchListings(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()

	// late result for a discarded view
	if a.closed {
		return
	}

	// the view context ended while fetching, the watcher may not have run yet
	if ctx.Err() != nil {
		a.closeLocked()
		return
	}

	logger := log.WithField("viewID", a.viewID)

	if err != nil {
		reason := model.ReasonCode(err)
		logger.WithError(err).WithField("reason", reason).Warning("feed unavailable, rendering without repositories")

		metrics.FeedErrorsTotal.WithLabelValues(reason).Inc()
		metrics.FeedLoadsTotal.WithLabelValues(metrics.OutcomeUnavailable).Inc()

		a.settleLocked(model.SettledState(nil))
		return
	}

	state := model.SettledState(ProjectFeed(listings, a.maxItems))

	logger.WithFields(log.Fields{
		"listings": len(listings),
		"items":    len(state.Items),
	}).Debug("feed settled")

	metrics.FeedItems.Observe(float64(len(state.Items)))
	outcome := metrics.OutcomeEmpty
	if state.Status == model.FeedPopulated {
		outcome = metrics.OutcomePopulated
	}

	metrics.FeedLoadsTotal.WithLabelValues(outcome).Inc()

	a.settleLocked(state)
}

func (a *FeedAdapter) settleLocked(state model.FeedState) {
	a.transitionLocked(state)
	a.finishLocked()

	a.cancel()
	if a.stopWatch != nil {
		a.stopWatch()
	}
}

func (a *FeedAdapter) transitionLocked(state model.FeedState) {
	a.state = state

	for _, ch := range a.subscribers {
		select {
		case ch <- state:
		default:
			// can't happen with subscriberBuffer, a state is never worth blocking the view
		}
	}
}

func (a *FeedAdapter) finishLocked() {
	if a.finished {
		return
	}

	a.finished = true

	for _, ch := range a.subscribers {
		close(ch)
	}

	a.subscribers = nil
	close(a.done)
}

// LoadView runs a whole view: load, wait for the terminal state, tear down
func LoadView(ctx context.Context, source FeedSource, maxItems int) (model.FeedState, error) {
	adapter := NewFeedAdapter(source, maxItems)
	defer adapter.Close()

	adapter.Load(ctx)

	return adapter.Wait(ctx)
}
