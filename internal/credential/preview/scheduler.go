package preview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"minet/internal/credential"
)

// RenderFunc produces a preview image data URL for a draft's data.
type RenderFunc func(ctx context.Context, data credential.Data) (string, error)

// Scheduler debounces preview rendering. Each Schedule call arms a timer
// for the draft; another call before it fires rearms it, so only the quiet
// period after the last edit triggers a render. Renders publish through
// Store.SetPreview, which drops stale results.
type Scheduler struct {
	store  *Store
	render RenderFunc
	delay  time.Duration
	logger *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer

	wg     sync.WaitGroup
	closed bool
}

// NewScheduler builds a scheduler around the store with the given quiet
// period.
func NewScheduler(store *Store, render RenderFunc, delay time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:  store,
		render: render,
		delay:  delay,
		logger: logger,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule queues a render for the draft after the quiet period. A render
// already queued for the same draft is cancelled and replaced.
func (s *Scheduler) Schedule(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if t, ok := s.timers[id]; ok {
		t.Stop()
	}
	s.timers[id] = time.AfterFunc(s.delay, func() {
		s.fire(id)
	})
}

// Cancel drops any queued render for the draft.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// Close cancels all queued renders and waits for in-flight ones.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) fire(id string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	delete(s.timers, id)
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	draft, err := s.store.Get(id)
	if err != nil {
		return
	}

	preview, err := s.render(context.Background(), draft.Data)
	if err != nil {
		s.logger.Error("preview render failed", "draft_id", id, "error", err)
		return
	}

	if !s.store.SetPreview(id, preview, draft.Version) {
		s.logger.Debug("stale preview dropped", "draft_id", id, "version", draft.Version)
	}
}
