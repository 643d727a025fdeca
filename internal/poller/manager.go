// Package poller observes pipeline progress for uploaded documents by
// polling the backend status endpoint until each document reaches a terminal
// stage.
package poller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

// DefaultInterval is the fixed polling period.
const DefaultInterval = 3 * time.Second

// StatusFetcher performs one status fetch. dealdesk.Client satisfies it.
type StatusFetcher interface {
	Status(ctx context.Context, docID int64) (*dealdesk.StatusResponse, error)
}

// Recorder receives stage transitions as they are observed. Implementations
// must tolerate concurrent calls for different documents.
type Recorder interface {
	RecordTransition(ctx context.Context, docID int64, stage Stage) error
}

// Options configures a Manager.
type Options struct {
	// Interval overrides the polling period. Defaults to DefaultInterval.
	Interval time.Duration
	// OnUpdate is invoked for every visible stage change.
	OnUpdate func(docID int64, stage Stage)
	// OnTerminal is invoked exactly once per document lifecycle, on the
	// first terminal observation. The dashboard aggregate refresh hangs off
	// this hook.
	OnTerminal func(docID int64, stage Stage)
	// Recorder, if set, receives every visible transition.
	Recorder Recorder
}

// Manager owns the registry of in-flight document watches. Entries are added
// by Watch and removed on terminal observation or cancellation; the registry
// is the only shared mutable state and is safe under interleaved start/stop
// for different ids.
type Manager struct {
	fetcher    StatusFetcher
	interval   time.Duration
	onUpdate   func(int64, Stage)
	onTerminal func(int64, Stage)
	recorder   Recorder

	mu      sync.Mutex
	watches map[int64]*Subscription
}

// NewManager creates a poll manager around the given fetcher.
func NewManager(fetcher StatusFetcher, opts Options) *Manager {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Manager{
		fetcher:    fetcher,
		interval:   interval,
		onUpdate:   opts.OnUpdate,
		onTerminal: opts.OnTerminal,
		recorder:   opts.Recorder,
		watches:    make(map[int64]*Subscription),
	}
}

// Subscription is the caller's handle on one document watch. Cancel is
// idempotent; Done is closed once the watch has ended, whether by terminal
// observation or cancellation.
type Subscription struct {
	docID  int64
	cancel context.CancelFunc
	done   chan struct{}

	closeOnce    sync.Once
	terminalOnce sync.Once

	mu       sync.Mutex
	applied  uint64
	finished bool
	stage    Stage
}

// DocumentID returns the watched document id.
func (s *Subscription) DocumentID() int64 { return s.docID }

// Cancel stops the watch. Safe to call any number of times; no in-flight
// request is aborted, its response is discarded when it lands.
func (s *Subscription) Cancel() {
	s.cancel()
}

// Done is closed when the watch has ended.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Stage returns the last visible stage observation.
func (s *Subscription) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// markFinished blocks any response still in flight from becoming visible.
func (s *Subscription) markFinished() {
	s.mu.Lock()
	s.finished = true
	s.mu.Unlock()
}

// Watch begins polling the given document. The first fetch is scheduled
// immediately, then on the fixed period. Watching an id already in the
// registry returns the existing subscription.
func (m *Manager) Watch(ctx context.Context, docID int64) *Subscription {
	m.mu.Lock()
	if sub, ok := m.watches[docID]; ok {
		m.mu.Unlock()
		return sub
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		docID:  docID,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	m.watches[docID] = sub
	m.mu.Unlock()

	go func() {
		<-subCtx.Done()
		sub.markFinished()
		m.removeWatch(sub)
		sub.closeOnce.Do(func() { close(sub.done) })
	}()
	go m.run(subCtx, sub)

	return sub
}

// Active returns the number of documents currently being watched.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.watches)
}

// StopAll cancels every active watch. Idempotent.
func (m *Manager) StopAll() {
	m.mu.Lock()
	subs := make([]*Subscription, 0, len(m.watches))
	for _, sub := range m.watches {
		subs = append(subs, sub)
	}
	m.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}

func (m *Manager) removeWatch(sub *Subscription) {
	m.mu.Lock()
	if cur, ok := m.watches[sub.docID]; ok && cur == sub {
		delete(m.watches, sub.docID)
	}
	m.mu.Unlock()
}

func (m *Manager) run(ctx context.Context, sub *Subscription) {
	log := zap.L().With(zap.Int64("document_id", sub.docID))

	seq := uint64(1)
	go m.poll(ctx, sub, seq, log)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Each tick fetches in its own goroutine so a slow response
			// cannot stall the cadence; the sequence number lets a late
			// response be discarded instead of overwriting newer state.
			seq++
			go m.poll(ctx, sub, seq, log)
		}
	}
}

func (m *Manager) poll(ctx context.Context, sub *Subscription, seq uint64, log *zap.Logger) {
	status, err := m.fetcher.Status(ctx, sub.docID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		// Transient transport failure must not abort observation.
		log.Warn("poller: status fetch failed, retrying next tick", zap.Error(err))
		return
	}

	stage := DeriveStage(status)

	sub.mu.Lock()
	if sub.finished || seq <= sub.applied {
		sub.mu.Unlock()
		return
	}
	sub.applied = seq
	if !stage.Changed {
		sub.mu.Unlock()
		return
	}
	sub.stage = stage
	if stage.Terminal {
		sub.finished = true
	}
	sub.mu.Unlock()

	if m.onUpdate != nil {
		m.onUpdate(sub.docID, stage)
	}
	if m.recorder != nil {
		if err := m.recorder.RecordTransition(ctx, sub.docID, stage); err != nil {
			log.Warn("poller: record transition", zap.Error(err))
		}
	}

	if stage.Terminal {
		log.Info("poller: document reached terminal stage",
			zap.String("label", stage.Label),
			zap.String("outcome", string(stage.Outcome)),
		)
		sub.terminalOnce.Do(func() {
			if m.onTerminal != nil {
				m.onTerminal(sub.docID, stage)
			}
		})
		sub.Cancel()
	}
}
