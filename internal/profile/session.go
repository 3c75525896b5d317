package profile

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/trainingdiary/internal/diary"
)

type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	ErrSessionStarted = errors.New("profile session already started")
	ErrSessionClosed  = errors.New("profile session closed")
)

type profileObserver interface {
	Observe(ctx context.Context, userID string) (<-chan Snapshot, error)
}

// Session follows one user's profile for the lifetime of a login session:
// Uninitialized -> Loading -> Ready | Error, and Ready -> Ready on every
// later snapshot.
type Session struct {
	observer profileObserver
	userID   string

	mu      sync.RWMutex
	state   State
	profile *diary.UserProfile
	err     error
	// closed on the first transition out of Loading
	settled chan struct{}
	cancel  context.CancelFunc
	closed  bool
	done    chan struct{}
	// optional, called with every new profile
	onChange func(diary.UserProfile)
}

func NewSession(observer profileObserver, userID string) *Session {
	return &Session{
		observer: observer,
		userID:   userID,
		state:    StateUninitialized,
		settled:  make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// OnChange registers a callback for every new profile. Must be set before Start.
func (s *Session) OnChange(fn func(diary.UserProfile)) {
	s.onChange = fn
}

// Start subscribes to the profile. The subscription lives until Close,
// independent of ctx deadlines of the calling request.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return ErrSessionStarted
	}
	s.state = StateLoading
	// set before Observe, a Close during Observe must cancel the subscription
	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.mu.Unlock()

	snapshots, err := s.observer.Observe(watchCtx, s.userID)
	if err != nil {
		cancel()
		s.fail(err)
		close(s.done)
		return err
	}

	go s.run(snapshots)
	return nil
}

func (s *Session) run(snapshots <-chan Snapshot) {
	defer close(s.done)
	for snapshot := range snapshots {
		if snapshot.Err != nil {
			s.fail(snapshot.Err)
			continue
		}
		s.ready(*snapshot.Profile)
	}
	// closed before the first snapshot, release WaitReady callers
	if s.State() == StateLoading {
		s.fail(ErrSessionClosed)
	}
}

func (s *Session) ready(profile diary.UserProfile) {
	s.mu.Lock()
	wasLoading := s.state == StateLoading
	s.state = StateReady
	s.profile = &profile
	s.err = nil
	onChange := s.onChange
	s.mu.Unlock()

	if wasLoading {
		close(s.settled)
	}
	if onChange != nil {
		onChange(profile.Clone())
	}
}

// fail moves Loading to Error. A failing snapshot while Ready keeps the last
// good profile.
func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateLoading:
		s.state = StateError
		s.err = err
		close(s.settled)
	case StateReady:
		log.Errorf("profile session %s: snapshot error, keeping last profile: %s", s.userID, err)
	default:
		s.err = err
	}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Profile returns a copy of the latest profile, false until Ready.
func (s *Session) Profile() (diary.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return diary.UserProfile{}, false
	}
	return s.profile.Clone(), true
}

// WaitReady blocks until the first snapshot arrived or loading failed.
func (s *Session) WaitReady(ctx context.Context) (diary.UserProfile, error) {
	select {
	case <-s.settled:
	case <-ctx.Done():
		return diary.UserProfile{}, ctx.Err()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == StateError {
		return diary.UserProfile{}, s.err
	}
	return s.profile.Clone(), nil
}

// Close tears down the subscription and waits for it to stop. A session
// closed before Start never subscribes.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	cancel := s.cancel
	started := s.state != StateUninitialized
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if started {
		<-s.done
	}
}
