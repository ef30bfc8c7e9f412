package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/dshills/quicksearch/internal/host"
	"github.com/dshills/quicksearch/internal/input"
	"github.com/dshills/quicksearch/internal/logging"
	"github.com/dshills/quicksearch/internal/search/match"
	"github.com/dshills/quicksearch/internal/search/session"
)

// ErrReentrantDispatch is returned when Dispatch is called for a buffer
// while an event for that buffer is still being handled.
var ErrReentrantDispatch = errors.New("reentrant dispatch")

// Registry maps buffers to their active sessions.
type Registry struct {
	mu       sync.Mutex
	host     host.Host
	opts     session.Options
	log      *logging.Logger
	sessions map[host.BufferID]*session.Session
	busy     map[host.BufferID]bool
}

// New creates an empty registry whose sessions use opts.
func New(h host.Host, opts session.Options) *Registry {
	log := opts.Logger
	if log == nil {
		log = logging.Null()
	}
	if opts.Messages == (session.Messages{}) {
		opts.Messages = session.DefaultMessages()
	}
	return &Registry{
		host:     h,
		opts:     opts,
		log:      log.WithComponent("registry"),
		sessions: make(map[host.BufferID]*session.Session),
		busy:     make(map[host.BufferID]bool),
	}
}

// Start begins a search on buffer id. If the buffer already has a session
// it is left untouched and shows the "already active" notice on its next
// prompt refresh.
func (r *Registry) Start(id host.BufferID, dir match.Direction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		s.SetNotice(r.opts.Messages.AlreadyActive)
		r.log.Debug("session already active on %s", id)
		return nil
	}

	s, err := session.New(r.host, id, dir, r.opts)
	if err != nil {
		r.log.WithField("buffer", id).Warn("start failed: %v", err)
		return err
	}
	r.sessions[id] = s
	r.log.WithField("buffer", id).Info("started %s search", dir)
	return nil
}

// Dispatch routes ev to the session on buffer id. Buffers without a
// session never consume input. A session that terminates or fails is
// removed before Dispatch returns.
func (r *Registry) Dispatch(id host.BufferID, ev input.Event) (bool, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return false, nil
	}
	if r.busy[id] {
		r.mu.Unlock()
		return false, ErrReentrantDispatch
	}
	r.busy[id] = true
	r.mu.Unlock()

	consumed, err := s.Handle(ev)

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.busy, id)
	if err != nil || s.Terminated() {
		if r.sessions[id] == s {
			delete(r.sessions, id)
		}
		if err != nil {
			r.log.WithField("buffer", id).Error("session aborted: %v", err)
			return false, err
		}
		r.log.WithField("buffer", id).Debug("session ended")
	}
	return consumed, nil
}

// Active reports whether buffer id has a running session.
func (r *Registry) Active(id host.BufferID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	return ok
}

// Session returns the running session on buffer id, if any.
func (r *Registry) Session(id host.BufferID) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Forget drops the session on buffer id without touching the buffer. Hosts
// call it when a buffer is closed.
func (r *Registry) Forget(id host.BufferID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of running sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Buffers returns the buffers with running sessions, sorted.
func (r *Registry) Buffers() []host.BufferID {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]host.BufferID, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
