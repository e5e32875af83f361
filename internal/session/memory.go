package session

import (
	"context"
	"sync"
	"time"
)

type MemoryOptions struct {
	TTL time.Duration
	// CheckPeriod cada cuánto se purgan las sesiones vencidas. <= 0 desactiva el pruner.
	CheckPeriod time.Duration
	Now         func() time.Time
}

type entry struct {
	data    []byte
	expires time.Time
}

// MemoryStore mantiene las sesiones en un map. Adecuado para un solo proceso.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewMemoryStore(opts MemoryOptions) *MemoryStore {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &MemoryStore{
		entries: map[string]entry{},
		ttl:     opts.TTL,
		now:     opts.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	if opts.CheckPeriod > 0 {
		go s.pruneLoop(opts.CheckPeriod)
	} else {
		close(s.done)
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, sid string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sid]
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, sid)
		return nil, false, nil
	}

	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, sid string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	s.entries[sid] = entry{data: cp, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Destroy(ctx context.Context, sid string) error {
	s.mu.Lock()
	delete(s.entries, sid)
	s.mu.Unlock()
	return nil
}

// Prune elimina las sesiones vencidas y devuelve cuántas borró.
func (s *MemoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for sid, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, sid)
			n++
		}
	}
	return n
}

// Len incluye sesiones vencidas todavía no purgadas.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close detiene el pruner. Se puede llamar más de una vez.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

func (s *MemoryStore) pruneLoop(every time.Duration) {
	defer close(s.done)

	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			s.Prune()
		case <-s.stop:
			return
		}
	}
}
