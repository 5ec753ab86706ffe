package memory

import (
	"sync"
	"time"

	"re-ad-be/internal/entity"
	"re-ad-be/pkg/annotation"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Session is the live workspace of one user: the annotation store plus
// the paper being read.
type Session struct {
	UserID uuid.UUID
	Store  *annotation.Store

	mu    sync.RWMutex
	paper *entity.Paper
}

func NewSession(userID uuid.UUID) *Session {
	return &Session{UserID: userID, Store: annotation.New()}
}

func (s *Session) Paper() (entity.Paper, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.paper == nil {
		return entity.Paper{}, false
	}
	return *s.paper, true
}

func (s *Session) SetPaper(p *entity.Paper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.paper = nil
		return
	}
	cp := *p
	s.paper = &cp
}

// WorkspaceRegistry keeps one Session per user. Idle sessions expire after
// the configured TTL and every lookup renews it.
type WorkspaceRegistry struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewWorkspaceRegistry(ttl time.Duration) *WorkspaceRegistry {
	cleanup := 10 * time.Minute
	if ttl < cleanup {
		cleanup = ttl
	}
	return &WorkspaceRegistry{cache: cache.New(ttl, cleanup)}
}

// Get returns the user's session, creating an empty one on first use.
func (r *WorkspaceRegistry) Get(userID uuid.UUID) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userID.String()
	if x, found := r.cache.Get(key); found {
		s := x.(*Session)
		r.cache.Set(key, s, cache.DefaultExpiration)
		return s
	}

	s := NewSession(userID)
	r.cache.Set(key, s, cache.DefaultExpiration)
	return s
}

func (r *WorkspaceRegistry) Find(userID uuid.UUID) (*Session, bool) {
	if x, found := r.cache.Get(userID.String()); found {
		return x.(*Session), true
	}
	return nil, false
}

func (r *WorkspaceRegistry) Delete(userID uuid.UUID) {
	r.cache.Delete(userID.String())
}

func (r *WorkspaceRegistry) Count() int {
	return r.cache.ItemCount()
}
