package memory

import (
	"sync"
	"testing"
	"time"

	"re-ad-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetCreatesOncePerUser(t *testing.T) {
	r := NewWorkspaceRegistry(time.Hour)
	alice, bob := uuid.New(), uuid.New()

	a1 := r.Get(alice)
	a2 := r.Get(alice)
	b := r.Get(bob)

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
	assert.Equal(t, 2, r.Count())

	_, err := a1.Store.CreateRead("First pass", "#ff0000")
	require.NoError(t, err)
	assert.Len(t, b.Store.Reads(), 0)
}

func TestRegistryConcurrentGet(t *testing.T) {
	r := NewWorkspaceRegistry(time.Hour)
	user := uuid.New()

	var wg sync.WaitGroup
	sessions := make([]*Session, 20)
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i] = r.Get(user)
		}(i)
	}
	wg.Wait()

	for _, s := range sessions {
		assert.Same(t, sessions[0], s)
	}
}

func TestRegistryFindAndDelete(t *testing.T) {
	r := NewWorkspaceRegistry(time.Hour)
	user := uuid.New()

	_, ok := r.Find(user)
	assert.False(t, ok)

	r.Get(user)
	_, ok = r.Find(user)
	assert.True(t, ok)

	r.Delete(user)
	_, ok = r.Find(user)
	assert.False(t, ok)
}

func TestRegistryExpiry(t *testing.T) {
	r := NewWorkspaceRegistry(20 * time.Millisecond)
	user := uuid.New()
	first := r.Get(user)

	time.Sleep(50 * time.Millisecond)

	_, ok := r.Find(user)
	assert.False(t, ok)
	assert.NotSame(t, first, r.Get(user))
}

func TestSessionPaperIsCopied(t *testing.T) {
	s := NewSession(uuid.New())
	_, ok := s.Paper()
	assert.False(t, ok)

	p := &entity.Paper{Name: "attention.pdf", DataURI: "data:application/pdf;base64,AAAA"}
	s.SetPaper(p)
	p.Name = "changed"

	got, ok := s.Paper()
	require.True(t, ok)
	assert.Equal(t, "attention.pdf", got.Name)
}
