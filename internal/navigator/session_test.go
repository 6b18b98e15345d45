package navigator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreatesLazily(t *testing.T) {
	st := NewStore()
	assert.Equal(t, 0, st.Len())

	sess := st.Get(42)
	require.NotNil(t, sess)
	assert.Equal(t, 1, st.Len())

	// Defaults for a fresh session.
	assert.Equal(t, int64(42), sess.ChatID)
	assert.Equal(t, SectionMain, sess.Section)
	assert.Equal(t, CaptureNone, sess.Capture)
	assert.Equal(t, PersonaCute, sess.Persona)
	assert.Empty(t, sess.Tasks)
}

func TestStoreReturnsSameSession(t *testing.T) {
	st := NewStore()
	a := st.Get(7)
	b := st.Get(7)
	assert.Same(t, a, b)
	assert.Equal(t, 1, st.Len())
}

func TestStoreConcurrentAccess(t *testing.T) {
	st := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sess := st.Get(id % 5)
			sess.Lock()
			sess.Tasks = append(sess.Tasks, "t")
			sess.Unlock()
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, 5, st.Len())
	total := 0
	for i := int64(0); i < 5; i++ {
		total += len(st.Get(i).Tasks)
	}
	assert.Equal(t, 50, total)
}
