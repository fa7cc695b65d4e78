package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-rollup-go/internal/types"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Current()
	assert.False(t, ok)

	first := s.Set("a.csv", types.Dataset{Header: []string{"A"}})
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "a.csv", first.FileName)
	assert.False(t, first.LoadedAt.IsZero())

	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID)

	second := s.Set("b.csv", types.Dataset{Header: []string{"B"}})
	assert.NotEqual(t, first.ID, second.ID)
	got, _ = s.Current()
	assert.Equal(t, "b.csv", got.FileName)
	assert.Equal(t, []string{"B"}, got.Dataset.Header)

	s.Clear()
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.Set(fmt.Sprintf("%d.csv", i), types.Dataset{})
		}(i)
		go func() {
			defer wg.Done()
			s.Current()
		}()
	}
	wg.Wait()

	_, ok := s.Current()
	assert.True(t, ok)
}
