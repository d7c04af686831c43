// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](10)

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a")
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b was least recently used")
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestCacheUnboundedNeverEvicts(t *testing.T) {
	c := New[int, int](Unbounded)
	for i := range 2 * DefaultCapacity {
		c.Set(i, i)
	}
	assert.Equal(t, 2*DefaultCapacity, c.Len())
	assert.Zero(t, c.Stats().Evictions)

	v, ok := c.Get(0)
	require.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[int, string](0)
	calls := 0
	create := func() (string, error) {
		calls++
		return "v", nil
	}

	v, err := c.GetOrCreate(1, create)
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	_, err = c.GetOrCreate(1, create)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err = c.GetOrCreate(2, func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, c.Len(), "errors are not cached")

	s := c.Stats()
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(2), s.Misses)
}

func TestCacheConcurrentGetOrCreate(t *testing.T) {
	c := New[string, int](8)
	var created sync.Map
	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := strconv.Itoa(i % 4)
			_, _ = c.GetOrCreate(key, func() (int, error) {
				_, loaded := created.LoadOrStore(key, true)
				assert.False(t, loaded, "value for %s created twice", key)
				return i, nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 4, c.Len())
}
