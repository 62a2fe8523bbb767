package cluster

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_Expiry(t *testing.T) {
	m := newMemo(time.Minute)
	now := t0
	m.now = func() time.Time { return now }

	var builds int
	build := func() (int, error) {
		builds++
		return builds, nil
	}

	v, err := cached(m, "k", build)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	now = now.Add(30 * time.Second)
	v, _ = cached(m, "k", build)
	assert.Equal(t, 1, v, "fresh entry is reused")

	now = now.Add(time.Minute)
	v, _ = cached(m, "k", build)
	assert.Equal(t, 2, v, "expired entry is rebuilt")
}

func TestMemo_ErrorsNotCached(t *testing.T) {
	m := newMemo(time.Minute)
	fail := true
	build := func() (string, error) {
		if fail {
			return "", errors.New("node down")
		}
		return "ok", nil
	}

	_, err := cached(m, "k", build)
	assert.Error(t, err)

	fail = false
	v, err := cached(m, "k", build)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestMemo_CollapsesConcurrentMisses(t *testing.T) {
	m := newMemo(time.Minute)
	var builds atomic.Int32
	release := make(chan struct{})

	build := func() (int, error) {
		builds.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = cached(m, "k", build)
		}()
	}

	// Let the goroutines pile up behind the first build.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, r := range results {
		assert.Equal(t, 42, r)
	}
}

func TestMemo_Disabled(t *testing.T) {
	var builds int
	build := func() (int, error) {
		builds++
		return builds, nil
	}

	m := newMemo(0)
	cached(m, "k", build)
	cached(m, "k", build)
	assert.Equal(t, 2, builds)

	cached[int](nil, "k", build)
	assert.Equal(t, 3, builds)
}
