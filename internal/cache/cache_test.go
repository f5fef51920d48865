package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/model"
)

const testTTL = 5 * time.Minute

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time          { return c.now }
func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *clock { return &clock{now: time.Unix(1755000000, 0)} }

func newTestCache(c *clock) *Cache[*model.TestResultData] {
	return New[*model.TestResultData](
		WithClock[*model.TestResultData](c.Now),
		WithValidator[*model.TestResultData](func(d *model.TestResultData) error { return d.Validate() }),
	)
}

func fetchReturning(d *model.TestResultData, err error, calls *int) FetchFunc[*model.TestResultData] {
	return func(ctx context.Context) (*model.TestResultData, error) {
		*calls++
		return d, err
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	data := &model.TestResultData{Passed: 10, Total: 10}

	c.Set(Key("linux", "v2"), data)

	got, ok := c.Get(Key("linux", "v2"), testTTL)
	require.True(t, ok)
	assert.Equal(t, data, got)
}

func TestGetMissesAfterTTL(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	c.Set("linux/v2", &model.TestResultData{Passed: 1, Total: 1})

	clk.Advance(testTTL)

	_, ok := c.Get("linux/v2", testTTL)
	assert.False(t, ok, "entry at exactly ttl age must be stale")
}

func TestGetOrFetchCachesFreshPayload(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	data := &model.TestResultData{Passed: 10, Total: 10}
	calls := 0

	got, err := c.GetOrFetch(context.Background(), "linux/v2", testTTL, fetchReturning(data, nil, &calls))
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, 1, calls)

	got, err = c.GetOrFetch(context.Background(), "linux/v2", testTTL, fetchReturning(data, nil, &calls))
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, 1, calls, "fresh hit must not refetch")
}

func TestGetOrFetchStaleFallback(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	data := &model.TestResultData{Passed: 10, Total: 10}
	c.Set("linux/v2", data)

	clk.Advance(testTTL + time.Minute)

	calls := 0
	got, err := c.GetOrFetch(context.Background(), "linux/v2", testTTL,
		fetchReturning(nil, fmt.Errorf("connection refused"), &calls))
	require.NoError(t, err, "a stale payload beats a fetch failure")
	assert.Equal(t, data, got)
	assert.Equal(t, 1, calls)

	// The failed refresh must not touch the stored timestamp, so the next
	// lookup goes upstream again.
	got, err = c.GetOrFetch(context.Background(), "linux/v2", testTTL,
		fetchReturning(nil, fmt.Errorf("connection refused"), &calls))
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, 2, calls)
}

func TestGetOrFetchFailureWithoutPriorEntry(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	calls := 0

	_, err := c.GetOrFetch(context.Background(), "linux/v2", testTTL,
		fetchReturning(nil, fmt.Errorf("connection refused"), &calls))
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestGetOrFetchRejectsInvalidPayload(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	calls := 0

	bad := &model.TestResultData{Passed: 10, Total: 11}
	_, err := c.GetOrFetch(context.Background(), "linux/v2", testTTL, fetchReturning(bad, nil, &calls))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPayload))
	assert.Equal(t, 0, c.Len(), "invalid payloads are never cached")
}

func TestGetOrFetchInvalidPayloadSkipsStaleFallback(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	c.Set("linux/v2", &model.TestResultData{Passed: 10, Total: 10})

	clk.Advance(testTTL + time.Minute)

	calls := 0
	bad := &model.TestResultData{Passed: 3, Total: 99}
	_, err := c.GetOrFetch(context.Background(), "linux/v2", testTTL, fetchReturning(bad, nil, &calls))
	require.Error(t, err, "an invalid payload is not a fetch failure, no stale substitution")
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}

func TestInvalidate(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	c.Set("linux/v2", &model.TestResultData{})
	c.Set("linux/v1", &model.TestResultData{})
	c.Set("windows/v2", &model.TestResultData{})

	assert.True(t, c.Invalidate("linux/v1"))
	assert.False(t, c.Invalidate("linux/v1"), "second invalidation finds nothing")
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get("linux/v1", testTTL)
	assert.False(t, ok)
}

func TestInvalidatePrefix(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	c.Set(Key("linux", "v2"), &model.TestResultData{})
	c.Set(Key("linux", "v1"), &model.TestResultData{})
	c.Set(Key("linux", "v2", "localstack.client"), &model.TestResultData{})
	c.Set(Key("windows", "v2"), &model.TestResultData{})

	removed := c.InvalidatePrefix("linux/")
	assert.Equal(t, 3, removed)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("windows/v2", testTTL)
	assert.True(t, ok, "other platforms stay cached")
}

func TestClear(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	c.Set("linux/v2", &model.TestResultData{})
	c.Set("windows/v2", &model.TestResultData{})

	assert.Equal(t, 2, c.Clear())
	assert.Equal(t, 0, c.Len())
}

func TestConcurrentFetchesConverge(t *testing.T) {
	clk := newClock()
	c := newTestCache(clk)
	data := &model.TestResultData{Passed: 4, Total: 4}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.GetOrFetch(context.Background(), "linux/v2", testTTL,
				func(ctx context.Context) (*model.TestResultData, error) { return data, nil })
			assert.NoError(t, err)
			assert.Equal(t, data, got)
		}()
	}
	wg.Wait()

	got, ok := c.Get("linux/v2", testTTL)
	require.True(t, ok)
	assert.Equal(t, data, got)
}
