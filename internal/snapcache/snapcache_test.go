package snapcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

func testSnapshot(fullName string) *domain.ProjectData {
	return &domain.ProjectData{FullName: fullName, Weeks: 4}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "octocat/hello-world@12", Key("octocat", "hello-world", 12))
}

func TestCache_SetGet(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	key := Key("octocat", "hello-world", 4)

	_, ok := c.Get(key)
	assert.False(t, ok, "empty cache must miss")

	c.Set(key, testSnapshot("octocat/hello-world"))

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "octocat/hello-world", got.FullName)
	assert.Equal(t, 1, c.Len())

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 60.0, stats.TTLSeconds)
}

func TestCache_Expiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	defer c.Stop()

	key := Key("octocat", "hello-world", 4)
	c.Set(key, testSnapshot("octocat/hello-world"))

	_, ok := c.Get(key)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Get(key)
	assert.False(t, ok, "expired entries must miss")
	assert.Equal(t, 0, c.Len(), "expired entries are dropped on access")
}

func TestCache_DisabledTTL(t *testing.T) {
	c := New(0)
	defer c.Stop()

	key := Key("octocat", "hello-world", 4)
	c.Set(key, testSnapshot("octocat/hello-world"))

	_, ok := c.Get(key)
	assert.False(t, ok, "a disabled cache never hits")
	assert.Equal(t, 0, c.Len())
}

func TestCache_DeleteAndClear(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	first := Key("octocat", "hello-world", 4)
	second := Key("octocat", "spoon-knife", 4)
	c.Set(first, testSnapshot("octocat/hello-world"))
	c.Set(second, testSnapshot("octocat/spoon-knife"))

	c.Delete(first)
	_, ok := c.Get(first)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCache_StopIsIdempotent(t *testing.T) {
	c := New(time.Minute)
	c.Stop()
	c.Stop()
}
