package cache

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	c := NewMemory[int](time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 42)
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 42, got)

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	c := NewMemory[string](10 * time.Millisecond)
	c.Set("k", "v")

	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(25 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry should expire")
	assert.Zero(t, c.Len(), "expired entry is dropped on read")
}

func TestMemoryZeroTTLNeverExpires(t *testing.T) {
	c := NewMemory[string](0)
	c.Set("k", "v")
	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestMemoryClear(t *testing.T) {
	c := NewMemory[int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	require.Equal(t, 2, c.Len())
	c.Clear()
	assert.Zero(t, c.Len())
}

type record struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func TestDiskRoundTrip(t *testing.T) {
	d := NewDisk(t.TempDir(), time.Minute, true, zerolog.Nop())

	key := map[string]string{"symbol": "NSE:TCS", "range": "1M"}
	d.Set("chart", key, record{Symbol: "NSE:TCS", Price: 3942})

	var got record
	require.True(t, d.Get("chart", key, &got))
	assert.Equal(t, "NSE:TCS", got.Symbol)
	assert.InDelta(t, 3942, got.Price, 0.001)

	var miss record
	assert.False(t, d.Get("chart", map[string]string{"symbol": "OTHER"}, &miss))
	assert.False(t, d.Get("quote", key, &miss), "category is part of the key")
}

func TestDiskDisabled(t *testing.T) {
	d := NewDisk(t.TempDir(), time.Minute, false, zerolog.Nop())
	d.Set("chart", "k", record{Symbol: "X"})
	var got record
	assert.False(t, d.Get("chart", "k", &got))
}

func TestDiskTTL(t *testing.T) {
	d := NewDisk(t.TempDir(), 1*time.Millisecond, true, zerolog.Nop())
	d.Set("quote", "k", record{Symbol: "X"})
	time.Sleep(10 * time.Millisecond)
	var got record
	assert.False(t, d.Get("quote", "k", &got), "stale file is a miss")
}

func TestDiskPurge(t *testing.T) {
	d := NewDisk(t.TempDir(), time.Hour, true, zerolog.Nop())
	d.Set("quote", "a", record{Symbol: "A"})
	d.Set("quote", "b", record{Symbol: "B"})

	removed, err := d.Purge(0)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	var got record
	assert.False(t, d.Get("quote", "a", &got))
}
