package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var defaults = Snapshot{OfflinePlatformFee: 10, BookingRefPrefix: "CHESS"}

func TestCurrent_DefaultsWithoutRedis(t *testing.T) {
	s := NewStore(nil, time.Minute, defaults)

	snap := s.Current(context.Background())
	assert.Equal(t, 10.0, snap.OfflinePlatformFee)
	assert.Equal(t, "CHESS", snap.BookingRefPrefix)
}

func TestCurrent_CachedWithinTTL(t *testing.T) {
	s := NewStore(nil, time.Minute, defaults)

	first := s.Current(context.Background())
	firstFetch := s.fetchedAt

	second := s.Current(context.Background())
	assert.Equal(t, first, second)
	assert.Equal(t, firstFetch, s.fetchedAt, "fresh snapshot should not refetch")
}

func TestInvalidate_ForcesRefresh(t *testing.T) {
	s := NewStore(nil, time.Hour, defaults)

	s.Current(context.Background())
	before := s.fetchedAt

	s.Invalidate()
	s.Current(context.Background())
	assert.True(t, s.fetchedAt.After(before), "invalidate should force a refetch")
}

func TestCurrent_RefreshAfterTTL(t *testing.T) {
	s := NewStore(nil, time.Nanosecond, defaults)

	s.Current(context.Background())
	before := s.fetchedAt

	time.Sleep(time.Millisecond)
	s.Current(context.Background())
	assert.True(t, s.fetchedAt.After(before), "stale snapshot should refetch")
}
