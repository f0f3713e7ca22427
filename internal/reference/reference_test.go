package reference

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNext_Format(t *testing.T) {
	g := NewGenerator()
	g.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	g.randFn = func(n int) int { return 42 }

	assert.Equal(t, "CHESS-20260314-0042", g.Next("CHESS"))
}

func TestNext_Shape(t *testing.T) {
	g := NewGenerator()
	pattern := regexp.MustCompile(`^OPEN-\d{8}-\d{4}$`)

	for i := 0; i < 50; i++ {
		ref := g.Next("OPEN")
		assert.True(t, pattern.MatchString(ref), "unexpected reference %q", ref)
	}
}

func TestNext_FreshSuffixOnRetry(t *testing.T) {
	calls := 0
	g := NewGenerator()
	g.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	g.randFn = func(n int) int {
		calls++
		return calls
	}

	first := g.Next("CHESS")
	second := g.Next("CHESS")
	assert.NotEqual(t, first, second)
}
