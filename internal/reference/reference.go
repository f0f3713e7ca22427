// Package reference generates human-shareable booking references of the
// shape <PREFIX>-<YYYYMMDD>-<4 digits>. Uniqueness is enforced by the
// database index on bookings.booking_reference, not by the generator;
// callers retry with a fresh suffix on a unique-violation at insert time.
package reference

import (
	"fmt"
	"math/rand"
	"time"
)

type Generator struct {
	now    func() time.Time
	randFn func(n int) int
}

func NewGenerator() *Generator {
	return &Generator{
		now:    time.Now,
		randFn: rand.Intn,
	}
}

func (g *Generator) Next(prefix string) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, g.now().Format("20060102"), g.randFn(10000))
}
