package core

import "testing"

func TestIDGeneratorStrictlyIncreasing(t *testing.T) {
	var g IDGenerator
	prev := int64(0)
	// Far more calls than fit in one millisecond, so same-tick
	// collisions are exercised.
	for i := 0; i < 10000; i++ {
		id := g.Next()
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
}
