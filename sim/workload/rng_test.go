package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionedRNG_SameSeed_SameSequence(t *testing.T) {
	a := NewPartitionedRNG(42)
	b := NewPartitionedRNG(42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.ForStream(streamWork).Int63(), b.ForStream(streamWork).Int63())
	}
	assert.Equal(t, int64(42), a.Seed())
}

func TestPartitionedRNG_StreamIsolation(t *testing.T) {
	// GIVEN two generators with the same seed
	a := NewPartitionedRNG(42)
	b := NewPartitionedRNG(42)

	// WHEN one of them draws heavily from another stream first
	for i := 0; i < 100; i++ {
		a.ForStream(streamQueries).Int63()
	}

	// THEN the work stream is unaffected
	for i := 0; i < 5; i++ {
		assert.Equal(t, b.ForStream(streamWork).Int63(), a.ForStream(streamWork).Int63())
	}
}

func TestPartitionedRNG_ForStream_Cached(t *testing.T) {
	p := NewPartitionedRNG(1)
	assert.Same(t, p.ForStream(streamIDs), p.ForStream(streamIDs))
	assert.NotSame(t, p.ForStream(streamIDs), p.ForStream(streamArrivals))
}
