package types

import (
	"time"

	"golang.org/x/exp/rand"
)

// ReplayBuffer is a fixed-capacity ring of joint transitions with uniform
// sampling. Not safe for concurrent use; one buffer belongs to one trainer.
type ReplayBuffer struct {
	capacity int
	data     []*JointTransition
	next     int
	full     bool
	rand     *rand.Rand
}

func NewReplayBuffer(capacity int, seed uint64) *ReplayBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &ReplayBuffer{
		capacity: capacity,
		data:     make([]*JointTransition, capacity),
		rand:     rand.New(rand.NewSource(seed)),
	}
}

func (b *ReplayBuffer) Add(tr *JointTransition) {
	b.data[b.next] = tr
	b.next = (b.next + 1) % b.capacity
	if b.next == 0 {
		b.full = true
	}
}

func (b *ReplayBuffer) Len() int {
	if b.full {
		return b.capacity
	}
	return b.next
}

// Sample draws n transitions uniformly with replacement. Returns fewer
// entries only when the buffer is empty.
func (b *ReplayBuffer) Sample(n int) []*JointTransition {
	size := b.Len()
	if size == 0 {
		return nil
	}
	out := make([]*JointTransition, n)
	for i := 0; i < n; i++ {
		out[i] = b.data[b.rand.Intn(size)]
	}
	return out
}

func (b *ReplayBuffer) Clear() {
	b.data = make([]*JointTransition, b.capacity)
	b.next = 0
	b.full = false
}
