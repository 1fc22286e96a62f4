package mino

import (
	"math/rand"
)

// Bag deals kinds in shuffled rounds of seven so every kind appears exactly
// once per round.
type Bag struct {
	Seed int64

	kinds      [NumKinds]Kind
	randomizer *rand.Rand
	i          int
}

func NewBag(seed int64) *Bag {
	b := &Bag{Seed: seed, randomizer: rand.New(rand.NewSource(seed))}

	b.shuffle()

	return b
}

// Take removes and returns the next kind.
func (b *Bag) Take() Kind {
	k := b.kinds[b.i]
	if b.i == len(b.kinds)-1 {
		b.shuffle()

		b.i = 0
	} else {
		b.i++
	}

	return k
}

// Next returns the kind Take will return without consuming it.
func (b *Bag) Next() Kind {
	return b.kinds[b.i]
}

func (b *Bag) shuffle() {
	b.kinds = Kinds

	b.randomizer.Shuffle(len(b.kinds), func(i, j int) { b.kinds[i], b.kinds[j] = b.kinds[j], b.kinds[i] })
}
