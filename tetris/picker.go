package tetris

import "math/rand/v2"

// Picker chooses the shape of each newly spawned piece.
type Picker interface {
	Pick() Shape
}

// UniformPicker selects every shape with equal probability on each pick.
type UniformPicker struct {
	rng *rand.Rand
}

// NewUniformPicker returns a picker drawing from rng.
func NewUniformPicker(rng *rand.Rand) *UniformPicker {
	return &UniformPicker{rng: rng}
}

func (p *UniformPicker) Pick() Shape {
	return Shapes[p.rng.IntN(len(Shapes))]
}

// BagPicker deals shuffled bags holding each shape once.
type BagPicker struct {
	rng *rand.Rand
	bag []Shape
}

// NewBagPicker returns a 7-bag picker drawing from rng.
func NewBagPicker(rng *rand.Rand) *BagPicker {
	return &BagPicker{rng: rng}
}

func (p *BagPicker) Pick() Shape {
	if len(p.bag) == 0 {
		p.bag = append(p.bag[:0], Shapes[:]...)
		p.rng.Shuffle(len(p.bag), func(i, j int) {
			p.bag[i], p.bag[j] = p.bag[j], p.bag[i]
		})
	}

	shape := p.bag[0]
	p.bag = p.bag[1:]
	return shape
}

// SequencePicker replays a fixed list of shapes, cycling when exhausted.
// It is mostly useful for scripted games and tests.
type SequencePicker struct {
	shapes []Shape
	next   int
}

// NewSequencePicker returns a picker cycling through shapes. At least one
// shape is required.
func NewSequencePicker(shapes ...Shape) *SequencePicker {
	if len(shapes) == 0 {
		panic("tetris: sequence picker needs at least one shape")
	}
	return &SequencePicker{shapes: shapes}
}

func (p *SequencePicker) Pick() Shape {
	shape := p.shapes[p.next]
	p.next = (p.next + 1) % len(p.shapes)
	return shape
}
