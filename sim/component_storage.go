package sim

import (
	"iter"
	"reflect"
	"unsafe"
)

// ComponentRegistry lists the component types a Storage may hold. Each
// Storage has its own registry.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent makes T usable as a component. It must be called before
// any entity carrying a T is spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

func (r *ComponentRegistry) factory(t reflect.Type) func() componentStorage {
	return r.factories[t]
}

// componentStorage is a type-erased column of one component type.
type componentStorage interface {
	Append(item any) int
	Delete(index int)
	Has(index int) bool
	Pointer(index int) unsafe.Pointer
	Iter() iter.Seq[int]
	Len() int
}

const blockSize = 64

type block[T any] struct {
	values [blockSize]T
	filled [blockSize]bool
}

// blockStorage keeps components in fixed size blocks that are allocated once
// and never moved, so a pointer to a component stays valid until its slot is
// deleted. Freed slots are reused before the storage grows.
type blockStorage[T any] struct {
	blocks []*block[T]
	free   []int
	next   int
	count  int
}

func (s *blockStorage[T]) Append(item any) int {
	var value T
	if ptr, ok := item.(*T); ok {
		value = *ptr
	} else if v, ok := item.(T); ok {
		value = v
	} else {
		return -1
	}

	var index int
	if n := len(s.free); n > 0 {
		index = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		index = s.next
		s.next++
		if index/blockSize >= len(s.blocks) {
			s.blocks = append(s.blocks, &block[T]{})
		}
	}

	b, slot := s.blocks[index/blockSize], index%blockSize
	b.values[slot] = value
	b.filled[slot] = true
	s.count++
	return index
}

func (s *blockStorage[T]) locate(index int) (*block[T], int, bool) {
	if index < 0 || index >= s.next {
		return nil, 0, false
	}
	b, slot := s.blocks[index/blockSize], index%blockSize
	return b, slot, b.filled[slot]
}

func (s *blockStorage[T]) Delete(index int) {
	b, slot, ok := s.locate(index)
	if !ok {
		return
	}
	var zero T
	b.values[slot] = zero
	b.filled[slot] = false
	s.free = append(s.free, index)
	s.count--
}

func (s *blockStorage[T]) Has(index int) bool {
	_, _, ok := s.locate(index)
	return ok
}

func (s *blockStorage[T]) Pointer(index int) unsafe.Pointer {
	b, slot, ok := s.locate(index)
	if !ok {
		return nil
	}
	return unsafe.Pointer(&b.values[slot])
}

func (s *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range s.next {
			if s.blocks[i/blockSize].filled[i%blockSize] && !yield(i) {
				return
			}
		}
	}
}

func (s *blockStorage[T]) Len() int {
	return s.count
}
