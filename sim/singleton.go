package sim

import "reflect"

// Singleton gives direct access to the one instance of T kept in a storage.
// The instance is an entity carrying only a T; it is created on first use.
//
// A Singleton held by value in a System struct field is bound to the
// scheduler's storage on Register.
type Singleton[T any] struct {
	ptr *T
}

// NewSingleton returns the storage's T, spawning it from initial (or the
// zero value) if the storage has none yet.
func NewSingleton[T any](storage *Storage, initial ...T) *Singleton[T] {
	s := &Singleton[T]{}
	s.bind(storage, initial...)
	return s
}

func (s *Singleton[T]) bindStorage(storage *Storage) {
	s.bind(storage)
}

func (s *Singleton[T]) bind(storage *Storage, initial ...T) {
	archetype := storage.archetypeFor([]reflect.Type{reflect.TypeFor[T]()})
	for id := range archetype.Iter() {
		s.ptr = ReadComponent[T](storage, id)
		return
	}

	var value T
	if len(initial) > 0 {
		value = initial[0]
	}
	s.ptr = ReadComponent[T](storage, storage.Spawn(value))
}

// Get returns the instance. The pointer stays valid for the storage's
// lifetime.
func (s *Singleton[T]) Get() *T {
	return s.ptr
}
