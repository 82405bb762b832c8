package sim_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/sim"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := sim.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestStorageSpawn(t *testing.T) {
	t.Run("component order does not matter", func(t *testing.T) {
		storage := sim.NewStorage(newTestRegistry())

		a := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
		b := storage.Spawn(&Velocity{DX: 3}, &Position{X: 4})

		assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
		assert.Equal(t, 1, storage.ArchetypeCount())
		assert.Equal(t, 2, storage.EntityCount())
		assert.Equal(t, float32(4), sim.ReadComponent[Position](storage, b).X)
		assert.Equal(t, float32(3), sim.ReadComponent[Velocity](storage, b).DX)
	})

	t.Run("different component sets use different archetypes", func(t *testing.T) {
		storage := sim.NewStorage(newTestRegistry())

		a := storage.Spawn(Position{})
		b := storage.Spawn(Position{}, Name("b"))

		assert.NotEqual(t, a.ArchetypeId(), b.ArchetypeId())
		assert.Equal(t, 2, storage.ArchetypeCount())
	})

	t.Run("archetype ids are stable across storages", func(t *testing.T) {
		a := sim.NewStorage(newTestRegistry()).Spawn(Health{}, Name("x"))
		b := sim.NewStorage(newTestRegistry()).Spawn(Name("y"), Health{})
		assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	})

	t.Run("invalid spawns panic", func(t *testing.T) {
		storage := sim.NewStorage(sim.NewComponentRegistry())
		assert.Panics(t, func() { storage.Spawn() })
		assert.Panics(t, func() { storage.Spawn(Position{}) }, "unregistered type")

		storage = sim.NewStorage(newTestRegistry())
		assert.Panics(t, func() { storage.Spawn(Position{}, Position{}) })
		assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
	})
}

func TestStorageGetComponent(t *testing.T) {
	storage := sim.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 3, Y: 4}, Name("Test Entity"))

	pos, ok := storage.GetComponent(id, reflect.TypeFor[Position]()).(*Position)
	require.True(t, ok)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)

	name := sim.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, Name("Test Entity"), *name)

	assert.Nil(t, storage.GetComponent(id, reflect.TypeFor[Velocity]()))
	assert.Nil(t, sim.ReadComponent[Velocity](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Name]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Health]()))

	pos.X = 10
	assert.Equal(t, float32(10), sim.ReadComponent[Position](storage, id).X, "components are returned by pointer")
}

func TestStorageDelete(t *testing.T) {
	storage := sim.NewStorage(newTestRegistry())
	a := storage.Spawn(Position{X: 1})
	b := storage.Spawn(Position{X: 2})

	storage.Delete(a)
	assert.False(t, storage.Alive(a))
	assert.True(t, storage.Alive(b))
	assert.Nil(t, sim.ReadComponent[Position](storage, a))
	assert.Equal(t, 1, storage.EntityCount())

	c := storage.Spawn(Position{X: 3})
	assert.Equal(t, a, c, "freed slots are reused")
	assert.Equal(t, float32(3), sim.ReadComponent[Position](storage, c).X)

	storage.Delete(sim.NewEntityId(12345, 0))
	assert.Equal(t, 2, storage.EntityCount())
}

func TestStoragePointersStayValid(t *testing.T) {
	storage := sim.NewStorage(newTestRegistry())
	first := storage.Spawn(Health{Current: 1})
	health := sim.ReadComponent[Health](storage, first)

	for i := range 500 {
		storage.Spawn(Health{Current: i})
	}

	health.Current = 42
	assert.Equal(t, 42, sim.ReadComponent[Health](storage, first).Current)
}
