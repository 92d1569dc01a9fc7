package planeshift

import (
	"fmt"
	"iter"
)

// LayerView is read-only access to a component store.
type LayerView[T any] interface {
	// Get returns the component of id and whether it is present.
	Get(id LayerID) (T, bool)

	// Must returns the component of id and panics if it is absent.
	Must(id LayerID) T

	// Has reports whether id has the component.
	Has(id LayerID) bool
}

// LayerMap stores one optional component per layer in a sparse slice
// indexed by LayerID.
//
// Insertion and lookup are O(1) amortized. Accessors that assume presence
// panic when the component is absent, since that indicates a broken
// invariant rather than a runtime failure.
//
// The zero value is an empty map ready to use.
type LayerMap[T any] struct {
	slots []slot[T]
	count int
}

type slot[T any] struct {
	value   T
	present bool
}

// Add inserts value for id, growing the backing storage as needed.
// It panics if id already has a value.
func (m *LayerMap[T]) Add(id LayerID, value T) {
	i := int(id)
	if i >= len(m.slots) {
		m.slots = append(m.slots, make([]slot[T], i+1-len(m.slots))...)
	}
	if m.slots[i].present {
		panic(fmt.Sprintf("planeshift: layer %d already has a %T component", id, value))
	}
	m.slots[i] = slot[T]{value: value, present: true}
	m.count++
}

// Get returns the value for id and whether it is present.
func (m *LayerMap[T]) Get(id LayerID) (T, bool) {
	if int(id) < len(m.slots) && m.slots[id].present {
		return m.slots[id].value, true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer to the value for id, or nil if absent.
// The pointer is invalidated by the next Add.
func (m *LayerMap[T]) GetMut(id LayerID) *T {
	if int(id) < len(m.slots) && m.slots[id].present {
		return &m.slots[id].value
	}
	return nil
}

// Must returns the value for id and panics if it is absent.
func (m *LayerMap[T]) Must(id LayerID) T {
	return *m.At(id)
}

// At returns a pointer to the value for id and panics if it is absent.
func (m *LayerMap[T]) At(id LayerID) *T {
	p := m.GetMut(id)
	if p == nil {
		var zero T
		panic(fmt.Sprintf("planeshift: layer %d has no %T component", id, zero))
	}
	return p
}

// Has reports whether id has a value.
func (m *LayerMap[T]) Has(id LayerID) bool {
	return int(id) < len(m.slots) && m.slots[id].present
}

// Take removes and returns the value for id. It panics if absent.
func (m *LayerMap[T]) Take(id LayerID) T {
	v := m.Must(id)
	m.slots[id] = slot[T]{}
	m.count--
	return v
}

// Remove deletes the value for id. It panics if absent.
func (m *LayerMap[T]) Remove(id LayerID) {
	m.Take(id)
}

// RemoveIfPresent deletes the value for id if there is one and reports
// whether it did.
func (m *LayerMap[T]) RemoveIfPresent(id LayerID) bool {
	if !m.Has(id) {
		return false
	}
	m.Take(id)
	return true
}

// Len returns the number of present values.
func (m *LayerMap[T]) Len() int {
	return m.count
}

// All iterates over present values in increasing id order.
func (m *LayerMap[T]) All() iter.Seq2[LayerID, T] {
	return func(yield func(LayerID, T) bool) {
		for i := range m.slots {
			if m.slots[i].present && !yield(LayerID(i), m.slots[i].value) {
				return
			}
		}
	}
}

// Ensure LayerMap satisfies LayerView.
var _ LayerView[LayerTreeInfo] = (*LayerMap[LayerTreeInfo])(nil)
