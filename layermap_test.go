package planeshift

import "testing"

func TestLayerMapAddGet(t *testing.T) {
	var m LayerMap[int]

	m.Add(3, 30)
	m.Add(1, 10)

	if got, ok := m.Get(3); !ok || got != 30 {
		t.Errorf("Get(3) = %d, %t, want 30, true", got, ok)
	}
	if _, ok := m.Get(2); ok {
		t.Error("Get(2) should be absent")
	}
	if _, ok := m.Get(100); ok {
		t.Error("Get(100) beyond storage should be absent")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestLayerMapAddTwicePanics(t *testing.T) {
	var m LayerMap[int]
	m.Add(1, 1)
	if !mustPanic(func() { m.Add(1, 2) }) {
		t.Error("Add() on present id should panic")
	}
	if m.Must(1) != 1 {
		t.Errorf("Must(1) = %d, want original value 1", m.Must(1))
	}
}

func TestLayerMapAbsentAccessPanics(t *testing.T) {
	var m LayerMap[string]

	tests := []struct {
		name string
		fn   func()
	}{
		{"Must", func() { m.Must(1) }},
		{"At", func() { m.At(1) }},
		{"Take", func() { m.Take(1) }},
		{"Remove", func() { m.Remove(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !mustPanic(tt.fn) {
				t.Errorf("%s() on absent id should panic", tt.name)
			}
		})
	}
}

func TestLayerMapGetMutAndTake(t *testing.T) {
	var m LayerMap[LayerContainerInfo]
	m.Add(5, LayerContainerInfo{})

	m.GetMut(5).FirstChild = 7
	m.At(5).LastChild = 8
	if got := m.Must(5); got.FirstChild != 7 || got.LastChild != 8 {
		t.Errorf("Must(5) = %+v, want {7 8}", got)
	}
	if m.GetMut(6) != nil {
		t.Error("GetMut(6) should be nil")
	}

	got := m.Take(5)
	if got.FirstChild != 7 {
		t.Errorf("Take(5) = %+v, want FirstChild 7", got)
	}
	if m.Has(5) || m.Len() != 0 {
		t.Errorf("after Take: Has(5) = %t, Len() = %d, want false, 0", m.Has(5), m.Len())
	}
}

func TestLayerMapRemoveIfPresent(t *testing.T) {
	var m LayerMap[int]
	m.Add(2, 2)

	if !m.RemoveIfPresent(2) {
		t.Error("RemoveIfPresent(2) = false, want true")
	}
	if m.RemoveIfPresent(2) {
		t.Error("second RemoveIfPresent(2) = true, want false")
	}
}

func TestLayerMapAll(t *testing.T) {
	var m LayerMap[int]
	for _, id := range []LayerID{4, 1, 9} {
		m.Add(id, int(id)*10)
	}
	m.Remove(4)

	var ids []LayerID
	for id, v := range m.All() {
		if v != int(id)*10 {
			t.Errorf("All() yielded %d for id %d", v, id)
		}
		ids = append(ids, id)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 9 {
		t.Errorf("All() ids = %v, want [1 9]", ids)
	}

	for range m.All() {
		break
	}
}
