package planeshift

import (
	"image"
	"testing"
)

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"disjoint", R(0, 0, 10, 10), R(20, 5, 5, 5), R(0, 0, 25, 10)},
		{"nested", R(0, 0, 100, 100), R(10, 10, 5, 5), R(0, 0, 100, 100)},
		{"negative origin", R(-5, -5, 10, 10), R(0, 0, 10, 10), R(-5, -5, 15, 15)},
		{"empty left", Rect{}, R(3, 4, 5, 6), R(3, 4, 5, 6)},
		{"empty right", R(3, 4, 5, 6), R(100, 100, 0, 0), R(3, 4, 5, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Union(tt.a); got != tt.want {
				t.Errorf("reversed Union() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectUnionOrderIndependent(t *testing.T) {
	rects := []Rect{
		R(10, 10, 5, 5),
		R(-3, 2, 1, 1),
		{},
		R(7, 30, 2, 8),
		R(0, 0, 1, 1),
	}
	var forward, backward Rect
	for i := range rects {
		forward = forward.Union(rects[i])
		backward = backward.Union(rects[len(rects)-1-i])
	}
	if forward != backward {
		t.Errorf("forward union %v != backward union %v", forward, backward)
	}
}

func TestRectIntersect(t *testing.T) {
	a := R(0, 0, 10, 10)
	if got, want := a.Intersect(R(5, 5, 10, 10)), R(5, 5, 5, 5); got != want {
		t.Errorf("Intersect() = %v, want %v", got, want)
	}
	if got := a.Intersect(R(10, 0, 5, 5)); !got.IsEmpty() {
		t.Errorf("Intersect(touching) = %v, want empty", got)
	}
}

func TestRectRounding(t *testing.T) {
	r := R(0.5, 1.25, 10.2, 3.5)

	if got, want := r.RoundOut(), R(0, 1, 11, 4); got != want {
		t.Errorf("RoundOut() = %v, want %v", got, want)
	}
	if got, want := r.Round(), R(1, 1, 10, 4); got != want {
		t.Errorf("Round() = %v, want %v", got, want)
	}
	if got, want := r.ImageRect(), image.Rect(0, 1, 11, 5); got != want {
		t.Errorf("ImageRect() = %v, want %v", got, want)
	}
}

func TestRectTranslateScaleContains(t *testing.T) {
	r := R(1, 2, 3, 4).Translate(Pt(10, 20))
	if want := R(11, 22, 3, 4); r != want {
		t.Errorf("Translate() = %v, want %v", r, want)
	}
	if got, want := R(1, 2, 3, 4).Scale(2), R(2, 4, 6, 8); got != want {
		t.Errorf("Scale(2) = %v, want %v", got, want)
	}
	if !r.Contains(Pt(11, 22)) || r.Contains(Pt(14, 22)) {
		t.Error("Contains() should include the top-left edge and exclude the right edge")
	}
	if got := R(1, 2, 3, 4).String(); got != "(1,2 3x4)" {
		t.Errorf("String() = %q", got)
	}
}
