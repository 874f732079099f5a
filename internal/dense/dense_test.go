package dense

import (
	"testing"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected int
	}{
		{Shape{}, 1},      // Scalar
		{Shape{5}, 5},     // Vector
		{Shape{3, 4}, 12}, // Matrix
		{Shape{0, 4}, 0},  // Empty
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.expected {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.expected)
		}
	}
}

func TestShapeValidation(t *testing.T) {
	for _, s := range []Shape{{0}, {3, 4}, {1, 0}} {
		if err := s.Validate(); err != nil {
			t.Errorf("Shape%v.Validate() failed: %v", s, err)
		}
	}
	for _, s := range []Shape{{-1}, {3, -4}} {
		if err := s.Validate(); err == nil {
			t.Errorf("Shape%v.Validate() should fail but didn't", s)
		}
	}
}

func TestShapeEqual(t *testing.T) {
	tests := []struct {
		a, b  Shape
		equal bool
	}{
		{Shape{3, 4}, Shape{3, 4}, true},
		{Shape{3, 4}, Shape{4, 3}, false},
		{Shape{3}, Shape{3, 1}, false},
		{Shape{}, Shape{}, true},
	}

	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.equal {
			t.Errorf("Shape%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.equal)
		}
	}
}

func TestShapeString(t *testing.T) {
	if got := (Shape{2, 3}).String(); got != "2x3" {
		t.Errorf("String() = %q, want %q", got, "2x3")
	}
	if got := (Shape{4}).String(); got != "[4]" {
		t.Errorf("String() = %q, want %q", got, "[4]")
	}
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	if m.Rows() != 3 || m.Cols() != 2 {
		t.Fatalf("shape = %v, want 3x2", m.Shape())
	}
	if got := m.At(2, 1); got != 6 {
		t.Errorf("At(2,1) = %v, want 6", got)
	}

	if _, err := FromRows([][]float64{{1, 2}, {3}}); err == nil {
		t.Error("FromRows with ragged rows should fail")
	}
}

func TestFromSlice_SizeMismatch(t *testing.T) {
	if _, err := FromSlice([]float64{1, 2, 3}, 2, 2); err == nil {
		t.Error("FromSlice with 3 elements for 2x2 should fail")
	}
}

func TestMapAndRows2D(t *testing.T) {
	m := MustFromRows([][]int{{1, 2}, {3, 4}})
	doubled := Map(m, func(v int) float64 { return float64(2 * v) })

	want := [][]float64{{2, 4}, {6, 8}}
	got := Rows2D(doubled)
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("Rows2D[%d][%d] = %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}

	m.Set(0, 0, 10)
	if doubled.At(0, 0) != 2 {
		t.Error("Map must not alias the source matrix")
	}
}

func TestAt_OutOfRange(t *testing.T) {
	m, _ := New[float64](2, 2)
	defer func() {
		if recover() == nil {
			t.Error("At(2,0) on 2x2 should panic")
		}
	}()
	m.At(2, 0)
}
