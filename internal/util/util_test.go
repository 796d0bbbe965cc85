package util

import (
	"errors"
	"slices"
	"testing"
)

func TestAdd(t *testing.T) {
	if got := Add(2, 2); got != 4 {
		t.Errorf("Add(2, 2) = %d, want 4", got)
	}
	if got := Add(-3, 1); got != -2 {
		t.Errorf("Add(-3, 1) = %d, want -2", got)
	}
}

func TestDivide(t *testing.T) {
	got, err := Divide(10, 2)
	if err != nil || got != 5 {
		t.Errorf("Divide(10, 2) = %v, %v", got, err)
	}

	if _, err := Divide(1, 0); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("Divide(1, 0) error = %v, want ErrDivideByZero", err)
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name    string
		numbers []float64
		want    float64
	}{
		{name: "empty", numbers: nil, want: 0},
		{name: "one to five", numbers: []float64{1, 2, 3, 4, 5}, want: 3},
		{name: "single", numbers: []float64{7}, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Average(tt.numbers); got != tt.want {
				t.Errorf("Average(%v) = %v, want %v", tt.numbers, got, tt.want)
			}
		})
	}
}

func TestIsEven(t *testing.T) {
	if !IsEven(0) || !IsEven(4) || IsEven(3) || !IsEven(-2) {
		t.Error("IsEven gave a wrong answer")
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "olleh"},
		{"", ""},
		{"héllo", "olléh"}, // multi-byte runes survive
	}
	for _, tt := range tests {
		if got := Reverse(tt.in); got != tt.want {
			t.Errorf("Reverse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFlatten(t *testing.T) {
	nested := []any{1, []any{2, []any{3, 4}}, 5}
	want := []any{1, 2, 3, 4, 5}
	if got := Flatten(nested); !slices.Equal(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}

	if got := Flatten(nil); len(got) != 0 {
		t.Errorf("Flatten(nil) = %v, want empty", got)
	}
}
