// Package util holds small arithmetic and string helpers shared across the
// repository's scripts.
package util

import "errors"

// ErrDivideByZero is returned by Divide for a zero divisor.
var ErrDivideByZero = errors.New("division by zero")

// Add returns the sum of two integers.
func Add(a, b int) int {
	return a + b
}

// Divide returns a/b, or ErrDivideByZero when b is zero.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

// Average returns the arithmetic mean of numbers, or 0 for an empty slice.
func Average(numbers []float64) float64 {
	if len(numbers) == 0 {
		return 0
	}
	sum := 0.0
	for _, n := range numbers {
		sum += n
	}
	return sum / float64(len(numbers))
}

// IsEven reports whether n is even.
func IsEven(n int) bool {
	return n%2 == 0
}

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// Flatten flattens arbitrarily nested slices into a single-level slice.
func Flatten(nested []any) []any {
	flat := make([]any, 0, len(nested))
	for _, item := range nested {
		if inner, ok := item.([]any); ok {
			flat = append(flat, Flatten(inner)...)
		} else {
			flat = append(flat, item)
		}
	}
	return flat
}
