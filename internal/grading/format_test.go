package grading

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Rounding rule: half away from zero on the shortest decimal representation.
func TestFormatGrade(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{value: 2, want: "2.00"},
		{value: 0, want: "0.00"},
		{value: 2.345, want: "2.35"},
		{value: 2.344, want: "2.34"},
		{value: 1.005, want: "1.01"},
		{value: 2.3333333333333335, want: "2.33"},
		{value: 1.6666666666666667, want: "1.67"},
		{value: 9.995, want: "10.00"},
		{value: 6, want: "6.00"},
		{value: -2.345, want: "-2.35"},
		{value: -0.001, want: "0.00"},
		{value: 0.5, want: "0.50"},
		{value: math.Inf(1), want: "+Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatGrade(tt.value))
		})
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 2.3, RoundTo(7.0/3.0, 1))
	assert.Equal(t, 2.5, RoundTo(2.45, 1))
	assert.Equal(t, 3.0, RoundTo(2.96, 1))
}

func TestGradeColorClass(t *testing.T) {
	tests := []struct {
		value float64
		want  ColorClass
	}{
		{value: 1, want: Excellent},
		{value: 1.5, want: Excellent},
		{value: 1.51, want: Good},
		{value: 2.5, want: Good},
		{value: 2.51, want: Satisfactory},
		{value: 3.5, want: Satisfactory},
		{value: 3.51, want: Sufficient},
		{value: 4.5, want: Sufficient},
		{value: 4.51, want: Poor},
		{value: 5.5, want: Poor},
		{value: 5.51, want: Insufficient},
		{value: 6, want: Insufficient},
	}
	for _, tt := range tests {
		t.Run(FormatGrade(tt.value), func(t *testing.T) {
			assert.Equal(t, tt.want, GradeColorClass(tt.value))
		})
	}
}

func TestColorClass_Strings(t *testing.T) {
	assert.Equal(t, "excellent", Excellent.String())
	assert.Equal(t, "sehr gut", Excellent.Label())
	assert.Equal(t, "ungenügend", Insufficient.Label())
	assert.Equal(t, "text-lime-600", Good.TextClass())
	assert.Equal(t, "bg-red-100 border-red-300", Insufficient.BackgroundClass())
	assert.Equal(t, "unknown", ColorClass(42).String())
	assert.Empty(t, ColorClass(-1).Label())
}
