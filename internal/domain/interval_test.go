package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeInterval
		b    TimeInterval
		want bool
	}{
		{
			name: "partial overlap",
			a:    TimeInterval{Start: "10:00", End: "11:00"},
			b:    TimeInterval{Start: "10:30", End: "11:30"},
			want: true,
		},
		{
			name: "contained",
			a:    TimeInterval{Start: "10:00", End: "12:00"},
			b:    TimeInterval{Start: "10:30", End: "11:00"},
			want: true,
		},
		{
			name: "identical",
			a:    TimeInterval{Start: "10:00", End: "11:00"},
			b:    TimeInterval{Start: "10:00", End: "11:00"},
			want: true,
		},
		{
			// соседние слоты не конфликтуют: [10:00, 10:30) и [10:30, 11:00)
			name: "adjacent",
			a:    TimeInterval{Start: "10:00", End: "10:30"},
			b:    TimeInterval{Start: "10:30", End: "11:00"},
			want: false,
		},
		{
			name: "disjoint",
			a:    TimeInterval{Start: "09:00", End: "10:00"},
			b:    TimeInterval{Start: "14:00", End: "15:00"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeInterval_Contains(t *testing.T) {
	day := TimeInterval{Start: "09:00", End: "20:00"}

	assert.True(t, day.Contains(TimeInterval{Start: "10:00", End: "10:30"}))
	assert.True(t, day.Contains(TimeInterval{Start: "09:00", End: "20:00"}))
	assert.True(t, day.Contains(TimeInterval{Start: "19:30", End: "20:00"}))
	assert.False(t, day.Contains(TimeInterval{Start: "19:45", End: "20:15"}))
	assert.False(t, day.Contains(TimeInterval{Start: "08:30", End: "09:30"}))
}

func TestOverlapsAny(t *testing.T) {
	occupied := []TimeInterval{
		{Start: "10:00", End: "11:00"},
		{Start: "14:00", End: "15:00"},
	}

	assert.True(t, OverlapsAny(TimeInterval{Start: "10:30", End: "11:30"}, occupied))
	assert.False(t, OverlapsAny(TimeInterval{Start: "11:00", End: "12:00"}, occupied))
	assert.False(t, OverlapsAny(TimeInterval{Start: "12:00", End: "13:00"}, nil))
}

func TestSortIntervals(t *testing.T) {
	intervals := []TimeInterval{
		{Start: "14:00", End: "15:00"},
		{Start: "09:00", End: "10:00"},
		{Start: "11:30", End: "12:00"},
	}

	SortIntervals(intervals)

	assert.Equal(t, TimeInterval{Start: "09:00", End: "10:00"}, intervals[0])
	assert.Equal(t, TimeInterval{Start: "11:30", End: "12:00"}, intervals[1])
	assert.Equal(t, TimeInterval{Start: "14:00", End: "15:00"}, intervals[2])
}
