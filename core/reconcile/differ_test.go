package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListsEqual(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want bool
	}{
		{"Reordered", []string{"a", "b"}, []string{"b", "a"}, true},
		{"Duplicate count differs", []string{"a"}, []string{"a", "a"}, false},
		{"Both empty", []string{}, []string{}, true},
		{"Nil and empty", nil, []string{}, true},
		{"Same duplicates", []string{"a", "b", "a"}, []string{"a", "a", "b"}, true},
		{"Same length different values", []string{"a", "b"}, []string{"a", "c"}, false},
		{"Case sensitive", []string{"Example.com"}, []string{"example.com"}, false},
		{"No fuzzy tolerance", []string{"cdn1.example.com"}, []string{"cdn2.example.com"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListsEqual(tt.a, tt.b))
			assert.Equal(t, tt.want, ListsEqual(tt.b, tt.a))
		})
	}
}

func TestListsEqual_DoesNotReorderInput(t *testing.T) {
	a := []string{"z", "y", "x"}
	b := []string{"x", "y", "z"}

	assert.True(t, ListsEqual(a, b))
	assert.Equal(t, []string{"z", "y", "x"}, a)
}

func TestSortedDiff(t *testing.T) {
	tests := []struct {
		name  string
		a     []string
		b     []string
		onlyA []string
		onlyB []string
	}{
		{"Equal", []string{"b", "a"}, []string{"a", "b"}, nil, nil},
		{"Addition", []string{"a"}, []string{"c", "a"}, nil, []string{"c"}},
		{"Removal", []string{"a", "b"}, []string{"b"}, []string{"a"}, nil},
		{"Both", []string{"a", "x", "y"}, []string{"y", "b", "a"}, []string{"x"}, []string{"b"}},
		{"Multiset", []string{"a", "a", "a"}, []string{"a"}, []string{"a", "a"}, nil},
		{"Empty side", nil, []string{"b", "a"}, nil, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onlyA, onlyB := SortedDiff(tt.a, tt.b)
			assert.Equal(t, tt.onlyA, onlyA)
			assert.Equal(t, tt.onlyB, onlyB)
		})
	}
}
