package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "empty", raw: "", expected: nil},
		{name: "only separators and spaces", raw: " , ,, ", expected: nil},
		{name: "single element", raw: "kafka:9092", expected: []string{"kafka:9092"}},
		{
			name:     "trims whitespace",
			raw:      "  kafka-1:9092 ,kafka-2:9092  ",
			expected: []string{"kafka-1:9092", "kafka-2:9092"},
		},
		{
			name:     "removes duplicates preserving order",
			raw:      "b:1,a:1,b:1,c:1,a:1",
			expected: []string{"b:1", "a:1", "c:1"},
		},
		{
			name:     "trailing separator",
			raw:      "kafka-1:9092,",
			expected: []string{"kafka-1:9092"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.raw, ","))
		})
	}
}
