package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "only separators and spaces",
			input:    " , ,, ",
			expected: []string{},
		},
		{
			name:     "single item",
			input:    "redpanda:9092",
			expected: []string{"redpanda:9092"},
		},
		{
			name:     "trims and drops repeats in order",
			input:    " k2:9092,k1:9092 , k2:9092",
			expected: []string{"k2:9092", "k1:9092"},
		},
		{
			name:     "case is significant",
			input:    "Host,host",
			expected: []string{"Host", "host"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.input, ","))
		})
	}
}
