package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinOrNone(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{name: "nil slice returns (none)", items: nil, want: "(none)"},
		{name: "empty slice returns (none)", items: []string{}, want: "(none)"},
		{name: "single item returns item", items: []string{"WebServers"}, want: "WebServers"},
		{name: "multiple items joined with comma", items: []string{"Web", "DB", "Cache"}, want: "Web, DB, Cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinOrNone(tt.items))
		})
	}
}

func TestJoinOrDefault(t *testing.T) {
	assert.Equal(t, "N/A", JoinOrDefault(nil, "N/A"))
	assert.Equal(t, "", JoinOrDefault([]string{}, ""))
	assert.Equal(t, "a, b", JoinOrDefault([]string{"a", "b"}, "default"))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "node", Pluralize(1, "node", "nodes"))
	assert.Equal(t, "nodes", Pluralize(0, "node", "nodes"))
	assert.Equal(t, "nodes", Pluralize(2, "node", "nodes"))
}

func TestCountNoun(t *testing.T) {
	assert.Equal(t, "1 category", CountNoun(1, "category", "categories"))
	assert.Equal(t, "4 categories", CountNoun(4, "category", "categories"))
	assert.Equal(t, "0 nodes", CountNoun(0, "node", "nodes"))
}
