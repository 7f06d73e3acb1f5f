package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupGenre(t *testing.T) {
	tests := []struct {
		in     string
		wantID string
		ok     bool
	}{
		{"28", "28", true},
		{"action", "28", true},
		{" Science Fiction ", "878", true},
		{"Action & Adventure", "10759", true},
		{"telenovela", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g, ok := LookupGenre(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wantID, g.ID)
		})
	}
}

func TestGenresReturnsCopy(t *testing.T) {
	list := Genres()
	list[0].Name = "changed"
	g, ok := LookupGenre("28")
	assert.True(t, ok)
	assert.Equal(t, "action", g.Name)
	assert.Len(t, Genres(), len(genres))
}
