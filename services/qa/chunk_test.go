package qa

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		maxSize int
		want    []string
	}{
		{"empty", "", 10, nil},
		{"whitespace only", " \n\t ", 10, nil},
		{"fits in one chunk", "a bb ccc", 8, []string{"a bb ccc"}},
		{"splits at boundary", "a bb ccc", 7, []string{"a bb", "ccc"}},
		{"collapses whitespace", "one\n\ntwo   three", 100, []string{"one two three"}},
		{"oversized word alone", "hi supercalifragilistic yo", 5, []string{"hi", "supercalifragilistic", "yo"}},
		{"counts runes", "ñññ ñññ", 7, []string{"ñññ ñññ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChunkText(tt.text, tt.maxSize))
		})
	}
}

func TestChunkText_PreservesWordsAndBounds(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 2000; i++ {
		b.WriteString(strings.Repeat("w", i%13+1))
		b.WriteString(" ")
	}
	text := b.String()

	for _, maxSize := range []int{1, 15, 100, 3000} {
		chunks := ChunkText(text, maxSize)

		assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(chunks, " ")))
		for _, chunk := range chunks {
			if strings.Contains(chunk, " ") {
				assert.LessOrEqual(t, utf8.RuneCountInString(chunk), maxSize)
			}
		}
	}
}
