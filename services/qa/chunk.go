package qa

import (
	"strings"
	"unicode/utf8"
)

// ChunkText packs the words of text into chunks of at most maxSize runes,
// counting one separator between adjacent words. Words are never split; a
// word longer than maxSize forms a chunk by itself.
func ChunkText(text string, maxSize int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var (
		chunks  []string
		current []string
		size    int
	)

	for _, word := range words {
		n := utf8.RuneCountInString(word)
		if len(current) > 0 && size+1+n > maxSize {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			size = 0
		}
		if len(current) > 0 {
			size++
		}
		current = append(current, word)
		size += n
	}

	return append(chunks, strings.Join(current, " "))
}
