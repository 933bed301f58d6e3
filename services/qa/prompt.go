package qa

import "fmt"

const promptTemplate = `Based on the following transcript, generate exactly %d educational question-answer pairs in JSON format.

Requirements:
- Return ONLY a valid JSON array
- Each question should be clear and educational
- Each answer should be concise but complete
- Focus on key concepts and important information

Format:
[
  {"question": "What is...?", "answer": "The answer is..."},
  {"question": "How does...?", "answer": "It works by..."}
]

Transcript:
%s`

// BuildPrompt embeds count and chunk into the generation instruction. The
// chunk is inserted verbatim.
func BuildPrompt(chunk string, count int) string {
	return fmt.Sprintf(promptTemplate, count, chunk)
}
