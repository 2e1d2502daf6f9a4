package prompt

import (
	"strconv"
	"strings"
)

const instructions = `Analyze the following notes and identify meaningful connections between them.
Look for shared themes, recurring ideas, complementary concepts and
contradictions. For each connection, name the notes involved and explain why
they relate. Finish with suggestions for new notes or links that would
strengthen the collection.

`

// Build renders the fixed analysis instruction around the note bodies,
// numbered 1..N in the given order. Bodies are passed through verbatim.
func Build(bodies []string) string {
	var b strings.Builder
	b.WriteString(instructions)
	for i, body := range bodies {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Note ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(":\n")
		b.WriteString(body)
	}
	return b.String()
}
